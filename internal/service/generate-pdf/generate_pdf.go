package generate_pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"ficha/internal/constants"
	"ficha/internal/service/pivot"
	"ficha/internal/service/report"
)

const (
	pageMargin = 10.0

	fontFamily    = "Helvetica"
	cellFontSize  = 8.0
	cellLineHt    = 3.5
	cellPadding   = 1.4
	captionSize   = 11.0
	captionLineHt = 6.0
	commentSize   = 9.0
	commentLineHt = 4.5
	titleSize     = 16.0
	logoWidth     = 50.0
	logoName      = "logo"
)

type GeneratePDFService struct {
	logoPath string
	compress bool
}

func NewGeneratePDFService(logoPath string) *GeneratePDFService {
	return &GeneratePDFService{logoPath: logoPath, compress: true}
}

// GeneratePDF renders the report tables, and for the sheet variant the logo,
// title and commentary, into an A4 document. Warnings are non-fatal problems
// such as an unreadable logo.
func (g *GeneratePDFService) GeneratePDF(ctx context.Context, rep *report.Report) ([]byte, []string, error) {
	const op = "service.generate_pdf.GeneratePDF"

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(g.compress)
	pdf.SetTitle(rep.Variant.Label()+" - "+rep.Project, true)
	pdf.SetSubject(rep.ID, true)
	pdf.SetCreator("ficha", true)

	doc := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(doc.footer)
	pdf.AddPage()

	var warnings []string

	if rep.Variant.WithComments() {
		if err := doc.logo(g.logoPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("No se pudo cargar el logo: %v", err))
		}
		doc.title(rep.Project, "Periodo: "+rep.PeriodLabel())
		doc.comments(rep.CommentBlocks(constants.CommentsLeading))
	}

	for _, sec := range rep.Groups {
		doc.table(sec.Table)
	}

	if rep.Variant.WithComments() {
		doc.comments(rep.CommentBlocks(constants.CommentsInline))
	}

	if rep.Units != nil {
		doc.table(rep.Units.Table)
	}

	if rep.Variant.WithComments() {
		doc.comments(rep.CommentBlocks(constants.CommentsTrailing))
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), warnings, nil
}

type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *document) footer() {
	d.pdf.SetY(-pageMargin + 2)
	d.pdf.SetFont(fontFamily, "", 7)
	d.pdf.CellFormat(0, 4, d.tr(fmt.Sprintf("Página %d", d.pdf.PageNo())), "", 0, "R", false, 0, "")
}

func (d *document) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return w - left - right
}

// ensureSpace starts a new page unless h millimetres still fit.
func (d *document) ensureSpace(h float64) {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+h > pageH-bottom {
		d.pdf.AddPage()
	}
}

func (d *document) logo(path string) error {
	data, err := loadLogo(path)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(data))
	if !d.pdf.Ok() {
		// registration failures poison the document; clear and continue without it
		err := d.pdf.Error()
		d.pdf.ClearError()
		return err
	}

	d.pdf.ImageOptions(logoName, pageMargin, d.pdf.GetY(), logoWidth, 0, true, opts, 0, "")
	d.pdf.Ln(4)
	return nil
}

func (d *document) title(title, subtitle string) {
	d.paragraph(Bold(title), titleSize, 8, "C")
	d.paragraph(Text(subtitle), commentSize, commentLineHt, "C")
	d.pdf.Ln(4)
}

// paragraph renders markup. Centered paragraphs use a single style, taken
// from the markup; left-aligned ones keep per-run bold.
func (d *document) paragraph(markup string, size, lineHt float64, align string) {
	p := parseParagraph(markup)

	if align == "C" {
		style := ""
		if p.bold() {
			style = "B"
		}
		d.pdf.SetFont(fontFamily, style, size)
		d.pdf.MultiCell(0, lineHt, d.tr(p.plain()), "", "C", false)
		return
	}

	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetX(left)
	for _, r := range p.runs {
		style := ""
		if r.bold {
			style = "B"
		}
		d.pdf.SetFont(fontFamily, style, size)
		d.pdf.Write(lineHt, d.tr(r.text))
	}
	d.pdf.Ln(lineHt)
}

func (d *document) comments(blocks []report.CommentBlock) {
	for _, b := range blocks {
		d.ensureSpace(captionLineHt + 2*commentLineHt)
		d.paragraph(Bold(b.Category), captionSize, captionLineHt, "L")
		for _, text := range b.Texts {
			d.paragraph(Text(text), commentSize, commentLineHt, "L")
		}
		d.pdf.Ln(3)
	}
}

// table draws a bordered grid with a bold caption. The index column and the
// data columns share the content width evenly; the header row repeats after
// a page break.
func (d *document) table(t pivot.Table) {
	header := append([]string{t.IndexHeader}, t.Columns...)
	colW := d.contentWidth() / float64(len(header))

	d.ensureSpace(captionLineHt + 3 + 4*cellLineHt)
	d.paragraph(Bold(t.Caption), captionSize, captionLineHt, "L")
	d.pdf.Ln(3)

	d.row(header, colW, true)
	for i, name := range t.Rows {
		cells := append([]string{name}, t.Cells[i]...)
		if d.rowBreaks(cells, colW) {
			d.pdf.AddPage()
			d.row(header, colW, true)
		}
		d.row(cells, colW, false)
	}
	d.pdf.Ln(6)
}

func (d *document) cellLines(cells []string, colW float64) ([][]string, float64) {
	d.pdf.SetFont(fontFamily, "", cellFontSize)

	lines := make([][]string, len(cells))
	maxLines := 1
	for i, c := range cells {
		text := d.tr(parseParagraph(Text(c)).plain())
		for _, l := range d.pdf.SplitLines([]byte(text), colW-2*cellPadding) {
			lines[i] = append(lines[i], string(l))
		}
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	return lines, float64(maxLines)*cellLineHt + 2*cellPadding
}

func (d *document) rowBreaks(cells []string, colW float64) bool {
	_, h := d.cellLines(cells, colW)
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	return d.pdf.GetY()+h > pageH-bottom
}

func (d *document) row(cells []string, colW float64, header bool) {
	lines, h := d.cellLines(cells, colW)

	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.SetLineWidth(0.18)
	style := "D"
	if header {
		d.pdf.SetFillColor(211, 211, 211)
		style = "FD"
	}

	left, _, _, _ := d.pdf.GetMargins()
	y := d.pdf.GetY()
	for i, cellLines := range lines {
		x := left + float64(i)*colW
		d.pdf.Rect(x, y, colW, h, style)

		align := "C"
		if i == 0 {
			align = "L"
		}

		// vertically centered
		offset := (h - 2*cellPadding - float64(len(cellLines))*cellLineHt) / 2
		for j, l := range cellLines {
			d.pdf.SetXY(x+cellPadding, y+cellPadding+offset+float64(j)*cellLineHt)
			d.pdf.CellFormat(colW-2*cellPadding, cellLineHt, strings.TrimRight(l, " "), "", 0, align, false, 0, "")
		}
	}
	d.pdf.SetXY(left, y+h)
}
