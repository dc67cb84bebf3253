package preview

import (
	"encoding/base64"
	"html/template"

	"ficha/internal/constants"
	"ficha/internal/service/report"
)

type Selected struct {
	Period  string
	Project string
	Variant string
}

type Download struct {
	FileName string
	Href     template.URL
}

// Page is the request-scoped view model shared by the form and preview pages.
type Page struct {
	Title    string
	ShowLogo bool

	Periods  []constants.Period
	Projects []string
	Variants []report.Variant
	Selected Selected

	Error   string
	Warning string

	Report   *report.Report
	Sheet    bool
	Leading  []report.CommentBlock
	Inline   []report.CommentBlock
	Trailing []report.CommentBlock
	Warnings []string

	PDF   *Download
	Excel *Download
}

func newPage(showLogo bool) *Page {
	periods := constants.Periods()
	return &Page{
		Title:    "Los Portales - Tabla Financiamiento",
		ShowLogo: showLogo,
		Periods:  periods,
		Projects: constants.Projects,
		Variants: report.Variants,
		Selected: Selected{
			Period:  periods[0].Value(),
			Project: constants.Projects[0],
			Variant: string(report.VariantTables),
		},
	}
}

func (p *Page) setReport(rep *report.Report) {
	p.Report = rep
	p.Sheet = rep.Variant.WithComments()
	if p.Sheet {
		p.Leading = rep.CommentBlocks(constants.CommentsLeading)
		p.Inline = rep.CommentBlocks(constants.CommentsInline)
		p.Trailing = rep.CommentBlocks(constants.CommentsTrailing)
	}
}

func dataURL(mime string, data []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
