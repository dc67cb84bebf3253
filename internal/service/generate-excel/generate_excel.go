package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"ficha/internal/service/report"
)

const sheetName = "Tablas"

type GenerateExcelService struct{}

func NewGenerateService() *GenerateExcelService {
	return &GenerateExcelService{}
}

// GenerateExcel stacks every table of the report on one sheet, each under
// its caption, with the same cell text as the preview and the PDF.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, rep *report.Report) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// --- styles ---
	captionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	indexStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	maxCols := 1
	rowNum := 1

	if rep.Variant.WithComments() {
		f.SetCellValue(sheetName, cellName(1, rowNum), rep.Project)
		f.SetCellStyle(sheetName, cellName(1, rowNum), cellName(1, rowNum), captionStyle)
		rowNum += 2
	}

	for _, sec := range rep.Sections() {
		t := sec.Table
		width := len(t.Columns) + 1
		if width > maxCols {
			maxCols = width
		}

		f.SetCellValue(sheetName, cellName(1, rowNum), t.Caption)
		f.SetCellStyle(sheetName, cellName(1, rowNum), cellName(1, rowNum), captionStyle)
		rowNum++

		// header
		f.SetCellValue(sheetName, cellName(1, rowNum), t.IndexHeader)
		for j, col := range t.Columns {
			f.SetCellValue(sheetName, cellName(j+2, rowNum), col)
		}
		f.SetCellStyle(sheetName, cellName(1, rowNum), cellName(width, rowNum), headerStyle)
		rowNum++

		for i, name := range t.Rows {
			f.SetCellValue(sheetName, cellName(1, rowNum), name)
			f.SetCellStyle(sheetName, cellName(1, rowNum), cellName(1, rowNum), indexStyle)
			for j, v := range t.Cells[i] {
				f.SetCellStr(sheetName, cellName(j+2, rowNum), v)
			}
			if width > 1 {
				f.SetCellStyle(sheetName, cellName(2, rowNum), cellName(width, rowNum), cellStyle)
			}
			rowNum++
		}

		// spacer
		rowNum++
	}

	f.SetColWidth(sheetName, "A", "A", 45)
	if maxCols > 1 {
		last, _ := excelize.ColumnNumberToName(maxCols)
		f.SetColWidth(sheetName, "B", last, 22)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
