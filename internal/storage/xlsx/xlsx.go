package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ficha/internal/constants"
	"ficha/internal/storage"
)

// keyColumns are decoded into dedicated Record fields and kept out of Values.
var keyColumns = map[string]bool{
	constants.ColPeriod:      true,
	constants.ColProject:     true,
	constants.ColGroup:       true,
	constants.ColSalesCount:  true,
	constants.ColPaymentForm: true,
	constants.ColUnitType:    true,
	constants.ColSpot:        true,
}

// DefaultMaxSalesCount bounds NUM DE VENTAS when no limit is configured.
const DefaultMaxSalesCount = 100

type Loader struct {
	maxSalesCount int
}

// New returns a loader that rejects workbooks with a NUM DE VENTAS above
// maxSalesCount, since every count becomes a table column.
func New(maxSalesCount int) *Loader {
	if maxSalesCount <= 0 {
		maxSalesCount = DefaultMaxSalesCount
	}
	return &Loader{maxSalesCount: maxSalesCount}
}

// Load reads the "Ficha" sheet and, when withComments is set, the
// "Dim Grupos" sheet. Every error wraps storage.ErrLoad.
func (l *Loader) Load(r io.Reader, withComments bool) (*storage.Workbook, error) {
	const op = "storage.xlsx.Load"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: open: %v", op, storage.ErrLoad, err)
	}
	defer f.Close()

	use1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		use1904 = *props.Date1904
	}

	wb := &storage.Workbook{}

	wb.Records, err = readRecords(f, use1904, l.maxSalesCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrLoad, err)
	}

	if withComments {
		wb.Comments, err = readComments(f, use1904)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrLoad, err)
		}
	}

	return wb, nil
}

type sheet struct {
	name    string
	index   map[string]int
	rows    [][]string
	use1904 bool
}

func openSheet(f *excelize.File, name string, use1904 bool, required ...string) (*sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}

	s := &sheet{name: name, rows: rows[1:], index: make(map[string]int), use1904: use1904}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, dup := s.index[h]; !dup && h != "" {
			s.index[h] = i
		}
	}

	for _, col := range required {
		if _, ok := s.index[col]; !ok {
			return nil, fmt.Errorf("sheet %q: missing column %q", name, col)
		}
	}

	return s, nil
}

// cell returns the trimmed cell of a column; excelize drops trailing empty cells.
func (s *sheet) cell(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *sheet) period(row []string, rowNum int) (time.Time, error) {
	t, err := parseDate(s.cell(row, constants.ColPeriod), s.use1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("sheet %q row %d: column %s: %w", s.name, rowNum, constants.ColPeriod, err)
	}
	return t, nil
}

func readRecords(f *excelize.File, use1904 bool, maxSalesCount int) ([]storage.Record, error) {
	s, err := openSheet(f, constants.SheetRecords, use1904, constants.ColPeriod)
	if err != nil {
		return nil, err
	}

	records := make([]storage.Record, 0, len(s.rows))
	for i, row := range s.rows {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}

		p, err := s.period(row, rowNum)
		if err != nil {
			return nil, err
		}

		rawCount := s.cell(row, constants.ColSalesCount)
		if v, ok := parseNumber(rawCount); ok && v > float64(maxSalesCount) {
			return nil, fmt.Errorf("sheet %q row %d: column %s: %s exceeds the limit of %d",
				s.name, rowNum, constants.ColSalesCount, rawCount, maxSalesCount)
		}

		rec := storage.Record{
			Row:         rowNum,
			Period:      p,
			Project:     s.cell(row, constants.ColProject),
			Group:       s.cell(row, constants.ColGroup),
			SalesCount:  parseCount(rawCount),
			PaymentForm: s.cell(row, constants.ColPaymentForm),
			UnitType:    s.cell(row, constants.ColUnitType),
			Values:      make(map[string]float64),
		}

		if v, ok := parseNumber(s.cell(row, constants.ColSpot)); ok {
			rec.Spot = &v
		}

		for col, idx := range s.index {
			if keyColumns[col] || idx >= len(row) {
				continue
			}
			if v, ok := parseNumber(row[idx]); ok {
				rec.Values[col] = v
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func readComments(f *excelize.File, use1904 bool) ([]storage.Comment, error) {
	s, err := openSheet(f, constants.SheetComments, use1904,
		constants.ColPeriod, constants.ColProject, constants.ColCommentGroup, constants.ColCommentText)
	if err != nil {
		return nil, err
	}

	var comments []storage.Comment
	for i, row := range s.rows {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}

		p, err := s.period(row, rowNum)
		if err != nil {
			return nil, err
		}

		comments = append(comments, storage.Comment{
			Row:      rowNum,
			Period:   p,
			Project:  s.cell(row, constants.ColProject),
			Category: s.cell(row, constants.ColCommentGroup),
			// free text is kept verbatim
			Text: cellRaw(s, row, constants.ColCommentText),
		})
	}

	return comments, nil
}

func cellRaw(s *sheet, row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
