package pivot

import (
	"strconv"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Table is a labeled grid: Rows name the index column, Columns the data
// columns, and Cells[i][j] holds the text of row i, column j.
type Table struct {
	Caption     string     `json:"caption"`
	IndexHeader string     `json:"index_header"`
	Columns     []string   `json:"columns"`
	Rows        []string   `json:"rows"`
	Cells       [][]string `json:"cells"`
}

func newTable(caption string, rows, columns []string) Table {
	cells := make([][]string, len(rows))
	for i := range cells {
		cells[i] = make([]string, len(columns))
	}
	return Table{
		Caption: caption,
		Columns: columns,
		Rows:    rows,
		Cells:   cells,
	}
}

// Cell returns the text at a row and column label, or "" when either is unknown.
func (t Table) Cell(row, column string) string {
	ri, ci := indexOf(t.Rows, row), indexOf(t.Columns, column)
	if ri < 0 || ci < 0 {
		return ""
	}
	return t.Cells[ri][ci]
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

// FormatPercent renders a 0-1 fraction as a percentage with two decimals,
// rounding half away from zero: 0.8 -> "80.00%", 0.7025 -> "70.25%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).Mul(hundred).StringFixed(2) + "%"
}

// FormatAmount renders a spot payment without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
