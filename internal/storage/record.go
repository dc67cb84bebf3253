package storage

import (
	"errors"
	"time"
)

// ErrLoad marks any failure to read the uploaded workbook.
var ErrLoad = errors.New("workbook could not be read")

// Record is one row of the "Ficha" sheet.
type Record struct {
	Row         int
	Period      time.Time
	Project     string
	Group       string
	SalesCount  int
	PaymentForm string
	UnitType    string
	Spot        *float64
	// Values holds the numeric cells of the remaining columns keyed by header.
	Values map[string]float64
}

// Value returns a named numeric cell; false when the cell is empty or not a number.
func (r Record) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Comment is one row of the "Dim Grupos" sheet.
type Comment struct {
	Row      int
	Period   time.Time
	Project  string
	Category string
	Text     string
}

type Workbook struct {
	Records  []Record
	Comments []Comment
}

func samePeriod(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FilterRecords keeps the records of a period and project in source order.
func FilterRecords(records []Record, period time.Time, project string) []Record {
	var out []Record
	for _, r := range records {
		if r.Project == project && samePeriod(r.Period, period) {
			out = append(out, r)
		}
	}
	return out
}

// FilterComments keeps the comments of a period and project in source order.
func FilterComments(comments []Comment, period time.Time, project string) []Comment {
	var out []Comment
	for _, c := range comments {
		if c.Project == project && samePeriod(c.Period, period) {
			out = append(out, c)
		}
	}
	return out
}
