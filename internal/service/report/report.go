package report

import (
	"errors"
	"fmt"
	"time"

	"ficha/internal/constants"
	"ficha/internal/service/pivot"
)

var (
	ErrNoData         = errors.New("no records for period and project")
	ErrInvalidRequest = errors.New("invalid report request")
)

type Variant string

const (
	// VariantTables exports the tables only.
	VariantTables Variant = "tablas"
	// VariantSheet adds the logo, the project title and the commentary.
	VariantSheet Variant = "ficha"
)

var Variants = []Variant{VariantTables, VariantSheet}

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantTables:
		return VariantTables, nil
	case VariantSheet:
		return VariantSheet, nil
	}
	return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidRequest, s)
}

func (v Variant) Label() string {
	if v == VariantSheet {
		return "Ficha Departamentos"
	}
	return "Tablas Financiamiento"
}

func (v Variant) FileName() string {
	if v == VariantSheet {
		return "Ficha_Departamentos.pdf"
	}
	return "Tablas_Financiamiento.pdf"
}

// ExcelFileName is the name of the xlsx export of the same tables.
func (v Variant) ExcelFileName() string {
	if v == VariantSheet {
		return "Ficha_Departamentos.xlsx"
	}
	return "Tablas_Financiamiento.xlsx"
}

func (v Variant) WithComments() bool {
	return v == VariantSheet
}

type Request struct {
	Period  time.Time
	Project string
	Variant Variant
}

// NewRequest validates the selector values of a form submission.
func NewRequest(period, project, variant string) (Request, error) {
	p, err := constants.ParsePeriod(period)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !constants.IsProject(project) {
		return Request{}, fmt.Errorf("%w: unknown project %q", ErrInvalidRequest, project)
	}
	v, err := ParseVariant(variant)
	if err != nil {
		return Request{}, err
	}
	return Request{Period: p, Project: project, Variant: v}, nil
}

type Section struct {
	Key   string      `json:"key"`
	Table pivot.Table `json:"table"`
}

type CommentBlock struct {
	Category string
	Texts    []string
}

type Report struct {
	ID      string
	Period  time.Time
	Project string
	Variant Variant
	Groups  []Section
	Units   *Section
	// Comments maps a commentary category to its texts in source order.
	Comments map[string][]string
}

// Sections returns every built table in report order.
func (r *Report) Sections() []Section {
	out := append([]Section(nil), r.Groups...)
	if r.Units != nil {
		out = append(out, *r.Units)
	}
	return out
}

func (r *Report) Empty() bool {
	return len(r.Groups) == 0 && r.Units == nil
}

func (r *Report) PeriodLabel() string {
	return constants.Period{Date: r.Period}.Label()
}

// CommentBlocks returns the non-empty commentary of the given categories in
// the order asked for.
func (r *Report) CommentBlocks(categories []string) []CommentBlock {
	var blocks []CommentBlock
	for _, c := range categories {
		if texts := r.Comments[c]; len(texts) > 0 {
			blocks = append(blocks, CommentBlock{Category: c, Texts: texts})
		}
	}
	return blocks
}
