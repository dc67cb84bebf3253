package constants

import (
	"fmt"
	"time"
)

// Worksheets and columns of the uploaded workbook.
const (
	SheetRecords  = "Ficha"
	SheetComments = "Dim Grupos"

	ColPeriod      = "PERIODO"
	ColProject     = "PROYECTO"
	ColGroup       = "GRUPO"
	ColSalesCount  = "NUM DE VENTAS"
	ColPaymentForm = "FORMA DE PAGO"
	ColUnitType    = "TIPO UNID"
	ColSpot        = "SPOT"

	ColCommentGroup = "Grupo"
	ColCommentText  = "Comentario"
)

// Unit types of the ES / DP table.
const (
	UnitParking = "ES"
	UnitStorage = "DP"
)

const PeriodLayout = "2006-01-02"

var (
	firstPeriod = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	lastPeriod  = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
)

var Projects = []string{
	"GRAN GUARDIA PERUANA - ETAPA 1",
	"MF GRAN PLAZA LORETO",
	"GRAN CENTRAL COLONIAL 2 -  ETAPA I",
	"TICINO",
	"MANDRAGORA",
	"MF LA MAR",
	"MF GRAN CENTRAL COLONIAL",
	"GRAN TOMAS VALLE",
	"MF LIMA NORTE CARABAYLLO",
	"VILLA RIVIERA",
	"MF GRAN COLONIAL",
	"MF VILLA RIVIERA - ETAPA 2",
	"GRAN JARDIN TICINO 2 - ETAPA 1",
	"GRAN GUARDIA PERUANA - ETAPA 2",
}

type Period struct {
	Date time.Time
}

// Value is the form value of the period.
func (p Period) Value() string {
	return p.Date.Format(PeriodLayout)
}

// Label renders the period day-first without padding, e.g. "1/6/2023".
func (p Period) Label() string {
	return fmt.Sprintf("%d/%d/%d", p.Date.Day(), int(p.Date.Month()), p.Date.Year())
}

// Periods enumerates the selectable month starts, oldest first.
func Periods() []Period {
	var periods []Period
	for d := firstPeriod; !d.After(lastPeriod); d = d.AddDate(0, 1, 0) {
		periods = append(periods, Period{Date: d})
	}
	return periods
}

// ParsePeriod accepts a form value and checks it against Periods.
func ParsePeriod(value string) (time.Time, error) {
	d, err := time.Parse(PeriodLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", value, err)
	}
	if d.Day() != 1 || d.Before(firstPeriod) || d.After(lastPeriod) {
		return time.Time{}, fmt.Errorf("period %q out of range", value)
	}
	return d, nil
}

func IsProject(name string) bool {
	for _, p := range Projects {
		if p == name {
			return true
		}
	}
	return false
}

// Commentary categories of the "Dim Grupos" sheet, grouped by where the
// report places them.
var (
	CommentsLeading  = []string{"Consideraciones", "Objetivo"}
	CommentsInline   = []string{"Comentarios"}
	CommentsTrailing = []string{"Resoluciones", "Penalidad"}
)
