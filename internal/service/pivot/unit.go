package pivot

import (
	"fmt"

	"ficha/internal/constants"
	"ficha/internal/storage"
)

const (
	RowParkingSpot = "Pago spot por venta de Estacionamiento"
	RowStorageSpot = "Pago spot por cada venta de Depósito"
)

func UnitCaption(project string) string {
	return fmt.Sprintf("Tabla Financiamiento - %s (ES / DP)", project)
}

// BuildUnitTable lays out the spot payments of parking (ES) and storage (DP)
// units. The project label is returned alongside the table. It reports false
// when neither unit type is present.
func BuildUnitTable(records []storage.Record, project string) (Table, string, bool) {
	var parking, deposits []storage.Record
	for _, r := range records {
		switch r.UnitType {
		case constants.UnitParking:
			parking = append(parking, r)
		case constants.UnitStorage:
			deposits = append(deposits, r)
		}
	}
	if len(parking) == 0 && len(deposits) == 0 {
		return Table{}, "", false
	}

	columns := make([]string, len(parking))
	for i := range columns {
		columns[i] = fmt.Sprintf("Vende %d", i+1)
	}

	table := newTable(UnitCaption(project), []string{RowParkingSpot, RowStorageSpot}, columns)

	for i, r := range parking {
		if i >= len(columns) {
			break
		}
		table.Cells[0][i] = spot(r)
	}

	if len(parking) > 0 && len(deposits) > 0 {
		table.Cells[1][len(parking)/2] = spot(deposits[0])
	}

	return table, project, true
}

func spot(r storage.Record) string {
	if r.Spot == nil {
		return ""
	}
	return FormatAmount(*r.Spot)
}
