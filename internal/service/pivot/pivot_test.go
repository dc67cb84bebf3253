package pivot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ficha/internal/constants"
	"ficha/internal/storage"
)

func rec(group string, count int, form string, values map[string]float64) storage.Record {
	return storage.Record{Group: group, SalesCount: count, PaymentForm: form, Values: values}
}

func amount(v float64) *float64 { return &v }

func TestBuildGroupTable_EmptyIsAbsent(t *testing.T) {
	for _, g := range constants.Groups {
		_, ok := BuildGroupTable(nil, g)
		assert.False(t, ok, g)

		// records of other groups only
		_, ok = BuildGroupTable([]storage.Record{rec("Grupo 9", 1, "CO", nil)}, g)
		assert.False(t, ok, g)
	}
}

func TestBuildGroupTable_UnknownGroup(t *testing.T) {
	_, ok := BuildGroupTable([]storage.Record{rec("Grupo 4", 1, "CO", nil)}, "Grupo 4")
	assert.False(t, ok)
}

func TestBuildGroupTable_NoPositiveCount(t *testing.T) {
	_, ok := BuildGroupTable([]storage.Record{rec(constants.Group1, 0, "CO", map[string]float64{"Cierre de Proforma": 0.5})}, constants.Group1)
	assert.False(t, ok)
}

func TestBuildGroupTable_ColumnCount(t *testing.T) {
	records := []storage.Record{
		rec(constants.Group2, 1, "CO", nil),
		rec(constants.Group2, 3, "PA", nil),
		rec(constants.Group2, 2, "PA", nil),
	}

	table, ok := BuildGroupTable(records, constants.Group2)
	require.True(t, ok)

	require.Len(t, table.Columns, 4)
	assert.Equal(t, "% logro", table.Columns[0])
	assert.Equal(t, []string{
		"Si logra 1 venta del Grupo 2",
		"Si logra 2 ventas del Grupo 2",
		"Si logra 3 ventas a más del Grupo 2",
	}, table.Columns[1:])

	for _, c := range table.Columns[1:3] {
		assert.NotContains(t, c, "a más")
	}
	assert.Contains(t, table.Columns[3], "a más")
	assert.Equal(t, "Tabla Financiamiento - Grupo 2", table.Caption)
}

func TestBuildGroupTable_EndToEndGroup1(t *testing.T) {
	records := []storage.Record{
		rec(constants.Group1, 2, "CO", map[string]float64{"Cierre de Proforma": 0.5}),
	}

	table, ok := BuildGroupTable(records, constants.Group1)
	require.True(t, ok)

	require.Len(t, table.Columns, 3)
	last := "Si logra 2 ventas a más del Grupo 1"
	assert.Equal(t, last, table.Columns[2])
	assert.Equal(t, "100%", table.Cell("Cierre de Proforma CO", "% logro"))
	assert.Equal(t, "50.00%", table.Cell("Cierre de Proforma CO", last))

	def := constants.GroupDefinitions[constants.Group1]
	for i, row := range def.Rows {
		for j, col := range table.Columns {
			if row == "Cierre de Proforma CO" && col == last {
				continue
			}
			if j == 0 {
				assert.Equal(t, def.Achievement[row], table.Cells[i][j], row)
				continue
			}
			assert.Equal(t, "", table.Cells[i][j], "%s / %s", row, col)
		}
	}
}

func TestBuildGroupTable_LastWriteWins(t *testing.T) {
	records := []storage.Record{
		rec(constants.Group1, 1, "CIC", map[string]float64{"Desembolso": 0.2}),
		rec(constants.Group1, 1, "CIC", map[string]float64{"Desembolso": 0.35}),
	}

	table, ok := BuildGroupTable(records, constants.Group1)
	require.True(t, ok)
	assert.Equal(t, "35.00%", table.Cell("Desembolso CIC", "Si logra 1 ventas a más del Grupo 1"))
}

func TestBuildGroupTable_PaymentFormRouting(t *testing.T) {
	records := []storage.Record{
		// no Desembolso row for CO: skipped
		rec(constants.Group1, 1, "CO", map[string]float64{"Desembolso": 0.2, "Cierre de Proforma": 1}),
		// unknown payment form: skipped for keyed columns only
		rec(constants.Group1, 2, "XX", map[string]float64{"Cierre de Proforma": 0.4, "Fin de pago de cuota inicial": 0.1}),
		rec(constants.Group1, 2, "CD", map[string]float64{"50% cuota del Credito directo": 0.2}),
	}

	table, ok := BuildGroupTable(records, constants.Group1)
	require.True(t, ok)

	one, two := table.Columns[1], table.Columns[2]
	assert.Equal(t, "100.00%", table.Cell("Cierre de Proforma CO", one))
	assert.Equal(t, "", table.Cell("Desembolso CIC", one))
	assert.Equal(t, "", table.Cell("Desembolso CIF", one))
	assert.Equal(t, "10.00%", table.Cell("Fin de pago de cuota inicial CIF", two))
	assert.Equal(t, "20.00%", table.Cell("50% cuota del Credito directo CD", two))

	for _, row := range []string{"Cierre de Proforma CIC", "Cierre de Proforma CIF", "Cierre de Proforma CD"} {
		assert.Equal(t, "", table.Cell(row, two), row)
	}
}

func TestBuildGroupTable_SavingsGroupsDifferOnlyInFirstRow(t *testing.T) {
	records := []storage.Record{
		rec(constants.Group2, 1, "CO", map[string]float64{"Cierre de Proforma": 0.6}),
		rec(constants.Group3, 1, "CO", map[string]float64{"Cierre de Proforma": 0.6}),
		rec(constants.Group3, 1, "PA", map[string]float64{"Desembolso": 0.3}),
	}

	g2, ok := BuildGroupTable(records, constants.Group2)
	require.True(t, ok)
	g3, ok := BuildGroupTable(records, constants.Group3)
	require.True(t, ok)

	assert.Equal(t, "Plan Ahorro - Hasta 9 Meses", g2.Rows[0])
	assert.Equal(t, "Plan Ahorro - Hasta 6 Meses", g3.Rows[0])
	assert.Equal(t, g2.Rows[1:], g3.Rows[1:])
	assert.Equal(t, "60.00%", g2.Cells[0][1])
	assert.Equal(t, "60.00%", g3.Cells[0][1])
	assert.Equal(t, "30.00%", g3.Cell("Desembolso", g3.Columns[1]))
	assert.Equal(t, "30%", g3.Cell("Desembolso", "% logro"))
	assert.Equal(t, "", g3.Cell("Plan Ahorro - Hasta 6 Meses", "% logro"))
}

func TestBuildGroupTable_SkipsRecordsWithoutCount(t *testing.T) {
	records := []storage.Record{
		rec(constants.Group2, 2, "PA", nil),
		rec(constants.Group2, 0, "PA", map[string]float64{"Desembolso": 0.3}),
	}

	table, ok := BuildGroupTable(records, constants.Group2)
	require.True(t, ok)
	for _, row := range table.Cells {
		for j, cell := range row[1:] {
			assert.Equal(t, "", cell, "column %d", j+1)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.8, "80.00%"},
		{0.7025, "70.25%"},
		{1, "100.00%"},
		{0, "0.00%"},
		{0.12345, "12.35%"},
		{0.12344, "12.34%"},
		{0.00005, "0.01%"},
		{0.00004, "0.00%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercent(tt.in), "%v", tt.in)
	}
}

func TestBuildUnitTable(t *testing.T) {
	t.Run("absent without ES or DP", func(t *testing.T) {
		_, _, ok := BuildUnitTable([]storage.Record{{UnitType: "DEP"}}, "TICINO")
		assert.False(t, ok)
	})

	t.Run("storage only gives zero columns", func(t *testing.T) {
		table, project, ok := BuildUnitTable([]storage.Record{{UnitType: "DP", Spot: amount(300)}}, "TICINO")
		require.True(t, ok)
		assert.Equal(t, "TICINO", project)
		assert.Empty(t, table.Columns)
		assert.Equal(t, []string{RowParkingSpot, RowStorageSpot}, table.Rows)
		assert.Len(t, table.Cells, 2)
		assert.Empty(t, table.Cells[0])
	})

	t.Run("storage value in the middle column", func(t *testing.T) {
		records := []storage.Record{
			{UnitType: "ES", Spot: amount(500)},
			{UnitType: "DP", Spot: amount(250.5)},
			{UnitType: "ES"},
			{UnitType: "DP", Spot: amount(999)},
			{UnitType: "ES", Spot: amount(700)},
		}

		table, project, ok := BuildUnitTable(records, "MANDRAGORA")
		require.True(t, ok)
		assert.Equal(t, "MANDRAGORA", project)
		assert.Equal(t, []string{"Vende 1", "Vende 2", "Vende 3"}, table.Columns)
		assert.Equal(t, []string{"500", "", "700"}, table.Cells[0])
		assert.Equal(t, []string{"", "250.5", ""}, table.Cells[1])
		assert.True(t, strings.HasSuffix(table.Caption, "MANDRAGORA (ES / DP)"))
	})

	t.Run("parking only leaves second row empty", func(t *testing.T) {
		records := []storage.Record{{UnitType: "ES", Spot: amount(100)}, {UnitType: "ES", Spot: amount(200)}}

		table, _, ok := BuildUnitTable(records, "TICINO")
		require.True(t, ok)
		assert.Equal(t, []string{"100", "200"}, table.Cells[0])
		assert.Equal(t, []string{"", ""}, table.Cells[1])
	})
}

func TestGroupDefinitionsAreConsistent(t *testing.T) {
	for name, def := range constants.GroupDefinitions {
		assert.Equal(t, name, def.Name)
		assert.Len(t, def.Achievement, len(def.Rows), name)
		for _, row := range def.Rows {
			_, ok := def.Achievement[row]
			assert.True(t, ok, "%s: %s has no achievement label", name, row)
		}
		for _, col := range def.Columns {
			target, ok := def.Targets[col]
			require.True(t, ok, "%s: %s has no target", name, col)
			if target.ByPaymentForm == nil {
				assert.GreaterOrEqual(t, def.RowIndex(target.Row), 0, "%s: %s", name, target.Row)
			}
			for _, row := range target.ByPaymentForm {
				assert.GreaterOrEqual(t, def.RowIndex(row), 0, "%s: %s", name, row)
			}
		}
	}
}
