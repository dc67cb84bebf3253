package pivot

import (
	"fmt"

	"ficha/internal/constants"
	"ficha/internal/storage"
)

// GroupCaption is the heading of a group table in the preview and the report.
func GroupCaption(group string) string {
	return "Tabla Financiamiento - " + group
}

// BucketLabels names the sales-count columns 1..maxCount; the last one means
// "maxCount or more".
func BucketLabels(group string, maxCount int) []string {
	labels := make([]string, 0, maxCount)
	for i := 1; i <= maxCount; i++ {
		switch {
		case i == maxCount:
			labels = append(labels, fmt.Sprintf("Si logra %d ventas a más del %s", i, group))
		case i > 1:
			labels = append(labels, fmt.Sprintf("Si logra %d ventas del %s", i, group))
		default:
			labels = append(labels, fmt.Sprintf("Si logra %d venta del %s", i, group))
		}
	}
	return labels
}

// BuildGroupTable pivots the records of one group into its milestone table.
// It reports false when the group is unknown, has no records, or no record
// carries a positive sales count.
func BuildGroupTable(records []storage.Record, group string) (Table, bool) {
	def, ok := constants.GroupDefinitions[group]
	if !ok {
		return Table{}, false
	}

	var (
		rows     []storage.Record
		maxCount int
	)
	for _, r := range records {
		if r.Group != group {
			continue
		}
		rows = append(rows, r)
		if r.SalesCount > maxCount {
			maxCount = r.SalesCount
		}
	}
	if len(rows) == 0 || maxCount < 1 {
		return Table{}, false
	}

	columns := append([]string{constants.AchievementColumn}, BucketLabels(group, maxCount)...)
	table := newTable(GroupCaption(group), append([]string(nil), def.Rows...), columns)

	for i, row := range def.Rows {
		if label := def.Achievement[row]; label != "" {
			table.Cells[i][0] = label
		}
	}

	for _, r := range rows {
		if r.SalesCount < 1 {
			continue
		}
		bucket := min(r.SalesCount, maxCount)

		for _, col := range def.Columns {
			v, ok := r.Value(col)
			if !ok {
				continue
			}
			target, ok := def.Targets[col].Resolve(r.PaymentForm)
			if !ok {
				continue
			}
			ri := def.RowIndex(target)
			if ri < 0 {
				continue
			}
			// later records overwrite earlier ones
			table.Cells[ri][bucket] = FormatPercent(v)
		}
	}

	return table, true
}
