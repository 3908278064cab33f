package dataprocessing

import (
	"github.com/shopspring/decimal"

	"arcli/pkg/contracts/domain"
)

// ColumnStats holds summary statistics for a numeric column.
type ColumnStats struct {
	Count int
	Sum   decimal.Decimal
	Mean  decimal.Decimal
	Max   decimal.Decimal
	Min   decimal.Decimal
}

// SummaryStats computes sum, mean, max and min over the numeric cells of a
// column. The second return value is false when the column is absent from
// the table or holds no numeric values.
func SummaryStats(table domain.Table, column string) (ColumnStats, bool) {
	if !table.HasColumn(column) {
		return ColumnStats{}, false
	}

	var stats ColumnStats
	for _, r := range table.Rows {
		v, ok := r.Get(column).Decimal()
		if !ok {
			continue
		}
		if stats.Count == 0 {
			stats.Max = v
			stats.Min = v
		} else {
			if v.GreaterThan(stats.Max) {
				stats.Max = v
			}
			if v.LessThan(stats.Min) {
				stats.Min = v
			}
		}
		stats.Sum = stats.Sum.Add(v)
		stats.Count++
	}

	if stats.Count == 0 {
		return ColumnStats{}, false
	}

	stats.Mean = stats.Sum.Div(decimal.NewFromInt(int64(stats.Count)))
	return stats, true
}
