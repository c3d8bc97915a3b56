package calculator

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
	"sort"
	"time"
)

// NormalizeWindow sorts the series by month and keeps the trailing
// min(months, len(series)) snapshots. The input slice is left untouched.
func NormalizeWindow(series []domain.PerformanceSnapshot, months int) []domain.PerformanceSnapshot {
	if len(series) == 0 || months <= 0 {
		return []domain.PerformanceSnapshot{}
	}

	sorted := SortByMonth(series)
	if months < len(sorted) {
		sorted = sorted[len(sorted)-months:]
	}
	return sorted
}

// SortByMonth returns a copy of the series in ascending month order.
// Months that don't parse as YYYY-MM sort first, in their original order.
func SortByMonth(series []domain.PerformanceSnapshot) []domain.PerformanceSnapshot {
	keys := make([]time.Time, len(series))
	idx := make([]int, len(series))
	for i, s := range series {
		idx[i] = i
		if t, err := util.ParseMonth(s.Month); err == nil {
			keys[i] = t
		}
	}

	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]].Before(keys[idx[j]])
	})

	out := make([]domain.PerformanceSnapshot, 0, len(series))
	for _, i := range idx {
		out = append(out, series[i])
	}
	return out
}
