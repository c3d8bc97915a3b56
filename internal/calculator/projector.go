package calculator

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
)

// Project turns a normalized cumulative series into what the chart shows.
// Cumulative mode is a copy of the input. Monthly mode replaces every value
// after the first month with its change from the previous month; the first
// month has nothing to diff against and is passed through as-is.
func Project(series []domain.PerformanceSnapshot, mode domain.DisplayMode) []domain.PerformanceSnapshot {
	out := make([]domain.PerformanceSnapshot, 0, len(series))
	for i, snapshot := range series {
		if mode != domain.DisplayModeMonthlyDelta || i == 0 {
			out = append(out, snapshot.Clone())
			continue
		}

		prev := series[i-1]
		delta := domain.PerformanceSnapshot{
			Month:   snapshot.Month,
			Returns: make(map[string]interface{}, len(snapshot.Returns)),
		}
		for symbol, value := range snapshot.Returns {
			delta.Returns[symbol] = util.ToNumber(value) - util.ToNumber(prev.Returns[symbol])
		}
		out = append(out, delta)
	}
	return out
}
