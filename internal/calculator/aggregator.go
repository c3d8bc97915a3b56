package calculator

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
)

// PortfolioReturn is the allocation-weighted return between the first and
// last snapshot of a normalized cumulative series. Interior months don't
// matter. Direction is not applied: a SHORT position contributes its raw
// instrument return the same way a LONG one does.
func PortfolioReturn(series []domain.PerformanceSnapshot, positions []domain.PortfolioPosition) float64 {
	if len(series) == 0 {
		return 0
	}

	first := series[0]
	last := series[len(series)-1]

	total := 0.0
	for _, p := range positions {
		total += PeriodReturn(first, last, p.Symbol) * (p.Allocation / 100)
	}
	return total
}

// PeriodReturn is the change in a symbol's cumulative return between two
// snapshots of the same series.
func PeriodReturn(first, last domain.PerformanceSnapshot, symbol string) float64 {
	return util.ToNumber(last.Returns[symbol]) - util.ToNumber(first.Returns[symbol])
}
