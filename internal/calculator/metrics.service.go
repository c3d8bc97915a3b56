package calculator

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
	"math"

	"github.com/montanaflynn/stats"
)

type SymbolMetrics struct {
	Symbol       string                   `json:"symbol"`
	Allocation   float64                  `json:"allocation"`
	Direction    domain.PositionDirection `json:"direction"`
	PeriodReturn float64                  `json:"periodReturn"`
	BestMonth    float64                  `json:"bestMonth"`
	WorstMonth   float64                  `json:"worstMonth"`
	MonthlyStdev float64                  `json:"monthlyStdev"`
}

type WindowMetricsResult struct {
	Months                int             `json:"months"`
	StartMonth            string          `json:"startMonth"`
	EndMonth              string          `json:"endMonth"`
	PortfolioReturn       float64         `json:"portfolioReturn"`
	PortfolioMonthlyStdev float64         `json:"portfolioMonthlyStdev"`
	Symbols               []SymbolMetrics `json:"symbols"`
}

// CalculateWindowMetrics summarizes a normalized cumulative series. It
// assumes the series is already sorted and trimmed to the selected window.
// Monthly statistics need at least two months of changes and stay at zero
// otherwise.
func CalculateWindowMetrics(series []domain.PerformanceSnapshot, positions []domain.PortfolioPosition) WindowMetricsResult {
	result := WindowMetricsResult{
		Months:          len(series),
		PortfolioReturn: PortfolioReturn(series, positions),
		Symbols:         []SymbolMetrics{},
	}
	if len(series) == 0 {
		return result
	}
	result.StartMonth = series[0].Month
	result.EndMonth = series[len(series)-1].Month

	deltas := Project(series, domain.DisplayModeMonthlyDelta)
	portfolioDeltas := make([]float64, len(deltas)-1)

	for _, p := range positions {
		m := SymbolMetrics{
			Symbol:       p.Symbol,
			Allocation:   p.Allocation,
			Direction:    p.Direction,
			PeriodReturn: PeriodReturn(series[0], series[len(series)-1], p.Symbol),
		}

		monthly := make([]float64, 0, len(deltas)-1)
		for i := 1; i < len(deltas); i++ {
			d := util.ToNumber(deltas[i].Returns[p.Symbol])
			monthly = append(monthly, d)
			portfolioDeltas[i-1] += d * (p.Allocation / 100)
		}

		m.BestMonth, m.WorstMonth = maxMin(monthly)
		m.MonthlyStdev = sampleStdev(monthly)
		result.Symbols = append(result.Symbols, m)
	}

	result.PortfolioMonthlyStdev = sampleStdev(portfolioDeltas)
	return result
}

func maxMin(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, err := stats.Max(values)
	if err != nil {
		return 0, 0
	}
	min, err := stats.Min(values)
	if err != nil {
		return 0, 0
	}
	return max, min
}

func sampleStdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	stdev, err := stats.StandardDeviationSample(values)
	if err != nil || math.IsNaN(stdev) {
		return 0
	}
	return stdev
}
