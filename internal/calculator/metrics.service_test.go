package calculator

import (
	"aistrategy/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCalculateWindowMetrics(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"AAPL": 0.0, "MSFT": 0.0}),
			newSnapshot("2024-02", map[string]interface{}{"AAPL": 4.0, "MSFT": -2.0}),
			newSnapshot("2024-03", map[string]interface{}{"AAPL": 2.0, "MSFT": 0.0}),
		}
		positions := []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 50, Direction: domain.PositionLong},
			{Symbol: "MSFT", Allocation: 50, Direction: domain.PositionLong},
		}

		out := CalculateWindowMetrics(series, positions)
		require.Equal(
			t,
			"",
			cmp.Diff(
				WindowMetricsResult{
					Months:                3,
					StartMonth:            "2024-01",
					EndMonth:              "2024-03",
					PortfolioReturn:       1,
					PortfolioMonthlyStdev: 0.707106781,
					Symbols: []SymbolMetrics{
						{
							Symbol:       "AAPL",
							Allocation:   50,
							Direction:    domain.PositionLong,
							PeriodReturn: 2,
							BestMonth:    4,
							WorstMonth:   -2,
							MonthlyStdev: 4.242640687,
						},
						{
							Symbol:       "MSFT",
							Allocation:   50,
							Direction:    domain.PositionLong,
							PeriodReturn: 0,
							BestMonth:    2,
							WorstMonth:   -2,
							MonthlyStdev: 2.828427125,
						},
					},
				},
				out,
				cmp.Comparer(func(i, j float64) bool {
					return i-j < 1e-6 && j-i < 1e-6
				}),
			),
		)
	})

	t.Run("single month", func(t *testing.T) {
		out := CalculateWindowMetrics(monthlySeries(1, "AAPL"), []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 100},
		})
		require.Equal(t, 1, out.Months)
		require.Len(t, out.Symbols, 1)
		require.Equal(t, 0.0, out.Symbols[0].MonthlyStdev)
		require.Equal(t, 0.0, out.Symbols[0].BestMonth)
	})

	t.Run("empty", func(t *testing.T) {
		out := CalculateWindowMetrics(nil, nil)
		require.Equal(t, 0, out.Months)
		require.Equal(t, 0.0, out.PortfolioReturn)
	})
}
