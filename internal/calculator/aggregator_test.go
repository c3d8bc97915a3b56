package calculator

import (
	"aistrategy/internal/domain"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPortfolioReturn(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		require.Equal(t, 0.0, PortfolioReturn(nil, []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 100},
		}))
	})

	t.Run("single position", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"AAPL": 5.0}),
			newSnapshot("2024-02", map[string]interface{}{"AAPL": 15.0}),
		}
		require.Equal(t, 10.0, PortfolioReturn(series, []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 100},
		}))
	})

	t.Run("weighted across positions", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"AAPL": 0.0, "MSFT": 6.0}),
			newSnapshot("2024-02", map[string]interface{}{"AAPL": 50.0, "MSFT": -20.0}),
			newSnapshot("2024-03", map[string]interface{}{"AAPL": 10.0, "MSFT": 2.0}),
		}
		out := PortfolioReturn(series, []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 50},
			{Symbol: "MSFT", Allocation: 50},
		})
		require.InDelta(t, 3.0, out, 1e-9)
	})

	t.Run("short positions use the raw return", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"TSLA": 0.0}),
			newSnapshot("2024-02", map[string]interface{}{"TSLA": -8.0}),
		}
		out := PortfolioReturn(series, []domain.PortfolioPosition{
			{Symbol: "TSLA", Allocation: 25, Direction: domain.PositionShort},
		})
		require.InDelta(t, -2.0, out, 1e-9)
	})

	t.Run("malformed and missing values are zero", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"AAPL": "N/A"}),
			newSnapshot("2024-02", map[string]interface{}{"AAPL": "12"}),
		}
		out := PortfolioReturn(series, []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 50},
			{Symbol: "GONE", Allocation: 50},
		})
		require.InDelta(t, 6.0, out, 1e-9)
	})

	t.Run("infinity spellings are zero", func(t *testing.T) {
		series := []domain.PerformanceSnapshot{
			newSnapshot("2024-01", map[string]interface{}{"AAPL": "inf", "MSFT": "NaN"}),
			newSnapshot("2024-02", map[string]interface{}{"AAPL": "Infinity", "MSFT": 4.0}),
		}
		positions := []domain.PortfolioPosition{
			{Symbol: "AAPL", Allocation: 50},
			{Symbol: "MSFT", Allocation: 50},
		}
		out := PortfolioReturn(series, positions)
		require.InDelta(t, 2.0, out, 1e-9)

		_, err := json.Marshal(CalculateWindowMetrics(series, positions))
		require.NoError(t, err)
	})

	t.Run("no positions", func(t *testing.T) {
		require.Equal(t, 0.0, PortfolioReturn(monthlySeries(3, "AAPL"), nil))
	})
}
