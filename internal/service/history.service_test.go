package service

import (
	"aistrategy/internal/domain"
	mock_repository "aistrategy/internal/repository/mocks"
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func series(months ...string) []domain.PerformanceSnapshot {
	out := []domain.PerformanceSnapshot{}
	for i, m := range months {
		out = append(out, domain.PerformanceSnapshot{
			Month:   m,
			Returns: map[string]interface{}{"AAPL": float64(i)},
		})
	}
	return out
}

func Test_historyServiceHandler_LoadWindow(t *testing.T) {
	ctx := context.Background()
	recs := []domain.StockRecommendation{
		{Symbol: "AAPL", Allocation: 60},
		{Symbol: "MSFT", Allocation: 40},
	}
	initial := series("2024-01", "2024-02", "2024-03", "2024-04", "2024-05")

	t.Run("default window reuses initial series", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)

		out := NewHistoryService(apiRepository).LoadWindow(ctx, recs, initial, domain.NewWindowSelection(12))
		require.False(t, out.FromFallback)
		require.Equal(t, "", cmp.Diff(initial, out.Series))
	})

	t.Run("fetches other windows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)

		fetched := series("2024-03", "2024-04", "2024-05")
		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), []string{"AAPL", "MSFT"}, []float64{60, 40}, 63).
			Return(fetched, nil)

		out := NewHistoryService(apiRepository).LoadWindow(ctx, recs, initial, domain.NewWindowSelection(3))
		require.False(t, out.FromFallback)
		require.Equal(t, "", cmp.Diff(fetched, out.Series))
	})

	t.Run("failure trims initial series", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)
		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), gomock.Any(), gomock.Any(), 84).
			Return(nil, fmt.Errorf("boom"))

		out := NewHistoryService(apiRepository).LoadWindow(ctx, recs, initial, domain.NewWindowSelection(4))
		require.True(t, out.FromFallback)
		require.Equal(t, "", cmp.Diff(initial[1:], out.Series))
	})
}
