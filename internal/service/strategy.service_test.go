package service

import (
	"aistrategy/internal/domain"
	mock_repository "aistrategy/internal/repository/mocks"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_strategyServiceHandler_GenerateStrategy(t *testing.T) {
	ctx := context.Background()
	prefs := domain.DefaultPreferences()

	t.Run("fills in position and shares", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)

		shares := int64(3)
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), prefs, "sk-test").
			Return(&domain.AIStrategyResponse{
				MarketAnalysis: "steady",
				Recommendations: []domain.StockRecommendation{
					{Symbol: "AAPL", CurrentPrice: 190, RecommendedAmount: 20000, Allocation: 20},
					{Symbol: "TSLA", CurrentPrice: 250, RecommendedAmount: 10000, Allocation: 10, Position: "SHORT", Shares: &shares},
				},
			}, nil)

		out, err := NewStrategyService(apiRepository).GenerateStrategy(ctx, prefs, "sk-test")
		require.NoError(t, err)
		require.Len(t, out.Recommendations, 2)

		require.Equal(t, domain.PositionLong, out.Recommendations[0].Position)
		require.NotNil(t, out.Recommendations[0].Shares)
		require.Equal(t, int64(105), *out.Recommendations[0].Shares)

		require.Equal(t, domain.PositionShort, out.Recommendations[1].Position)
		require.Equal(t, int64(3), *out.Recommendations[1].Shares)

		require.NotNil(t, out.HistoricalPerformance)
		require.NotNil(t, out.Reasons)
		require.NotNil(t, out.Risks)
	})

	t.Run("backend failure is a generic error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), prefs, "").
			Return(nil, fmt.Errorf("deepseek timeout"))

		out, err := NewStrategyService(apiRepository).GenerateStrategy(ctx, prefs, "")
		require.Nil(t, out)
		require.ErrorIs(t, err, ErrStrategyGeneration)
		require.NotContains(t, err.Error(), "deepseek")
	})

	t.Run("out of range preferences still go through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)

		odd := prefs
		odd.MaxDrawdown = 90
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), odd, "").
			Return(&domain.AIStrategyResponse{}, nil)

		_, err := NewStrategyService(apiRepository).GenerateStrategy(ctx, odd, "")
		require.NoError(t, err)
	})
}
