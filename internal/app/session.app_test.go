package app

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/progress"
	mock_repository "aistrategy/internal/repository/mocks"
	"aistrategy/internal/service"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func yearOfHistory() []domain.PerformanceSnapshot {
	out := []domain.PerformanceSnapshot{}
	for i := 0; i < 12; i++ {
		out = append(out, domain.PerformanceSnapshot{
			Month: fmt.Sprintf("2024-%02d", i+1),
			Returns: map[string]interface{}{
				"AAPL": float64(i),
				"MSFT": float64(2 * i),
			},
		})
	}
	return out
}

func sampleStrategy() *domain.AIStrategyResponse {
	return &domain.AIStrategyResponse{
		MarketAnalysis: "rates are falling",
		Recommendations: []domain.StockRecommendation{
			{Symbol: "AAPL", CurrentPrice: 200, RecommendedAmount: 60000, Allocation: 60},
			{Symbol: "MSFT", CurrentPrice: 400, RecommendedAmount: 40000, Allocation: 40},
		},
		HistoricalPerformance: yearOfHistory(),
		Reasons:               []string{"cheap"},
		Risks:                 []string{"concentration"},
	}
}

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

func newTestSession(t *testing.T) (*Session, *mock_repository.MockStrategyApiRepository, fakeClock) {
	ctrl := gomock.NewController(t)
	apiRepository := mock_repository.NewMockStrategyApiRepository(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	session := NewSession(
		service.NewStrategyService(apiRepository),
		service.NewHistoryService(apiRepository),
		service.NewMarketService(apiRepository, nil),
		clock,
	)
	return session, apiRepository, clock
}

func TestSession_GenerateStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		session, apiRepository, clock := newTestSession(t)
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), domain.DefaultPreferences(), "").
			Return(sampleStrategy(), nil)

		err := session.GenerateStrategy(ctx)
		require.NoError(t, err)

		view := session.View()
		require.False(t, view.Loading)
		require.Equal(t, "", view.Error)
		require.NotNil(t, view.Strategy)
		require.Equal(t, 12, view.Strategy.WindowMonths)
		require.Equal(t, domain.DisplayModeCumulative, view.Strategy.Mode)
		require.Equal(t, int64(300), *view.Strategy.Recommendations[0].Shares)
		require.InDelta(t, 15.4, view.Strategy.PortfolioReturn, 1e-9)
		require.InDelta(t, 100.0, view.Strategy.TotalAllocation, 1e-9)

		require.Equal(t, progress.PhaseCompleting, view.Progress.Phase)
		require.Equal(t, 100.0, view.Progress.Percent)
		clock.Advance(progress.CompletionDisplayDelay)
		require.Equal(t, progress.PhaseIdle, session.Progress().Phase)
		require.Equal(t, 0.0, session.Progress().Percent)
	})

	t.Run("failure surfaces message", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("502 bad gateway"))

		err := session.GenerateStrategy(ctx)
		require.ErrorIs(t, err, service.ErrStrategyGeneration)

		view := session.View()
		require.False(t, view.Loading)
		require.Nil(t, view.Strategy)
		require.Equal(t, service.ErrStrategyGeneration.Error(), view.Error)
	})

	t.Run("passes preferences and key", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		prefs := domain.DefaultPreferences()
		prefs.TradingStyle = domain.TradingStyleMomentum
		prefs.AllowShortSelling = true

		warnings := session.SetPreferences(prefs, "sk-abc")
		require.Empty(t, warnings)

		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), prefs, "sk-abc").
			Return(sampleStrategy(), nil)
		require.NoError(t, session.GenerateStrategy(ctx))
	})

	t.Run("rejects concurrent submit", func(t *testing.T) {
		session, apiRepository, clock := newTestSession(t)

		entered := make(chan struct{})
		release := make(chan struct{})
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ domain.InvestmentPreferences, _ string) (*domain.AIStrategyResponse, error) {
				close(entered)
				<-release
				return sampleStrategy(), nil
			})

		done := make(chan error)
		go func() {
			done <- session.GenerateStrategy(ctx)
		}()
		<-entered

		require.ErrorIs(t, session.GenerateStrategy(ctx), ErrGenerationInFlight)

		clock.Advance(5 * time.Second)
		view := session.View()
		require.True(t, view.Loading)
		require.Equal(t, progress.PhaseRunning, view.Progress.Phase)
		require.InDelta(t, 46.0, view.Progress.Percent, 1e-9)

		close(release)
		require.NoError(t, <-done)
		require.False(t, session.View().Loading)
	})
}

func TestSession_SelectWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a strategy", func(t *testing.T) {
		session, _, _ := newTestSession(t)
		_, err := session.SelectWindow(ctx, 6)
		require.ErrorIs(t, err, ErrNoStrategy)
	})

	t.Run("fetches and applies", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil)
		require.NoError(t, session.GenerateStrategy(ctx))

		fetched := yearOfHistory()[6:]
		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), []string{"AAPL", "MSFT"}, []float64{60, 40}, 126).
			Return(fetched, nil)

		applied, err := session.SelectWindow(ctx, 6)
		require.NoError(t, err)
		require.True(t, applied)

		view := session.View()
		require.Equal(t, 6, view.Strategy.WindowMonths)
		require.False(t, view.Strategy.FromFallback)
		require.Equal(t, "", cmp.Diff(fetched, view.Strategy.Series))
		// (11-6)*0.6 + (22-12)*0.4
		require.InDelta(t, 7.0, view.Strategy.PortfolioReturn, 1e-9)
	})

	t.Run("clamps and falls back", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil)
		require.NoError(t, session.GenerateStrategy(ctx))

		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), gomock.Any(), gomock.Any(), 63).
			Return(nil, fmt.Errorf("timeout"))

		applied, err := session.SelectWindow(ctx, 1)
		require.NoError(t, err)
		require.True(t, applied)

		view := session.View()
		require.Equal(t, 3, view.Strategy.WindowMonths)
		require.True(t, view.Strategy.FromFallback)
		require.Equal(t, []string{"2024-10", "2024-11", "2024-12"}, months(view.Strategy.Series))
		require.InDelta(t, 2.8, view.Strategy.PortfolioReturn, 1e-9)
	})

	t.Run("default window does not fetch", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil)
		require.NoError(t, session.GenerateStrategy(ctx))

		applied, err := session.SelectWindow(ctx, 12)
		require.NoError(t, err)
		require.True(t, applied)
		require.Len(t, session.View().Strategy.Series, 12)
	})

	t.Run("superseded response is discarded", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil)
		require.NoError(t, session.GenerateStrategy(ctx))

		stale := yearOfHistory()[9:]
		fresh := yearOfHistory()[6:]

		entered := make(chan struct{})
		release := make(chan struct{})
		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), gomock.Any(), gomock.Any(), 63).
			DoAndReturn(func(context.Context, []string, []float64, int) ([]domain.PerformanceSnapshot, error) {
				close(entered)
				<-release
				return stale, nil
			})
		apiRepository.EXPECT().
			GetStockHistory(gomock.Any(), gomock.Any(), gomock.Any(), 126).
			Return(fresh, nil)

		type result struct {
			applied bool
			err     error
		}
		slow := make(chan result)
		go func() {
			applied, err := session.SelectWindow(ctx, 3)
			slow <- result{applied, err}
		}()
		<-entered

		applied, err := session.SelectWindow(ctx, 6)
		require.NoError(t, err)
		require.True(t, applied)

		close(release)
		r := <-slow
		require.NoError(t, r.err)
		require.False(t, r.applied)

		view := session.View()
		require.Equal(t, 6, view.Strategy.WindowMonths)
		require.False(t, view.Strategy.WindowLoading)
		require.Equal(t, "", cmp.Diff(fresh, view.Strategy.Series))
	})
}

func TestSession_SetDisplayMode(t *testing.T) {
	ctx := context.Background()
	session, apiRepository, _ := newTestSession(t)
	apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil)
	require.NoError(t, session.GenerateStrategy(ctx))

	session.SetDisplayMode(domain.DisplayModeMonthlyDelta)

	view := session.View()
	require.Equal(t, domain.DisplayModeMonthlyDelta, view.Strategy.Mode)
	require.Equal(t, 0.0, view.Strategy.Series[0].Returns["AAPL"])
	require.Equal(t, 1.0, view.Strategy.Series[5].Returns["AAPL"])
	require.Equal(t, 2.0, view.Strategy.Series[5].Returns["MSFT"])
	// portfolio return always comes from cumulative values
	require.InDelta(t, 15.4, view.Strategy.PortfolioReturn, 1e-9)
}

func TestSession_BackToQuestionnaire(t *testing.T) {
	ctx := context.Background()

	t.Run("resets results view", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)
		apiRepository.EXPECT().GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleStrategy(), nil).Times(2)
		apiRepository.EXPECT().GetStockHistory(gomock.Any(), gomock.Any(), gomock.Any(), 84).Return(yearOfHistory()[8:], nil)

		require.NoError(t, session.GenerateStrategy(ctx))
		_, err := session.SelectWindow(ctx, 4)
		require.NoError(t, err)
		session.SetDisplayMode(domain.DisplayModeMonthlyDelta)

		session.BackToQuestionnaire()
		view := session.View()
		require.Nil(t, view.Strategy)
		require.Equal(t, progress.PhaseIdle, view.Progress.Phase)

		require.NoError(t, session.GenerateStrategy(ctx))
		view = session.View()
		require.Equal(t, 12, view.Strategy.WindowMonths)
		require.Equal(t, domain.DisplayModeCumulative, view.Strategy.Mode)
	})

	t.Run("orphans in-flight generation", func(t *testing.T) {
		session, apiRepository, _ := newTestSession(t)

		entered := make(chan struct{})
		release := make(chan struct{})
		apiRepository.EXPECT().
			GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domain.InvestmentPreferences, string) (*domain.AIStrategyResponse, error) {
				close(entered)
				<-release
				return sampleStrategy(), nil
			})

		done := make(chan error)
		go func() {
			done <- session.GenerateStrategy(ctx)
		}()
		<-entered

		session.BackToQuestionnaire()
		require.False(t, session.View().Loading)

		close(release)
		require.NoError(t, <-done)
		require.Nil(t, session.View().Strategy)
	})
}

func TestSession_LoadMarketIndices(t *testing.T) {
	session, apiRepository, _ := newTestSession(t)
	apiRepository.EXPECT().GetMarketIndices(gomock.Any()).Return(nil, fmt.Errorf("offline"))

	indices := session.LoadMarketIndices(context.Background())
	require.Equal(t, "", cmp.Diff(domain.FallbackMarketIndices(), indices))
	require.Equal(t, "", cmp.Diff(indices, session.View().MarketIndices))
}

func months(series []domain.PerformanceSnapshot) []string {
	out := []string{}
	for _, s := range series {
		out = append(out, s.Month)
	}
	return out
}

func TestSession_StartGeneration(t *testing.T) {
	session, apiRepository, _ := newTestSession(t)

	release := make(chan struct{})
	apiRepository.EXPECT().
		GenerateStrategy(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.InvestmentPreferences, string) (*domain.AIStrategyResponse, error) {
			<-release
			return sampleStrategy(), nil
		})

	done, err := session.StartGeneration(context.Background())
	require.NoError(t, err)
	require.True(t, session.View().Loading)

	close(release)
	require.NoError(t, <-done)
	require.NotNil(t, session.View().Strategy)
}
