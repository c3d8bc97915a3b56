package service

import (
	"aistrategy/internal/calculator"
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"aistrategy/internal/repository"
	"context"
)

type HistoryResult struct {
	Series       []domain.PerformanceSnapshot
	FromFallback bool
}

type HistoryService interface {
	// LoadWindow returns the series to chart for a window. The default
	// 12-month window reuses the series that came with the strategy; any
	// other window is fetched fresh. A failed fetch falls back to trimming
	// the initial series instead of returning an error.
	LoadWindow(
		ctx context.Context,
		recommendations []domain.StockRecommendation,
		initial []domain.PerformanceSnapshot,
		window domain.WindowSelection,
	) HistoryResult
}

type historyServiceHandler struct {
	StrategyApiRepository repository.StrategyApiRepository
}

func NewHistoryService(strategyApiRepository repository.StrategyApiRepository) HistoryService {
	return historyServiceHandler{
		StrategyApiRepository: strategyApiRepository,
	}
}

func (h historyServiceHandler) LoadWindow(
	ctx context.Context,
	recommendations []domain.StockRecommendation,
	initial []domain.PerformanceSnapshot,
	window domain.WindowSelection,
) HistoryResult {
	log := logger.FromContext(ctx)

	if window.IsDefault() {
		return HistoryResult{Series: initial}
	}

	series, err := h.StrategyApiRepository.GetStockHistory(
		ctx,
		domain.Symbols(recommendations),
		domain.Allocations(recommendations),
		window.TradingDays(),
	)
	if err != nil {
		log.Warnw("failed to get stock history, trimming initial series", "months", window.MonthsRequested, "error", err)
		return HistoryResult{
			Series:       calculator.NormalizeWindow(initial, window.MonthsRequested),
			FromFallback: true,
		}
	}

	log.Infow("loaded stock history", "months", window.MonthsRequested, "snapshots", len(series))
	return HistoryResult{Series: series}
}
