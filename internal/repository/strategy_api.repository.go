package repository

import (
	"aistrategy/internal/domain"
	"aistrategy/pkg/strategyapi"
	"context"
)

type StrategyApiRepository interface {
	GetMarketIndices(ctx context.Context) ([]domain.MarketIndex, error)
	GenerateStrategy(ctx context.Context, preferences domain.InvestmentPreferences, apiKey string) (*domain.AIStrategyResponse, error)
	GetStockHistory(ctx context.Context, symbols []string, allocations []float64, period int) ([]domain.PerformanceSnapshot, error)
}

type strategyApiRepositoryHandler struct {
	Client strategyapi.Client
}

func NewStrategyApiRepository(client strategyapi.Client) StrategyApiRepository {
	return strategyApiRepositoryHandler{
		Client: client,
	}
}

func (h strategyApiRepositoryHandler) GetMarketIndices(ctx context.Context) ([]domain.MarketIndex, error) {
	return h.Client.GetMarketIndices(ctx)
}

func (h strategyApiRepositoryHandler) GenerateStrategy(ctx context.Context, preferences domain.InvestmentPreferences, apiKey string) (*domain.AIStrategyResponse, error) {
	return h.Client.GenerateStrategy(ctx, strategyapi.GenerateStrategyRequest{
		Preferences: preferences,
		ApiKey:      apiKey,
	})
}

func (h strategyApiRepositoryHandler) GetStockHistory(ctx context.Context, symbols []string, allocations []float64, period int) ([]domain.PerformanceSnapshot, error) {
	return h.Client.GetStockHistory(ctx, strategyapi.StockHistoryRequest{
		Symbols:     symbols,
		Allocations: allocations,
		Period:      period,
	})
}
