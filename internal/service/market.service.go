package service

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"aistrategy/internal/repository"
	"context"
)

// MarketService loads the market overview. It never fails: when the live
// source is down the caller gets the hardcoded fallback indices.
type MarketService interface {
	GetMarketIndices(ctx context.Context) []domain.MarketIndex
}

type marketServiceHandler struct {
	StrategyApiRepository repository.StrategyApiRepository
	IndexQuoteRepository  repository.IndexQuoteRepository
}

// NewMarketService reads from Yahoo when indexQuoteRepository is set and
// from the strategy backend otherwise.
func NewMarketService(
	strategyApiRepository repository.StrategyApiRepository,
	indexQuoteRepository repository.IndexQuoteRepository,
) MarketService {
	return marketServiceHandler{
		StrategyApiRepository: strategyApiRepository,
		IndexQuoteRepository:  indexQuoteRepository,
	}
}

func (h marketServiceHandler) GetMarketIndices(ctx context.Context) []domain.MarketIndex {
	log := logger.FromContext(ctx)

	var (
		indices []domain.MarketIndex
		err     error
	)
	if h.IndexQuoteRepository != nil {
		indices, err = h.IndexQuoteRepository.GetMarketIndices(ctx)
	} else {
		indices, err = h.StrategyApiRepository.GetMarketIndices(ctx)
	}

	if err != nil {
		log.Warnw("failed to get market indices, using fallback", "error", err)
		return domain.FallbackMarketIndices()
	}
	if len(indices) == 0 {
		log.Warn("market indices came back empty, using fallback")
		return domain.FallbackMarketIndices()
	}

	return indices
}
