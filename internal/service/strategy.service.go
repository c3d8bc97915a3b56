package service

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"aistrategy/internal/repository"
	"context"
	"errors"
)

// ErrStrategyGeneration is all the user ever sees when generation fails;
// the underlying cause is logged.
var ErrStrategyGeneration = errors.New("AI strategy generation failed, please try again later")

type StrategyService interface {
	// GenerateStrategy asks the backend for a strategy and fills in the
	// fields the backend is allowed to omit. There are no retries.
	GenerateStrategy(ctx context.Context, preferences domain.InvestmentPreferences, apiKey string) (*domain.AIStrategyResponse, error)

	// PreferenceWarnings is advisory only.
	PreferenceWarnings(preferences domain.InvestmentPreferences) []string
}

type strategyServiceHandler struct {
	StrategyApiRepository repository.StrategyApiRepository
	Validator             PreferencesValidator
}

func NewStrategyService(strategyApiRepository repository.StrategyApiRepository) StrategyService {
	return strategyServiceHandler{
		StrategyApiRepository: strategyApiRepository,
		Validator:             NewPreferencesValidator(),
	}
}

func (h strategyServiceHandler) PreferenceWarnings(preferences domain.InvestmentPreferences) []string {
	return h.Validator.Warnings(preferences)
}

func (h strategyServiceHandler) GenerateStrategy(ctx context.Context, preferences domain.InvestmentPreferences, apiKey string) (*domain.AIStrategyResponse, error) {
	log := logger.FromContext(ctx)

	if warnings := h.PreferenceWarnings(preferences); len(warnings) > 0 {
		log.Infow("preferences outside questionnaire limits", "warnings", warnings)
	}

	result, err := h.StrategyApiRepository.GenerateStrategy(ctx, preferences, apiKey)
	if err != nil {
		log.Errorw("failed to generate strategy", "error", err)
		return nil, ErrStrategyGeneration
	}
	if result == nil {
		log.Error("strategy backend returned no data")
		return nil, ErrStrategyGeneration
	}

	return normalizeStrategy(*result), nil
}

func normalizeStrategy(in domain.AIStrategyResponse) *domain.AIStrategyResponse {
	out := in

	out.Recommendations = make([]domain.StockRecommendation, 0, len(in.Recommendations))
	for _, r := range in.Recommendations {
		r.Position = r.Direction()
		if r.Shares == nil {
			shares := r.ShareCount()
			r.Shares = &shares
		}
		out.Recommendations = append(out.Recommendations, r)
	}

	if out.HistoricalPerformance == nil {
		out.HistoricalPerformance = []domain.PerformanceSnapshot{}
	}
	if out.Reasons == nil {
		out.Reasons = []string{}
	}
	if out.Risks == nil {
		out.Risks = []string{}
	}

	return &out
}
