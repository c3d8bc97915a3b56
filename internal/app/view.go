package app

import (
	"aistrategy/internal/calculator"
	"aistrategy/internal/domain"
	"aistrategy/internal/progress"
)

type View struct {
	Preferences   domain.InvestmentPreferences `json:"preferences"`
	MarketIndices []domain.MarketIndex         `json:"marketIndices"`
	Loading       bool                         `json:"loading"`
	Error         string                       `json:"error,omitempty"`
	Progress      progress.Snapshot            `json:"progress"`

	Strategy *StrategyView `json:"strategy,omitempty"`
}

type StrategyView struct {
	MarketAnalysis   string                       `json:"marketAnalysis"`
	Recommendations  []domain.StockRecommendation `json:"recommendations"`
	Reasons          []string                     `json:"reasons"`
	Risks            []string                     `json:"risks"`
	AiPowered        *bool                        `json:"aiPowered,omitempty"`
	StrategyInsights *string                      `json:"strategyInsights,omitempty"`
	TotalAllocation  float64                      `json:"totalAllocation"`

	WindowMonths    int                            `json:"windowMonths"`
	Mode            domain.DisplayMode             `json:"mode"`
	WindowLoading   bool                           `json:"windowLoading"`
	FromFallback    bool                           `json:"fromFallback"`
	Series          []domain.PerformanceSnapshot   `json:"series"`
	PortfolioReturn float64                        `json:"portfolioReturn"`
	Metrics         calculator.WindowMetricsResult `json:"metrics"`
}

// View is the display-ready state. The series is normalized to the window
// and then projected to the display mode; the portfolio return and metrics
// are computed on the normalized cumulative values regardless of mode.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := View{
		Preferences:   s.preferences,
		MarketIndices: s.marketIndices,
		Loading:       s.loading,
		Error:         s.errMsg,
		Progress:      s.simulator.Snapshot(),
	}
	if s.strategy == nil {
		return out
	}

	positions := domain.PositionsFromRecommendations(s.strategy.Recommendations)
	normalized := calculator.NormalizeWindow(s.series, s.window.MonthsRequested)

	out.Strategy = &StrategyView{
		MarketAnalysis:   s.strategy.MarketAnalysis,
		Recommendations:  s.strategy.Recommendations,
		Reasons:          s.strategy.Reasons,
		Risks:            s.strategy.Risks,
		AiPowered:        s.strategy.AiPowered,
		StrategyInsights: s.strategy.StrategyInsights,
		TotalAllocation:  domain.TotalAllocation(positions),
		WindowMonths:     s.window.MonthsRequested,
		Mode:             s.mode,
		WindowLoading:    s.windowLoading,
		FromFallback:     s.fromFallback,
		Series:           calculator.Project(normalized, s.mode),
		PortfolioReturn:  calculator.PortfolioReturn(normalized, positions),
		Metrics:          calculator.CalculateWindowMetrics(normalized, positions),
	}
	return out
}
