package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PositionDirection string

const (
	PositionLong  PositionDirection = "LONG"
	PositionShort PositionDirection = "SHORT"
)

// ParsePositionDirection defaults anything that isn't SHORT to LONG, which is
// how the backend treats a missing position field.
func ParsePositionDirection(s string) PositionDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(PositionShort)) {
		return PositionShort
	}
	return PositionLong
}

type RiskMetrics struct {
	Beta        *string `json:"beta,omitempty"`
	Volatility  *string `json:"volatility,omitempty"`
	MaxDrawdown *string `json:"maxDrawdown,omitempty"`
}

type StockRecommendation struct {
	Symbol             string            `json:"symbol"`
	CompanyName        string            `json:"companyName"`
	CurrentPrice       float64           `json:"currentPrice"`
	DailyChange        float64           `json:"dailyChange"`
	DailyChangePercent float64           `json:"dailyChangePercent"`
	RecommendedAmount  float64           `json:"recommendedAmount"`
	Allocation         float64           `json:"allocation"`
	Position           PositionDirection `json:"position,omitempty"`
	Shares             *int64            `json:"shares,omitempty"`
	AiReason           *string           `json:"aiReason,omitempty"`
	RiskMetrics        *RiskMetrics      `json:"riskMetrics,omitempty"`
}

func (r StockRecommendation) Direction() PositionDirection {
	return ParsePositionDirection(string(r.Position))
}

// ShareCount returns the precomputed share count when the backend sent one,
// otherwise floor(recommendedAmount / currentPrice). A non-positive price
// yields 0.
func (r StockRecommendation) ShareCount() int64 {
	if r.Shares != nil {
		return *r.Shares
	}
	if r.CurrentPrice <= 0 {
		return 0
	}
	amount := decimal.NewFromFloat(r.RecommendedAmount)
	price := decimal.NewFromFloat(r.CurrentPrice)
	return amount.Div(price).Floor().IntPart()
}

// PortfolioPosition is the slice of a recommendation the return math needs.
type PortfolioPosition struct {
	Symbol     string
	Allocation float64
	Direction  PositionDirection
}

func PositionsFromRecommendations(recs []StockRecommendation) []PortfolioPosition {
	out := make([]PortfolioPosition, 0, len(recs))
	for _, r := range recs {
		out = append(out, PortfolioPosition{
			Symbol:     r.Symbol,
			Allocation: r.Allocation,
			Direction:  r.Direction(),
		})
	}
	return out
}

func Symbols(recs []StockRecommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Symbol)
	}
	return out
}

func Allocations(recs []StockRecommendation) []float64 {
	out := make([]float64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Allocation)
	}
	return out
}

// TotalAllocation sums allocations; anything short of 100 is uninvested cash.
func TotalAllocation(positions []PortfolioPosition) float64 {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(decimal.NewFromFloat(p.Allocation))
	}
	return total.InexactFloat64()
}

type AIStrategyResponse struct {
	MarketAnalysis        string                `json:"marketAnalysis"`
	Recommendations       []StockRecommendation `json:"recommendations"`
	HistoricalPerformance []PerformanceSnapshot `json:"historicalPerformance"`
	Reasons               []string              `json:"reasons"`
	Risks                 []string              `json:"risks"`
	PortfolioReturn       float64               `json:"portfolioReturn"`
	AiPowered             *bool                 `json:"aiPowered,omitempty"`
	StrategyInsights      *string               `json:"strategyInsights,omitempty"`
}
