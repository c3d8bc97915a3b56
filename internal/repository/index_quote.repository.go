package repository

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// IndexQuoteRepository loads the headline indices straight from Yahoo
// Finance instead of the strategy backend.
type IndexQuoteRepository interface {
	GetMarketIndices(ctx context.Context) ([]domain.MarketIndex, error)
}

type indexDefinition struct {
	Name        string
	Symbol      string
	YahooSymbol string
}

var headlineIndices = []indexDefinition{
	{Name: "NASDAQ Composite", Symbol: "NASDAQ", YahooSymbol: "^IXIC"},
	{Name: "S&P 500", Symbol: "S&P 500", YahooSymbol: "^GSPC"},
	{Name: "Dow Jones Industrial Average", Symbol: "DOW", YahooSymbol: "^DJI"},
}

type indexQuoteRepositoryHandler struct {
	now func() time.Time
}

func NewIndexQuoteRepository() IndexQuoteRepository {
	return indexQuoteRepositoryHandler{
		now: time.Now,
	}
}

func (h indexQuoteRepositoryHandler) GetMarketIndices(ctx context.Context) ([]domain.MarketIndex, error) {
	log := logger.FromContext(ctx)

	end := h.now().UTC()
	// wide enough to cover long weekends
	start := end.AddDate(0, 0, -10)

	out := []domain.MarketIndex{}
	for _, def := range headlineIndices {
		params := &chart.Params{
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Symbol:   def.YahooSymbol,
			Interval: datetime.OneDay,
		}
		iter := chart.Get(params)

		closes := []float64{}
		for iter.Next() {
			closes = append(closes, iter.Bar().AdjClose.InexactFloat64())
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to get prices for %s: %w", def.YahooSymbol, err)
		}

		index, err := indexFromCloses(def, closes)
		if err != nil {
			return nil, err
		}
		log.Debugw("loaded index quote", "symbol", def.YahooSymbol, "price", index.Price)
		out = append(out, *index)
	}

	return out, nil
}

// indexFromCloses prices an index off its last two daily closes.
func indexFromCloses(def indexDefinition, closes []float64) (*domain.MarketIndex, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("need at least 2 closes for %s, got %d", def.YahooSymbol, len(closes))
	}
	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]
	if prev == 0 {
		return nil, fmt.Errorf("previous close for %s is 0", def.YahooSymbol)
	}

	return &domain.MarketIndex{
		Name:          def.Name,
		Symbol:        def.Symbol,
		Price:         last,
		Change:        last - prev,
		ChangePercent: (last - prev) / prev * 100,
	}, nil
}
