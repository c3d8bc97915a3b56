package domain

type MarketIndex struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// FallbackMarketIndices is shown whenever live index data can't be loaded
func FallbackMarketIndices() []MarketIndex {
	return []MarketIndex{
		{
			Name:          "NASDAQ Composite",
			Symbol:        "NASDAQ",
			Price:         15000,
			Change:        150,
			ChangePercent: 1.0,
		},
		{
			Name:          "S&P 500",
			Symbol:        "S&P 500",
			Price:         4500,
			Change:        -20,
			ChangePercent: -0.44,
		},
		{
			Name:          "Dow Jones Industrial Average",
			Symbol:        "DOW",
			Price:         35000,
			Change:        100,
			ChangePercent: 0.29,
		},
	}
}
