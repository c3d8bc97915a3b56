package domain

type TradingStyle string

const (
	TradingStyleValue         TradingStyle = "value"
	TradingStyleGrowth        TradingStyle = "growth"
	TradingStyleMomentum      TradingStyle = "momentum"
	TradingStyleContrarian    TradingStyle = "contrarian"
	TradingStyleLowVolatility TradingStyle = "lowVolatility"
)

// InvestmentPreferences is what the questionnaire collects. The validate
// tags mirror the form's min/max/step hints; they are advisory only and
// never block a request.
type InvestmentPreferences struct {
	InvestmentAmount  float64      `json:"investmentAmount" validate:"gte=1000"`
	TradingStyle      TradingStyle `json:"tradingStyle" validate:"oneof=value growth momentum contrarian lowVolatility"`
	MaxDrawdown       float64      `json:"maxDrawdown" validate:"gte=5,lte=50"`
	StopLoss          float64      `json:"stopLoss" validate:"gte=5,lte=30"`
	MaxSinglePosition float64      `json:"maxSinglePosition" validate:"gte=10,lte=100"`
	CustomLogic       string       `json:"customLogic"`
	AllowShortSelling bool         `json:"allowShortSelling"`
}

func DefaultPreferences() InvestmentPreferences {
	return InvestmentPreferences{
		InvestmentAmount:  100000,
		TradingStyle:      TradingStyleValue,
		MaxDrawdown:       20,
		StopLoss:          20,
		MaxSinglePosition: 20,
		CustomLogic:       "",
		AllowShortSelling: false,
	}
}
