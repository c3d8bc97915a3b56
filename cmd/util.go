package cmd

import (
	"aistrategy/api"
	"aistrategy/internal/repository"
	"aistrategy/internal/service"
	"aistrategy/internal/util"
	"aistrategy/pkg/strategyapi"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

type Dependencies struct {
	Config          *util.Config
	StrategyService service.StrategyService
	HistoryService  service.HistoryService
	MarketService   service.MarketService
	ChartService    service.ChartService
	ExportService   service.ExportService
}

func InitializeDependencies() (*Dependencies, error) {
	config, err := util.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := strategyapi.NewClient(config.ApiBaseUrl, time.Duration(config.TimeoutSeconds)*time.Second)
	strategyApiRepository := repository.NewStrategyApiRepository(client)

	var indexQuoteRepository repository.IndexQuoteRepository
	if strings.EqualFold(config.MarketDataSource, util.MarketSourceYahoo) {
		indexQuoteRepository = repository.NewIndexQuoteRepository()
	}

	return &Dependencies{
		Config:          config,
		StrategyService: service.NewStrategyService(strategyApiRepository),
		HistoryService:  service.NewHistoryService(strategyApiRepository),
		MarketService:   service.NewMarketService(strategyApiRepository, indexQuoteRepository),
		ChartService:    service.NewChartService(),
		ExportService:   service.NewExportService(),
	}, nil
}

func (d Dependencies) ApiHandler() *api.ApiHandler {
	return &api.ApiHandler{
		StrategyService: d.StrategyService,
		HistoryService:  d.HistoryService,
		MarketService:   d.MarketService,
		ChartService:    d.ChartService,
		ExportService:   d.ExportService,
		Clock:           clockwork.NewRealClock(),
		Sessions:        api.NewSessionStore(),
	}
}
