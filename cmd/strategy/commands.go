package main

import (
	"aistrategy/cmd"
	"aistrategy/internal/app"
	"aistrategy/internal/calculator"
	"aistrategy/internal/domain"
	"aistrategy/internal/progress"
	"aistrategy/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

type outputFlags struct {
	months    int
	mode      string
	chartPath string
	csvPath   string
}

func (o *outputFlags) register(c *cobra.Command) {
	c.Flags().IntVar(&o.months, "months", domain.DefaultWindowMonths, "performance window in months (3-12)")
	c.Flags().StringVar(&o.mode, "mode", string(domain.DisplayModeCumulative), "cumulative or monthly")
	c.Flags().StringVar(&o.chartPath, "chart", "", "write the performance chart to this PNG file")
	c.Flags().StringVar(&o.csvPath, "csv", "", "write the displayed series to this CSV file")
}

func generateCmd() *cobra.Command {
	prefs := domain.DefaultPreferences()
	var (
		tradingStyle string
		apiKey       string
		asJson       bool
		out          outputFlags
	)

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strategy from investment preferences",
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt)
			defer cancel()

			mode, err := domain.ParseDisplayMode(out.mode)
			if err != nil {
				return err
			}
			prefs.TradingStyle = domain.TradingStyle(tradingStyle)

			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			if apiKey == "" {
				apiKey = deps.Config.ApiKey
			}

			session := app.NewSession(deps.StrategyService, deps.HistoryService, deps.MarketService, clockwork.NewRealClock())
			w := c.OutOrStdout()

			renderMarketIndices(w, session.LoadMarketIndices(ctx))
			renderWarnings(w, session.SetPreferences(prefs, apiKey))

			done, err := session.StartGeneration(ctx)
			if err != nil {
				return err
			}
			watchProgress(ctx, c, session.Simulator())
			if err := <-done; err != nil {
				fmt.Fprintln(c.ErrOrStderr(), styles.Error.Render(err.Error()))
				return err
			}

			if out.months != domain.DefaultWindowMonths {
				if _, err := session.SelectWindow(ctx, out.months); err != nil {
					return err
				}
			}
			session.SetDisplayMode(mode)

			view := session.View()
			if asJson {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(view); err != nil {
					return err
				}
			} else {
				renderStrategy(w, view.Strategy)
			}

			return writeOutputs(deps, out, view.Strategy.Series, view.Strategy.Recommendations, view.Strategy.Mode)
		},
	}

	c.Flags().Float64Var(&prefs.InvestmentAmount, "amount", prefs.InvestmentAmount, "amount to invest")
	c.Flags().StringVar(&tradingStyle, "style", string(prefs.TradingStyle), "value, growth, momentum, contrarian or lowVolatility")
	c.Flags().Float64Var(&prefs.MaxDrawdown, "max-drawdown", prefs.MaxDrawdown, "maximum drawdown percent")
	c.Flags().Float64Var(&prefs.StopLoss, "stop-loss", prefs.StopLoss, "stop loss percent")
	c.Flags().Float64Var(&prefs.MaxSinglePosition, "max-position", prefs.MaxSinglePosition, "largest single position percent")
	c.Flags().StringVar(&prefs.CustomLogic, "custom-logic", "", "free-form instructions for the strategy")
	c.Flags().BoolVar(&prefs.AllowShortSelling, "allow-short", false, "allow short positions")
	c.Flags().StringVar(&apiKey, "api-key", "", "API key forwarded to the backend (defaults to config)")
	c.Flags().BoolVar(&asJson, "json", false, "print the result as JSON")
	out.register(c)

	return c
}

// watchProgress renders the simulator until it is idle again, which
// includes the short 100% display after the request returns.
func watchProgress(ctx context.Context, c *cobra.Command, simulator *progress.Simulator) {
	w := c.ErrOrStderr()
	snapshots := make(chan progress.Snapshot)
	finished := make(chan struct{})
	go func() {
		simulator.Watch(ctx, snapshots)
		close(finished)
	}()

	for {
		select {
		case snap := <-snapshots:
			if snap.Phase == progress.PhaseIdle {
				continue
			}
			renderProgress(w, snap)
		case <-finished:
			fmt.Fprint(w, "\r\033[K")
			return
		}
	}
}

func historyCmd() *cobra.Command {
	var (
		positions []string
		out       outputFlags
	)

	c := &cobra.Command{
		Use:   "history [series.csv]",
		Short: "Window, project and chart a saved performance series",
		Long: `history reads a long-format CSV (month,symbol,value) of cumulative
returns, as written by generate --csv in cumulative mode, and shows it
for the chosen window and display mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			mode, err := domain.ParseDisplayMode(out.mode)
			if err != nil {
				return err
			}
			recs, err := parsePositions(positions)
			if err != nil {
				return err
			}

			exportService := service.NewExportService()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			series, err := exportService.ReadSeriesCSV(f)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				recs = equalWeights(series)
			}

			window := domain.NewWindowSelection(out.months)
			normalized := calculator.NormalizeWindow(series, window.MonthsRequested)
			domainPositions := domain.PositionsFromRecommendations(recs)
			display := calculator.Project(normalized, mode)

			renderSeries(
				c.OutOrStdout(),
				window.MonthsRequested,
				mode,
				display,
				calculator.PortfolioReturn(normalized, domainPositions),
				calculator.CalculateWindowMetrics(normalized, domainPositions),
				false,
			)

			deps := &cmd.Dependencies{
				ChartService:  service.NewChartService(),
				ExportService: exportService,
			}
			return writeOutputs(deps, out, display, recs, mode)
		},
	}

	c.Flags().StringArrayVar(&positions, "position", nil, "SYMBOL=ALLOCATION, repeatable (defaults to equal weights)")
	out.register(c)

	return c
}

func parsePositions(in []string) ([]domain.StockRecommendation, error) {
	out := []domain.StockRecommendation{}
	for _, p := range in {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid position %q, expected SYMBOL=ALLOCATION", p)
		}
		allocation, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation in %q: %w", p, err)
		}
		out = append(out, domain.StockRecommendation{
			Symbol:     strings.ToUpper(strings.TrimSpace(parts[0])),
			Allocation: allocation,
		})
	}
	return out, nil
}

func equalWeights(series []domain.PerformanceSnapshot) []domain.StockRecommendation {
	seen := map[string]bool{}
	symbols := []string{}
	for _, s := range calculator.SortByMonth(series) {
		for symbol := range s.Returns {
			if !seen[symbol] {
				seen[symbol] = true
				symbols = append(symbols, symbol)
			}
		}
	}
	sort.Strings(symbols)

	out := []domain.StockRecommendation{}
	for _, symbol := range symbols {
		out = append(out, domain.StockRecommendation{
			Symbol:     symbol,
			Allocation: 100 / float64(len(symbols)),
		})
	}
	return out
}

func writeOutputs(
	deps *cmd.Dependencies,
	out outputFlags,
	series []domain.PerformanceSnapshot,
	recs []domain.StockRecommendation,
	mode domain.DisplayMode,
) error {
	if out.chartPath != "" {
		png, err := deps.ChartService.RenderPerformanceChart(series, recs, mode)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.chartPath, png, 0o644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}

	if out.csvPath != "" {
		buf := &bytes.Buffer{}
		if err := deps.ExportService.WriteSeriesCSV(buf, series); err != nil {
			return err
		}
		if err := os.WriteFile(out.csvPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}

	return nil
}

func marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show the market overview",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			renderMarketIndices(c.OutOrStdout(), deps.MarketService.GetMarketIndices(c.Context()))
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			if port == 0 {
				port = deps.Config.Port
			}
			return deps.ApiHandler().StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "port to listen on (defaults to config)")

	return c
}
