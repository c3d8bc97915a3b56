package main

import (
	"aistrategy/internal/app"
	"aistrategy/internal/calculator"
	"aistrategy/internal/domain"
	"aistrategy/internal/progress"
	"aistrategy/internal/util"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#3B82F6")
	colorGain    = lipgloss.Color("#10B981")
	colorLoss    = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
)

var styles = struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Gain    lipgloss.Style
	Loss    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	Header:  lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Gain:    lipgloss.NewStyle().Foreground(colorGain),
	Loss:    lipgloss.NewStyle().Foreground(colorLoss),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(colorLoss),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1),
}

func signed(v float64, suffix string) string {
	s := fmt.Sprintf("%+.2f%s", v, suffix)
	if v < 0 {
		return styles.Loss.Render(s)
	}
	return styles.Gain.Render(s)
}

const progressBarWidth = 30

func renderProgress(w io.Writer, snap progress.Snapshot) {
	filled := int(math.Round(snap.Percent / 100 * progressBarWidth))
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := styles.Title.Render(strings.Repeat("█", filled)) + styles.Muted.Render(strings.Repeat("░", progressBarWidth-filled))

	label := snap.LoadingLabel
	if snap.Phase == progress.PhaseCompleting {
		label = "Done"
	}
	fmt.Fprintf(w, "\r\033[K%s %5.1f%%  %s  %s", bar, snap.Percent, snap.Label, styles.Muted.Render(label))
}

func renderMarketIndices(w io.Writer, indices []domain.MarketIndex) {
	fmt.Fprintln(w, styles.Title.Render("Market Overview"))
	for _, idx := range indices {
		fmt.Fprintf(
			w,
			"  %-30s %12.2f  %s  %s\n",
			idx.Name,
			idx.Price,
			signed(idx.Change, ""),
			signed(idx.ChangePercent, "%"),
		)
	}
	fmt.Fprintln(w)
}

func renderWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintln(w, styles.Warning.Render("⚠ "+warning))
	}
	if len(warnings) > 0 {
		fmt.Fprintln(w)
	}
}

func renderStrategy(w io.Writer, view *app.StrategyView) {
	if view.MarketAnalysis != "" {
		fmt.Fprintln(w, styles.Box.Render(styles.Header.Render("Market Analysis")+"\n"+view.MarketAnalysis))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, styles.Title.Render("Recommendations"))
	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("  %-8s %-26s %-6s %10s %10s %12s %8s", "Symbol", "Company", "Side", "Price", "Shares", "Amount", "Alloc")))
	for _, r := range view.Recommendations {
		fmt.Fprintf(
			w,
			"  %-8s %-26s %-6s %10.2f %10d %12.2f %7.1f%%\n",
			r.Symbol,
			truncate(r.CompanyName, 26),
			r.Direction(),
			r.CurrentPrice,
			r.ShareCount(),
			r.RecommendedAmount,
			r.Allocation,
		)
		if r.AiReason != nil && *r.AiReason != "" {
			fmt.Fprintln(w, styles.Muted.Render("           "+*r.AiReason))
		}
	}
	if view.TotalAllocation < 100 {
		fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("  %.1f%% held as cash", 100-view.TotalAllocation)))
	}
	fmt.Fprintln(w)

	renderList(w, "Why this strategy", view.Reasons)
	renderList(w, "Risks", view.Risks)
	if view.StrategyInsights != nil && *view.StrategyInsights != "" {
		fmt.Fprintln(w, styles.Box.Render(styles.Header.Render("Strategy Insights")+"\n"+*view.StrategyInsights))
		fmt.Fprintln(w)
	}

	renderSeries(w, view.WindowMonths, view.Mode, view.Series, view.PortfolioReturn, view.Metrics, view.FromFallback)
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, styles.Title.Render(title))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
	fmt.Fprintln(w)
}

func renderSeries(
	w io.Writer,
	months int,
	mode domain.DisplayMode,
	series []domain.PerformanceSnapshot,
	portfolioReturn float64,
	metrics calculator.WindowMetricsResult,
	fromFallback bool,
) {
	title := fmt.Sprintf("Performance, last %d months (%s)", months, mode)
	fmt.Fprintln(w, styles.Title.Render(title))
	if fromFallback {
		fmt.Fprintln(w, styles.Warning.Render("  history unavailable, showing the strategy's own series"))
	}
	if len(series) == 0 {
		fmt.Fprintln(w, styles.Muted.Render("  no performance data"))
		return
	}

	symbols := make([]string, 0, len(metrics.Symbols))
	for _, s := range metrics.Symbols {
		symbols = append(symbols, s.Symbol)
	}

	header := fmt.Sprintf("  %-8s", "Month")
	for _, s := range symbols {
		header += fmt.Sprintf(" %9s", s)
	}
	fmt.Fprintln(w, styles.Header.Render(header))
	for _, snap := range series {
		fmt.Fprintf(w, "  %-8s", snap.Month)
		for _, s := range symbols {
			fmt.Fprintf(w, " %8.2f%%", util.ToNumber(snap.Returns[s]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Portfolio return %s  monthly stdev %.2f\n", signed(portfolioReturn, "%"), metrics.PortfolioMonthlyStdev)
	for _, s := range metrics.Symbols {
		fmt.Fprintf(
			w,
			"  %-8s return %s  best %s  worst %s  stdev %.2f\n",
			s.Symbol,
			signed(s.PeriodReturn, "%"),
			signed(s.BestMonth, "%"),
			signed(s.WorstMonth, "%"),
			s.MonthlyStdev,
		)
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
