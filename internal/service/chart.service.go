package service

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var seriesColors = []string{
	"3B82F6", // blue
	"EF4444", // red
	"10B981", // green
	"F59E0B", // yellow
	"8B5CF6", // purple
	"06B6D4", // cyan
	"F97316", // orange
	"84CC16", // lime
}

type ChartService interface {
	// RenderPerformanceChart draws one line per recommendation over an
	// already normalized and projected series. Returns PNG bytes.
	RenderPerformanceChart(series []domain.PerformanceSnapshot, recommendations []domain.StockRecommendation, mode domain.DisplayMode) ([]byte, error)
}

type chartServiceHandler struct{}

func NewChartService() ChartService {
	return chartServiceHandler{}
}

func (h chartServiceHandler) RenderPerformanceChart(series []domain.PerformanceSnapshot, recommendations []domain.StockRecommendation, mode domain.DisplayMode) ([]byte, error) {
	xValues := []time.Time{}
	points := []domain.PerformanceSnapshot{}
	for _, s := range series {
		t, err := util.ParseMonth(s.Month)
		if err != nil {
			continue
		}
		xValues = append(xValues, t)
		points = append(points, s)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 months to chart, got %d", len(points))
	}
	if len(recommendations) == 0 {
		return nil, fmt.Errorf("no recommendations to chart")
	}

	lines := []chart.Series{}
	for i, r := range recommendations {
		yValues := make([]float64, 0, len(points))
		for _, p := range points {
			yValues = append(yValues, util.ToNumber(p.Returns[r.Symbol]))
		}
		lines = append(lines, chart.TimeSeries{
			Name: fmt.Sprintf("%s (%.1f%%)", r.Symbol, r.Allocation),
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(seriesColors[i%len(seriesColors)]),
				StrokeWidth: 2,
				DotColor:    drawing.ColorFromHex(seriesColors[i%len(seriesColors)]),
				DotWidth:    3,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}

	title := "Cumulative Return by Holding"
	if mode == domain.DisplayModeMonthlyDelta {
		title = "Monthly Return by Holding"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
