package service

import (
	"aistrategy/internal/calculator"
	"aistrategy/internal/domain"
	"aistrategy/internal/util"
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
)

type SeriesRow struct {
	Month  string  `csv:"month"`
	Symbol string  `csv:"symbol"`
	Value  float64 `csv:"value"`
}

// ExportService moves display series in and out of long-format CSV, one
// row per month and symbol.
type ExportService interface {
	WriteSeriesCSV(w io.Writer, series []domain.PerformanceSnapshot) error
	ReadSeriesCSV(r io.Reader) ([]domain.PerformanceSnapshot, error)
}

type exportServiceHandler struct{}

func NewExportService() ExportService {
	return exportServiceHandler{}
}

func (h exportServiceHandler) WriteSeriesCSV(w io.Writer, series []domain.PerformanceSnapshot) error {
	rows := []*SeriesRow{}
	for _, s := range calculator.SortByMonth(series) {
		symbols := make([]string, 0, len(s.Returns))
		for symbol := range s.Returns {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		for _, symbol := range symbols {
			rows = append(rows, &SeriesRow{
				Month:  s.Month,
				Symbol: symbol,
				Value:  util.ToNumber(s.Returns[symbol]),
			})
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write series csv: %w", err)
	}
	return nil
}

func (h exportServiceHandler) ReadSeriesCSV(r io.Reader) ([]domain.PerformanceSnapshot, error) {
	rows := []*SeriesRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read series csv: %w", err)
	}

	byMonth := map[string]*domain.PerformanceSnapshot{}
	order := []string{}
	for _, row := range rows {
		s, ok := byMonth[row.Month]
		if !ok {
			s = &domain.PerformanceSnapshot{
				Month:   row.Month,
				Returns: map[string]interface{}{},
			}
			byMonth[row.Month] = s
			order = append(order, row.Month)
		}
		s.Returns[row.Symbol] = row.Value
	}

	out := make([]domain.PerformanceSnapshot, 0, len(order))
	for _, month := range order {
		out = append(out, *byMonth[month])
	}
	return out, nil
}
