package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const monthKey = "month"

// PerformanceSnapshot is one month of cumulative returns, keyed by symbol.
// Every snapshot in a series shares the same inception point. Values are
// kept as they arrived over the wire (numbers, strings, nulls) and are
// coerced at the point of use.
type PerformanceSnapshot struct {
	Month   string
	Returns map[string]interface{}
}

// UnmarshalJSON reads the flat wire shape {"month": "2024-01", "AAPL": 5.2}.
func (p *PerformanceSnapshot) UnmarshalJSON(b []byte) error {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal performance snapshot: %w", err)
	}

	p.Month = ""
	if m, ok := raw[monthKey]; ok {
		if s, ok := m.(string); ok {
			p.Month = strings.TrimSpace(s)
		} else if m != nil {
			p.Month = fmt.Sprint(m)
		}
		delete(raw, monthKey)
	}
	p.Returns = raw
	return nil
}

func (p PerformanceSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Returns)+1)
	for k, v := range p.Returns {
		out[k] = v
	}
	out[monthKey] = p.Month
	return json.Marshal(out)
}

// Clone copies the returns map so callers can't reach back into the source.
func (p PerformanceSnapshot) Clone() PerformanceSnapshot {
	returns := make(map[string]interface{}, len(p.Returns))
	for k, v := range p.Returns {
		returns[k] = v
	}
	return PerformanceSnapshot{
		Month:   p.Month,
		Returns: returns,
	}
}

type DisplayMode string

const (
	DisplayModeCumulative   DisplayMode = "cumulative"
	DisplayModeMonthlyDelta DisplayMode = "monthly"
)

func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cumulative", "cumulative_return":
		return DisplayModeCumulative, nil
	case "monthly", "monthly_delta", "delta":
		return DisplayModeMonthlyDelta, nil
	}
	return "", fmt.Errorf("unknown display mode %q", s)
}

const (
	MinWindowMonths     = 3
	MaxWindowMonths     = 12
	DefaultWindowMonths = MaxWindowMonths

	// TradingDaysPerMonth converts a month window into the backend's
	// trading-day period.
	TradingDaysPerMonth = 21
)

type WindowSelection struct {
	MonthsRequested int `json:"monthsRequested"`
}

// NewWindowSelection clamps the request into [3, 12].
func NewWindowSelection(months int) WindowSelection {
	if months < MinWindowMonths {
		months = MinWindowMonths
	}
	if months > MaxWindowMonths {
		months = MaxWindowMonths
	}
	return WindowSelection{MonthsRequested: months}
}

func (w WindowSelection) IsDefault() bool {
	return w.MonthsRequested == DefaultWindowMonths
}

func (w WindowSelection) TradingDays() int {
	return w.MonthsRequested * TradingDaysPerMonth
}
