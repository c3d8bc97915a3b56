package progress

import (
	"math"
	"time"
)

const (
	// MaxRunningPercent leaves the last two points for the real completion.
	MaxRunningPercent = 98.0

	nearCompleteAfter = 20 * time.Second
)

type segment struct {
	until    time.Duration
	from, to float64
}

var curve = []segment{
	{until: 3 * time.Second, from: 0, to: 30},
	{until: 8 * time.Second, from: 30, to: 70},
	{until: 12 * time.Second, from: 70, to: 85},
	{until: 20 * time.Second, from: 85, to: 95},
}

// Percent maps time since the start of a run onto the synthetic progress
// curve. Past 20s it hovers around 96.5 and reports nearComplete.
func Percent(elapsed time.Duration) (percent float64, nearComplete bool) {
	if elapsed < 0 {
		elapsed = 0
	}

	var start time.Duration
	for _, seg := range curve {
		if elapsed < seg.until {
			frac := float64(elapsed-start) / float64(seg.until-start)
			return math.Min(seg.from+frac*(seg.to-seg.from), MaxRunningPercent), false
		}
		start = seg.until
	}

	wobble := math.Sin((elapsed - nearCompleteAfter).Seconds()) * 1.5
	return math.Min(96.5+wobble, MaxRunningPercent), true
}

var stepBreakpoints = []time.Duration{
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	12 * time.Second,
	16 * time.Second,
}

// StepIndex picks which status label is shown at a given elapsed time.
func StepIndex(elapsed time.Duration) int {
	for i, bp := range stepBreakpoints {
		if elapsed < bp {
			return i
		}
	}
	return FinalStep
}

var StepLabels = []string{
	"Analyzing market data...",
	"Fetching live stock prices...",
	"AI is analyzing the investment strategy...",
	"Calculating portfolio allocation...",
	"Generating historical backtest data...",
	"Finishing strategy generation...",
}

const (
	FinalStep = 5

	NearCompleteLabel = "Completing the final strategy optimizations..."
)

func StepLabel(step int, nearComplete bool) string {
	if nearComplete {
		return NearCompleteLabel
	}
	if step < 0 {
		step = 0
	}
	if step >= len(StepLabels) {
		step = len(StepLabels) - 1
	}
	return StepLabels[step]
}
