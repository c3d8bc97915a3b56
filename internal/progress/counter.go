package progress

import (
	"fmt"
	"time"
)

type LoadingPhase string

const (
	LoadingPhaseInitial    LoadingPhase = "initial"
	LoadingPhaseProcessing LoadingPhase = "processing"
	LoadingPhaseFinalizing LoadingPhase = "finalizing"

	DefaultEstimatedDuration = 15 * time.Second
)

// ElapsedCounter drives the secondary "Generating... (12s)" label. It counts
// whole seconds and flips to finalizing once 70% of the estimate has passed.
type ElapsedCounter struct {
	Estimated time.Duration
	Text      string
}

func NewElapsedCounter() ElapsedCounter {
	return ElapsedCounter{
		Estimated: DefaultEstimatedDuration,
		Text:      "Generating",
	}
}

func (c ElapsedCounter) Phase(seconds int) LoadingPhase {
	if seconds <= 0 {
		return LoadingPhaseInitial
	}
	if float64(seconds) < c.Estimated.Seconds()*0.7 {
		return LoadingPhaseProcessing
	}
	return LoadingPhaseFinalizing
}

func (c ElapsedCounter) Label(seconds int) string {
	switch c.Phase(seconds) {
	case LoadingPhaseProcessing:
		return fmt.Sprintf("%s... (%ds)", c.Text, seconds)
	case LoadingPhaseFinalizing:
		return fmt.Sprintf("Almost done... (%ds)", seconds)
	}
	return c.Text + "..."
}
