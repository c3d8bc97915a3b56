package progress

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRunning    Phase = "running"
	PhaseCompleting Phase = "completing"
)

const (
	TickInterval           = 100 * time.Millisecond
	CounterInterval        = time.Second
	CompletionDisplayDelay = 500 * time.Millisecond
)

type Snapshot struct {
	Phase          Phase        `json:"phase"`
	Percent        float64      `json:"percent"`
	Step           int          `json:"step"`
	Label          string       `json:"label"`
	NearComplete   bool         `json:"nearComplete"`
	ElapsedMs      int64        `json:"elapsedMs"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
	LoadingPhase   LoadingPhase `json:"loadingPhase"`
	LoadingLabel   string       `json:"loadingLabel"`
}

// Simulator fakes progress for an operation that reports none. Its output
// is a function of time since Start; Stop shows 100% for
// CompletionDisplayDelay and then drops back to idle.
type Simulator struct {
	mu           sync.Mutex
	clock        clockwork.Clock
	counter      ElapsedCounter
	phase        Phase
	startedAt    time.Time
	completedAt  time.Time
	nearComplete bool
}

func NewSimulator(clock clockwork.Clock) *Simulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Simulator{
		clock:   clock,
		counter: NewElapsedCounter(),
		phase:   PhaseIdle,
	}
}

func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseRunning
	s.startedAt = s.clock.Now()
	s.nearComplete = false
}

// Stop is called when the real operation finishes. Stopping an idle
// simulator does nothing.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRunning {
		return
	}
	s.phase = PhaseCompleting
	s.completedAt = s.clock.Now()
}

func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Simulator) reset() {
	s.phase = PhaseIdle
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
	s.nearComplete = false
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if s.phase == PhaseCompleting && now.Sub(s.completedAt) >= CompletionDisplayDelay {
		s.reset()
	}

	switch s.phase {
	case PhaseRunning:
		elapsed := now.Sub(s.startedAt)
		percent, near := Percent(elapsed)
		if near {
			s.nearComplete = true
		}
		step := StepIndex(elapsed)
		seconds := int(elapsed / time.Second)
		return Snapshot{
			Phase:          PhaseRunning,
			Percent:        percent,
			Step:           step,
			Label:          StepLabel(step, s.nearComplete),
			NearComplete:   s.nearComplete,
			ElapsedMs:      elapsed.Milliseconds(),
			ElapsedSeconds: seconds,
			LoadingPhase:   s.counter.Phase(seconds),
			LoadingLabel:   s.counter.Label(seconds),
		}
	case PhaseCompleting:
		return Snapshot{
			Phase:        PhaseCompleting,
			Percent:      100,
			Step:         FinalStep,
			Label:        StepLabel(FinalStep, s.nearComplete),
			NearComplete: s.nearComplete,
			ElapsedMs:    s.completedAt.Sub(s.startedAt).Milliseconds(),
			LoadingPhase: LoadingPhaseInitial,
		}
	}

	return Snapshot{
		Phase:        PhaseIdle,
		Label:        StepLabel(0, false),
		LoadingPhase: LoadingPhaseInitial,
	}
}

// Watch publishes a snapshot on every progress tick and every counter tick
// until the simulator is back to idle or ctx is done. Both tickers are
// stopped on every exit path.
func (s *Simulator) Watch(ctx context.Context, out chan<- Snapshot) {
	progressTicker := s.clock.NewTicker(TickInterval)
	defer progressTicker.Stop()
	counterTicker := s.clock.NewTicker(CounterInterval)
	defer counterTicker.Stop()

	publish := func() bool {
		snap := s.Snapshot()
		select {
		case out <- snap:
		case <-ctx.Done():
			return false
		}
		return snap.Phase != PhaseIdle
	}

	if !publish() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-progressTicker.Chan():
		case <-counterTicker.Chan():
		}
		if !publish() {
			return
		}
	}
}
