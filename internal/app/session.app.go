package app

import (
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"aistrategy/internal/progress"
	"aistrategy/internal/service"
	"context"
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
)

var (
	ErrGenerationInFlight = errors.New("a strategy is already being generated")
	ErrNoStrategy         = errors.New("no strategy has been generated yet")
)

// Session holds everything the questionnaire and results views share:
// preferences, the strategy result, loading and error flags, and the chart
// window and display mode. All mutation goes through its methods.
//
// Backend calls run without the lock held. Each call takes a sequence token
// when it starts and its result is only applied if the token is still
// current when it returns, so a superseded request can never overwrite the
// result of a newer one.
type Session struct {
	mu sync.Mutex

	StrategyService service.StrategyService
	HistoryService  service.HistoryService
	MarketService   service.MarketService
	simulator       *progress.Simulator

	preferences   domain.InvestmentPreferences
	apiKey        string
	marketIndices []domain.MarketIndex

	strategy *domain.AIStrategyResponse
	loading  bool
	errMsg   string

	window        domain.WindowSelection
	mode          domain.DisplayMode
	series        []domain.PerformanceSnapshot
	windowLoading bool
	fromFallback  bool

	generationSeq uint64
	windowSeq     uint64
}

func NewSession(
	strategyService service.StrategyService,
	historyService service.HistoryService,
	marketService service.MarketService,
	clock clockwork.Clock,
) *Session {
	return &Session{
		StrategyService: strategyService,
		HistoryService:  historyService,
		MarketService:   marketService,
		simulator:       progress.NewSimulator(clock),
		preferences:     domain.DefaultPreferences(),
		window:          domain.NewWindowSelection(domain.DefaultWindowMonths),
		mode:            domain.DisplayModeCumulative,
	}
}

// Simulator is exposed so callers can Watch it while a generation runs.
func (s *Session) Simulator() *progress.Simulator {
	return s.simulator
}

func (s *Session) SetPreferences(preferences domain.InvestmentPreferences, apiKey string) []string {
	s.mu.Lock()
	s.preferences = preferences
	s.apiKey = apiKey
	s.mu.Unlock()

	return s.StrategyService.PreferenceWarnings(preferences)
}

func (s *Session) LoadMarketIndices(ctx context.Context) []domain.MarketIndex {
	indices := s.MarketService.GetMarketIndices(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.marketIndices = indices
	return indices
}

type generationRequest struct {
	token       uint64
	preferences domain.InvestmentPreferences
	apiKey      string
}

// GenerateStrategy submits the current preferences and blocks until the
// backend answers. A failure is kept as a user-facing message on the
// session and also returned; nothing is retried.
func (s *Session) GenerateStrategy(ctx context.Context) error {
	req, err := s.beginGeneration()
	if err != nil {
		return err
	}
	return s.finishGeneration(ctx, req)
}

// StartGeneration is GenerateStrategy without the wait. The session is
// already loading when it returns; the channel yields the outcome.
func (s *Session) StartGeneration(ctx context.Context) (<-chan error, error) {
	req, err := s.beginGeneration()
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.finishGeneration(ctx, req)
	}()
	return done, nil
}

func (s *Session) beginGeneration() (generationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return generationRequest{}, ErrGenerationInFlight
	}
	s.generationSeq++
	s.windowSeq++
	s.loading = true
	s.errMsg = ""
	s.simulator.Start()

	return generationRequest{
		token:       s.generationSeq,
		preferences: s.preferences,
		apiKey:      s.apiKey,
	}, nil
}

func (s *Session) finishGeneration(ctx context.Context, req generationRequest) error {
	log := logger.FromContext(ctx)

	result, err := s.StrategyService.GenerateStrategy(ctx, req.preferences, req.apiKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.token != s.generationSeq {
		log.Infow("discarding superseded strategy result", "token", req.token)
		return nil
	}

	s.loading = false
	s.simulator.Stop()

	if err != nil {
		s.errMsg = err.Error()
		return err
	}

	s.strategy = result
	s.series = result.HistoricalPerformance
	s.window = domain.NewWindowSelection(domain.DefaultWindowMonths)
	s.mode = domain.DisplayModeCumulative
	s.windowLoading = false
	s.fromFallback = false

	log.Infow("strategy generated", "recommendations", len(result.Recommendations))
	return nil
}

// SelectWindow switches the chart window. The selection takes effect
// immediately; the series follows when the fetch returns. Returns false when
// a newer selection made this one stale.
func (s *Session) SelectWindow(ctx context.Context, months int) (bool, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if s.strategy == nil {
		s.mu.Unlock()
		return false, ErrNoStrategy
	}
	s.windowSeq++
	token := s.windowSeq
	window := domain.NewWindowSelection(months)
	s.window = window
	s.windowLoading = true
	recommendations := s.strategy.Recommendations
	initial := s.strategy.HistoricalPerformance
	s.mu.Unlock()

	result := s.HistoryService.LoadWindow(ctx, recommendations, initial, window)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.windowSeq {
		log.Infow("discarding superseded history response", "months", window.MonthsRequested, "token", token)
		return false, nil
	}

	s.series = result.Series
	s.fromFallback = result.FromFallback
	s.windowLoading = false
	return true, nil
}

func (s *Session) SetDisplayMode(mode domain.DisplayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// BackToQuestionnaire returns to the form. Preferences are kept so the user
// can adjust and resubmit; any in-flight request is orphaned.
func (s *Session) BackToQuestionnaire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generationSeq++
	s.windowSeq++

	s.strategy = nil
	s.errMsg = ""
	s.loading = false
	s.series = nil
	s.window = domain.NewWindowSelection(domain.DefaultWindowMonths)
	s.mode = domain.DisplayModeCumulative
	s.windowLoading = false
	s.fromFallback = false
	s.simulator.Reset()
}

// Progress reads the simulator without taking the session lock.
func (s *Session) Progress() progress.Snapshot {
	return s.simulator.Snapshot()
}
