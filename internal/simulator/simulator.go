// Package simulator estimates blackjack outcome probabilities by running
// independent round trials against private copies of a depleting shoe.
//
// Trials are embarrassingly parallel: every trial clones the same seeded
// base shoe (full composition minus history minus current-round known
// cards) and owns an RNG stream derived from its trial index, so no
// locking is needed and the same seed reproduces the same report at any
// worker count.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// maxWorkers caps the fan-out; beyond this the returns diminish.
const maxWorkers = 8

// progressInterval is how often a long run reports trial progress.
const progressInterval = 2 * time.Second

// Config holds the inputs for one aggregator run.
type Config struct {
	Players      [][]deck.Rank
	DealerUpcard deck.Rank
	NumDecks     int
	Simulations  int

	// History is the ordered sequence of cards seen in prior rounds. It
	// is owned by the caller and never mutated here.
	History []deck.Rank

	Seed    int64 // 0 means derive from the current time
	Workers int   // 0 means one per CPU, capped at maxWorkers

	Logger *log.Logger
	Clock  quartz.Clock
}

// Simulator runs Monte Carlo outcome estimation.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run executes all trials and returns the finalised probability report.
func (s *Simulator) Run(ctx context.Context) (statistics.Report, error) {
	if err := s.validate(); err != nil {
		return statistics.Report{}, err
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	base := s.seedShoe()

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > s.config.Simulations {
		workers = s.config.Simulations
	}

	s.config.Logger.Debug("starting simulation",
		"trials", s.config.Simulations,
		"players", len(s.config.Players),
		"decks", s.config.NumDecks,
		"shoe", base.Remaining(),
		"workers", workers,
		"seed", seed)

	var completed atomic.Int64
	stopProgress := s.reportProgress(&completed)
	defer stopProgress()

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Outcomes, workers)

	perWorker := s.config.Simulations / workers
	remainder := s.config.Simulations % workers

	next := 0
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		start := next
		next += trials

		g.Go(func() error {
			local := statistics.NewOutcomes(len(s.config.Players))

			// Each trial owns a stream derived from (seed, trial index),
			// so a run is reproducible regardless of how trials are split
			// across workers.
			for i := start; i < start+trials; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				rng := randutil.New(randutil.Derive(seed, i))
				shoe := base.Clone()
				local.Record(game.PlayRound(shoe, s.config.Players, s.config.DealerUpcard, rng))
				completed.Add(1)
			}

			select {
			case results <- local:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	total := statistics.NewOutcomes(len(s.config.Players))
	for local := range results {
		total.Merge(local)
	}

	if err := g.Wait(); err != nil {
		return statistics.Report{}, fmt.Errorf("simulation aborted: %w", err)
	}

	if err := total.Validate(); err != nil {
		return statistics.Report{}, fmt.Errorf("outcome validation failed: %w", err)
	}

	if total.InfiniteDraws > 0 {
		// Evidence of an extremely depleted shoe; the trials completed on
		// the infinite-deck model rather than failing.
		s.config.Logger.Debug("shoe exhausted during trials",
			"fallback_draws", total.InfiniteDraws)
	}

	return total.Probabilities(), nil
}

// validate checks the caller-supplied ranges before any work starts.
func (s *Simulator) validate() error {
	if s.config.NumDecks < 1 {
		return fmt.Errorf("numDecks must be >= 1, got %d", s.config.NumDecks)
	}
	if s.config.Simulations < 1 {
		return fmt.Errorf("simulations must be >= 1, got %d", s.config.Simulations)
	}
	if !s.config.DealerUpcard.Valid() {
		return fmt.Errorf("dealer upcard must be between 2 and 11, got %d", int(s.config.DealerUpcard))
	}
	for i, cards := range s.config.Players {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("player %d holds invalid card value %d", i+1, int(c))
			}
		}
	}
	return nil
}

// seedShoe builds the shared base shoe: full composition minus the history
// and the current round's known cards. Workers clone it per trial.
func (s *Simulator) seedShoe() *deck.Shoe {
	shoe := deck.NewShoe(s.config.NumDecks)
	shoe.RemoveKnown(s.config.History)

	known := make([]deck.Rank, 0, 1+len(s.config.Players)*2)
	known = append(known, s.config.DealerUpcard)
	for _, cards := range s.config.Players {
		known = append(known, cards...)
	}
	shoe.RemoveKnown(known)
	return shoe
}

// reportProgress logs completed trial counts on an interval until the
// returned stop function is called. Uses the injected clock so tests can
// drive it deterministically.
func (s *Simulator) reportProgress(completed *atomic.Int64) func() {
	done := make(chan struct{})
	ticker := s.config.Clock.NewTicker(progressInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.config.Logger.Debug("simulation progress",
					"completed", completed.Load(),
					"total", s.config.Simulations)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
