// Package advisor is the boundary the callers talk to: it validates a
// structured request, looks up the recommended action for each hand,
// derives the Hi-Lo counts from history, and runs the Monte Carlo outcome
// estimator. Presentation is the caller's problem.
package advisor

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/counting"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/hand"
	"github.com/lox/blackjack-cli/internal/simulator"
	"github.com/lox/blackjack-cli/internal/statistics"
	"github.com/lox/blackjack-cli/internal/strategy"
)

// Request carries the structured inputs for one advise call.
type Request struct {
	NumDecks     int
	Players      [][]deck.Rank
	DealerUpcard deck.Rank
	Simulations  int
	History      []deck.Rank

	Seed    int64
	Workers int
}

// HandAdvice is the deterministic table lookup for one starting hand.
type HandAdvice struct {
	Cards  []deck.Rank
	Total  int
	Soft   bool
	Action strategy.Action
}

// Report bundles everything a caller gets back from one advise call.
type Report struct {
	Advice       []HandAdvice
	Outcomes     statistics.Report
	RunningCount int
	TrueCount    float64
}

// Advisor answers advise requests.
type Advisor struct {
	logger *log.Logger
}

// New creates an advisor. A nil logger discards output.
func New(logger *log.Logger) *Advisor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Advisor{logger: logger}
}

// Advise validates the request, computes per-hand recommendations and
// counts, and runs the outcome estimator.
func (a *Advisor) Advise(ctx context.Context, req Request) (*Report, error) {
	rep := &Report{Advice: make([]HandAdvice, 0, len(req.Players))}

	for i, cards := range req.Players {
		h := hand.New(cards...)
		action, err := strategy.Decide(h.Total, req.DealerUpcard, h.Soft)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		rep.Advice = append(rep.Advice, HandAdvice{
			Cards:  cards,
			Total:  h.Total,
			Soft:   h.Soft,
			Action: action,
		})
	}

	rep.RunningCount = counting.Running(req.History)
	rep.TrueCount = counting.True(rep.RunningCount, remainingAfterHistory(req.NumDecks, req.History))

	sim := simulator.New(simulator.Config{
		Players:      req.Players,
		DealerUpcard: req.DealerUpcard,
		NumDecks:     req.NumDecks,
		Simulations:  req.Simulations,
		History:      req.History,
		Seed:         req.Seed,
		Workers:      req.Workers,
		Logger:       a.logger,
	})

	outcomes, err := sim.Run(ctx)
	if err != nil {
		return nil, err
	}
	rep.Outcomes = outcomes
	return rep, nil
}

// remainingAfterHistory counts the cards left in a shoe after removing the
// history, for true-count normalisation. A negative deck count is left to
// the simulator's own validation.
func remainingAfterHistory(numDecks int, history []deck.Rank) int {
	if numDecks < 1 {
		return 0
	}
	shoe := deck.NewShoe(numDecks)
	shoe.RemoveKnown(history)
	return shoe.Remaining()
}
