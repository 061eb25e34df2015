// Package statistics accumulates Monte Carlo trial outcomes and converts
// them into a probability report.
package statistics

import (
	"fmt"
	"sort"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// PlayerOutcome tracks win/push/loss counts for one player hand.
type PlayerOutcome struct {
	Wins   int
	Pushes int
	Losses int
}

// Outcomes accumulates results across trials. Writes are append-only per
// trial; workers keep private Outcomes and Merge them at the end.
type Outcomes struct {
	Trials        int
	Players       []PlayerOutcome
	DealerTotals  map[int]int
	HiddenCards   map[deck.Rank]int
	InfiniteDraws int
}

// NewOutcomes creates a zeroed accumulator for the given player count.
func NewOutcomes(players int) *Outcomes {
	return &Outcomes{
		Players:      make([]PlayerOutcome, players),
		DealerTotals: make(map[int]int),
		HiddenCards:  make(map[deck.Rank]int),
	}
}

// Record folds one round result into the counters. A busted player loses
// regardless of the dealer; otherwise a dealer bust or a strictly lower
// dealer total wins, equal totals push.
func (o *Outcomes) Record(res game.RoundResult) {
	o.Trials++
	o.DealerTotals[res.DealerTotal]++
	o.HiddenCards[res.Hidden]++
	o.InfiniteDraws += res.InfiniteDraws

	for i, p := range res.Players {
		switch {
		case p.Busted:
			o.Players[i].Losses++
		case res.DealerTotal > 21:
			o.Players[i].Wins++
		case res.DealerTotal < p.Total:
			o.Players[i].Wins++
		case res.DealerTotal == p.Total:
			o.Players[i].Pushes++
		default:
			o.Players[i].Losses++
		}
	}
}

// Merge adds another accumulator's counts into this one.
func (o *Outcomes) Merge(other *Outcomes) {
	o.Trials += other.Trials
	o.InfiniteDraws += other.InfiniteDraws
	for i := range o.Players {
		o.Players[i].Wins += other.Players[i].Wins
		o.Players[i].Pushes += other.Players[i].Pushes
		o.Players[i].Losses += other.Players[i].Losses
	}
	for total, n := range other.DealerTotals {
		o.DealerTotals[total] += n
	}
	for card, n := range other.HiddenCards {
		o.HiddenCards[card] += n
	}
}

// Validate checks that no trial was dropped or double-counted: every
// player's counts must sum to the trial count, as must both histograms.
func (o *Outcomes) Validate() error {
	for i, p := range o.Players {
		if got := p.Wins + p.Pushes + p.Losses; got != o.Trials {
			return fmt.Errorf("player %d outcome count %d does not match %d trials", i+1, got, o.Trials)
		}
	}
	dealerSum := 0
	for _, n := range o.DealerTotals {
		dealerSum += n
	}
	if dealerSum != o.Trials {
		return fmt.Errorf("dealer total histogram sums to %d, expected %d", dealerSum, o.Trials)
	}
	hiddenSum := 0
	for _, n := range o.HiddenCards {
		hiddenSum += n
	}
	if hiddenSum != o.Trials {
		return fmt.Errorf("hidden card histogram sums to %d, expected %d", hiddenSum, o.Trials)
	}
	return nil
}

// PlayerProbabilities are per-player outcome fractions; they sum to 1.0
// within floating rounding.
type PlayerProbabilities struct {
	Win  float64
	Push float64
	Loss float64
}

// Report is the finalised output of an aggregator run.
type Report struct {
	Trials        int
	Players       []PlayerProbabilities
	DealerTotals  map[int]float64
	HiddenCards   map[deck.Rank]float64
	InfiniteDraws int
}

// Probabilities divides every counter by the trial count.
func (o *Outcomes) Probabilities() Report {
	n := float64(o.Trials)
	rep := Report{
		Trials:        o.Trials,
		Players:       make([]PlayerProbabilities, len(o.Players)),
		DealerTotals:  make(map[int]float64, len(o.DealerTotals)),
		HiddenCards:   make(map[deck.Rank]float64, len(o.HiddenCards)),
		InfiniteDraws: o.InfiniteDraws,
	}
	for i, p := range o.Players {
		rep.Players[i] = PlayerProbabilities{
			Win:  float64(p.Wins) / n,
			Push: float64(p.Pushes) / n,
			Loss: float64(p.Losses) / n,
		}
	}
	for total, c := range o.DealerTotals {
		rep.DealerTotals[total] = float64(c) / n
	}
	for card, c := range o.HiddenCards {
		rep.HiddenCards[card] = float64(c) / n
	}
	return rep
}

// SortedDealerTotals returns the dealer totals present in the report in
// ascending order, for stable display.
func (r Report) SortedDealerTotals() []int {
	totals := make([]int, 0, len(r.DealerTotals))
	for t := range r.DealerTotals {
		totals = append(totals, t)
	}
	sort.Ints(totals)
	return totals
}

// SortedHiddenCards returns the hidden-card ranks present in the report in
// ascending order.
func (r Report) SortedHiddenCards() []deck.Rank {
	cards := make([]deck.Rank, 0, len(r.HiddenCards))
	for c := range r.HiddenCards {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i] < cards[j] })
	return cards
}
