// Package game plays out a single blackjack round against a private shoe:
// the dealer's hidden card is drawn first, each player hand is played to
// completion with the basic-strategy table, then the dealer draws to the
// house rule. One call is one Monte Carlo trial.
package game

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/hand"
	"github.com/lox/blackjack-cli/internal/strategy"
)

// PlayerResult is the terminal state of one player hand.
type PlayerResult struct {
	Busted bool
	Total  int
}

// RoundResult holds the terminal values of one simulated round.
type RoundResult struct {
	Players     []PlayerResult
	DealerTotal int
	Hidden      deck.Rank

	// InfiniteDraws counts draws that fell back to the infinite-deck
	// model because the shoe ran dry mid-round.
	InfiniteDraws int
}

// PlayRound simulates one full round. The shoe must already have the
// history and all current-round known cards removed; the dealer's hidden
// card is still in it. The shoe is consumed by the call, so pass a private
// clone per trial.
//
// Draw order matters in a shared finite shoe: the hidden card is committed
// before any player draws, players act in input order, then the dealer.
func PlayRound(shoe *deck.Shoe, players [][]deck.Rank, upcard deck.Rank, rng *rand.Rand) RoundResult {
	res := RoundResult{Players: make([]PlayerResult, 0, len(players))}

	res.Hidden = draw(shoe, rng, &res.InfiniteDraws)

	for _, cards := range players {
		res.Players = append(res.Players, playHand(shoe, cards, upcard, rng, &res.InfiniteDraws))
	}

	res.DealerTotal = playDealer(shoe, upcard, res.Hidden, rng, &res.InfiniteDraws)
	return res
}

// playHand plays a single player hand to completion against the table.
func playHand(shoe *deck.Shoe, cards []deck.Rank, upcard deck.Rank, rng *rand.Rand, fallback *int) PlayerResult {
	h := hand.New(cards...)
	action := strategy.DecideInPlay(h.Total, upcard, h.Soft)

	if action == strategy.Double {
		// Double as the opening decision draws exactly one card.
		h.Add(draw(shoe, rng, fallback))
	} else {
		// A Double returned mid-loop is terminal: no second card, no
		// re-doubling. Total 22 is a hard stop so a soft hand cannot
		// loop forever.
		for action == strategy.Hit && h.Total < 22 {
			h.Add(draw(shoe, rng, fallback))
			if h.Busted() {
				break
			}
			action = strategy.DecideInPlay(h.Total, upcard, h.Soft)
		}
	}

	return PlayerResult{Busted: h.Busted(), Total: h.Total}
}

// playDealer draws out the dealer from (upcard, hidden). The house hits
// soft 17: the stand condition is total >= 17 unless the 17 is soft. This
// matches the observed reference behaviour, not the commonly documented
// stand-on-soft-17 rule.
func playDealer(shoe *deck.Shoe, upcard, hidden deck.Rank, rng *rand.Rand, fallback *int) int {
	total, soft := hand.Apply(0, false, upcard)
	total, soft = hand.Apply(total, soft, hidden)

	for total < 17 || (total == 17 && soft) {
		total, soft = hand.Apply(total, soft, draw(shoe, rng, fallback))
	}
	return total
}

// draw takes a card from the shoe, falling back to an infinite-deck draw
// when it is exhausted so a pathologically depleted shoe never fails the
// trial.
func draw(shoe *deck.Shoe, rng *rand.Rand, fallback *int) deck.Rank {
	card, err := shoe.Draw(rng)
	if err != nil {
		*fallback++
		return deck.DrawInfinite(rng)
	}
	return card
}
