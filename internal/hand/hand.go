// Package hand tracks blackjack hand totals as cards are applied in draw
// order. A hand is "soft" while one Ace is counted as 11 without busting;
// only one Ace is ever speculatively worth 11 at a time, so converting a
// soft hand to hard subtracts exactly 10.
package hand

import "github.com/lox/blackjack-cli/internal/deck"

// Apply adds a single card to a running (total, soft) pair and returns the
// adjusted pair. It is the sole mutator of hand state and is safe to chain
// with its own output.
func Apply(total int, soft bool, card deck.Rank) (int, bool) {
	if card.IsAce() {
		if total+11 <= 21 {
			total += 11
			soft = true
		} else {
			total++
		}
	} else {
		total += int(card)
	}
	if total > 21 && soft {
		total -= 10
		soft = false
	}
	return total, soft
}

// Hand is an ordered sequence of ranks plus its derived value.
type Hand struct {
	Cards []deck.Rank
	Total int
	Soft  bool
}

// New builds a hand from the given cards, applying them in order.
func New(cards ...deck.Rank) Hand {
	h := Hand{Cards: make([]deck.Rank, 0, len(cards)+3)}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add applies one more card to the hand.
func (h *Hand) Add(card deck.Rank) {
	h.Cards = append(h.Cards, card)
	h.Total, h.Soft = Apply(h.Total, h.Soft, card)
}

// Busted reports whether the hand total exceeds 21.
func (h Hand) Busted() bool {
	return h.Total > 21
}
