package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the number of cards contributed by one deck.
const CardsPerDeck = 52

// ErrShoeEmpty is returned by Draw when no cards remain.
var ErrShoeEmpty = errors.New("shoe is empty")

// perDeckCount returns how many copies of a rank one deck contributes:
// four each of 2-9 and Ace, sixteen ten-valued cards.
func perDeckCount(r Rank) int {
	if r == Ten {
		return 16
	}
	return 4
}

// Shoe is a finite multiset of card ranks drawn without replacement.
// It is not safe for concurrent use; each simulation trial works on its
// own Clone.
type Shoe struct {
	counts    [Ace + 1]int // indexed by Rank, 0 and 1 unused
	remaining int
}

// NewShoe builds a shoe from numDecks standard decks.
func NewShoe(numDecks int) *Shoe {
	s := &Shoe{}
	for r := Two; r <= Ace; r++ {
		n := perDeckCount(r) * numDecks
		s.counts[r] = n
		s.remaining += n
	}
	return s
}

// NewShoeOf builds a shoe holding exactly the given ranks. Useful for
// composing rigged pools in tests and custom depletion scenarios.
func NewShoeOf(ranks ...Rank) *Shoe {
	s := &Shoe{}
	for _, r := range ranks {
		if r.Valid() {
			s.counts[r]++
			s.remaining++
		}
	}
	return s
}

// Clone returns an independent copy of the shoe.
func (s *Shoe) Clone() *Shoe {
	dup := *s
	return &dup
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return s.remaining
}

// Count returns how many copies of rank r remain.
func (s *Shoe) Count(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return s.counts[r]
}

// RemoveKnown removes one copy of each given rank from the shoe. A rank
// with no remaining copies is skipped silently; history bookkeeping may
// legitimately present the same card more than once. Returns the number
// of cards actually removed.
func (s *Shoe) RemoveKnown(ranks []Rank) int {
	removed := 0
	for _, r := range ranks {
		if !r.Valid() || s.counts[r] == 0 {
			continue
		}
		s.counts[r]--
		s.remaining--
		removed++
	}
	return removed
}

// Draw removes and returns a uniformly random card from the remaining
// weighted population.
func (s *Shoe) Draw(rng *rand.Rand) (Rank, error) {
	if s.remaining == 0 {
		return 0, ErrShoeEmpty
	}
	n := rng.IntN(s.remaining)
	for r := Two; r <= Ace; r++ {
		if n < s.counts[r] {
			s.counts[r]--
			s.remaining--
			return r, nil
		}
		n -= s.counts[r]
	}
	// Unreachable while counts and remaining agree.
	return 0, ErrShoeEmpty
}

// DrawInfinite draws a card with replacement from the fixed single-deck
// composition. It is the fallback used when a finite shoe runs dry
// mid-round.
func DrawInfinite(rng *rand.Rand) Rank {
	n := rng.IntN(CardsPerDeck)
	for r := Two; r <= Ace; r++ {
		if n < perDeckCount(r) {
			return r
		}
		n -= perDeckCount(r)
	}
	return Ace
}
