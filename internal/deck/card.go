package deck

import "strconv"

// Rank represents a blackjack card value. Face cards are not distinguished
// from tens; everything that scores 10 is rank Ten. Ace is 11 and may later
// be revalued to 1 by the hand engine.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Ace   Rank = 11
)

// Valid reports whether r is a playable rank (2-11).
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// IsAce returns true if the rank is an Ace.
func (r Rank) IsAce() bool {
	return r == Ace
}

// String returns the display form of a rank ("2".."10", "A").
func (r Rank) String() string {
	if r == Ace {
		return "A"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// CountValue returns the Hi-Lo weight of the rank: +1 for 2-6, -1 for
// tens and Aces, 0 for 7-9.
func (r Rank) CountValue() int {
	switch {
	case r >= Two && r <= Six:
		return 1
	case r == Ten || r == Ace:
		return -1
	default:
		return 0
	}
}

// ParseRank converts a numeric card string ("2".."10", "11", "a", "A")
// into a Rank.
func ParseRank(s string) (Rank, bool) {
	if s == "A" || s == "a" {
		return Ace, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	r := Rank(n)
	return r, r.Valid()
}
