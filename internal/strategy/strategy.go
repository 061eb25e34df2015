// Package strategy implements the fixed basic-strategy decision table for
// blackjack: a pure function from (total, dealer upcard, softness) to an
// action. The table is transcribed, not derived; changing a cell changes
// the advisor's output everywhere.
package strategy

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Action is a recommended play for a hand.
type Action int

const (
	Hit Action = iota
	Stand
	Double
)

// String returns the display name of an action.
func (a Action) String() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case Double:
		return "Double"
	default:
		return "Unknown"
	}
}

// Decide returns the recommended action for a hand. The total must be in
// [4,21] and the dealer upcard in [2,11]; callers must filter busted hands
// before asking.
func Decide(total int, dealer deck.Rank, soft bool) (Action, error) {
	if total < 4 || total > 21 {
		return Hit, fmt.Errorf("player total must be between 4 and 21, got %d", total)
	}
	if !dealer.Valid() {
		return Hit, fmt.Errorf("dealer upcard must be between 2 and 11, got %d", int(dealer))
	}
	return decide(total, dealer, soft), nil
}

// DecideInPlay is the lenient variant used mid-simulation, where a hand may
// transiently report a just-busted total before the caller checks it. Any
// total above 21 is an implicit Stand.
func DecideInPlay(total int, dealer deck.Rank, soft bool) Action {
	if total > 21 {
		return Stand
	}
	return decide(total, dealer, soft)
}

func decide(total int, dealer deck.Rank, soft bool) Action {
	d := int(dealer)

	if soft {
		switch {
		case total == 13 || total == 14:
			if d >= 5 && d <= 6 {
				return Double
			}
			return Hit
		case total == 15 || total == 16:
			if d >= 4 && d <= 6 {
				return Double
			}
			return Hit
		case total == 17:
			if d >= 3 && d <= 6 {
				return Double
			}
			return Hit
		case total == 18:
			switch {
			case d == 2 || d == 7 || d == 8:
				return Stand
			case d >= 3 && d <= 6:
				return Double
			default:
				return Hit
			}
		case total >= 19:
			return Stand
		}
		// Soft 12 and below falls through to the hard rules.
	}

	switch {
	case total <= 8:
		return Hit
	case total == 9:
		if d >= 3 && d <= 6 {
			return Double
		}
		return Hit
	case total == 10:
		if d <= 9 {
			return Double
		}
		return Hit
	case total == 11:
		if d <= 10 {
			return Double
		}
		return Hit
	case total <= 16:
		if d <= 6 {
			// 12 is the exception: hit into a dealer 2 or 3.
			if total == 12 && d <= 3 {
				return Hit
			}
			return Stand
		}
		return Hit
	default: // 17+
		return Stand
	}
}
