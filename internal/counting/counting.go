// Package counting derives Hi-Lo card-counting metrics from the sequence
// of cards already seen. It reads history; it never decides bet sizing.
package counting

import "github.com/lox/blackjack-cli/internal/deck"

// Running folds the Hi-Lo weights over a card history: +1 for 2-6, -1 for
// tens and Aces, 0 for 7-9.
func Running(history []deck.Rank) int {
	count := 0
	for _, card := range history {
		count += card.CountValue()
	}
	return count
}

// True converts a running count to a true count by dividing by the number
// of decks remaining. cardsRemaining is floored at one card so an empty
// shoe cannot divide by zero.
func True(running int, cardsRemaining int) float64 {
	return float64(running) / DecksRemaining(cardsRemaining)
}

// DecksRemaining converts a card count to fractional decks, floored at a
// single card.
func DecksRemaining(cardsRemaining int) float64 {
	if cardsRemaining < 1 {
		cardsRemaining = 1
	}
	return float64(cardsRemaining) / float64(deck.CardsPerDeck)
}
