package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/strategy"
)

func TestAdviseRecommendations(t *testing.T) {
	tests := []struct {
		name   string
		cards  []deck.Rank
		dealer deck.Rank
		want   strategy.Action
	}{
		{"hard 16 hits into a ten", []deck.Rank{deck.Ten, deck.Six}, deck.Ten, strategy.Hit},
		{"soft 17 doubles into a six", []deck.Rank{deck.Ace, deck.Six}, deck.Six, strategy.Double},
		{"hard 20 stands", []deck.Rank{deck.Ten, deck.Ten}, deck.Ace, strategy.Stand},
		{"eleven doubles into a ten", []deck.Rank{deck.Five, deck.Six}, deck.Ten, strategy.Double},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := New(nil).Advise(context.Background(), Request{
				NumDecks:     6,
				Players:      [][]deck.Rank{tt.cards},
				DealerUpcard: tt.dealer,
				Simulations:  200,
				Seed:         1,
			})
			require.NoError(t, err)
			require.Len(t, report.Advice, 1)
			assert.Equal(t, tt.want, report.Advice[0].Action)
		})
	}
}

func TestAdviseReportIsComplete(t *testing.T) {
	history := []deck.Rank{deck.Two, deck.Three, deck.Ten, deck.Ace}

	report, err := New(nil).Advise(context.Background(), Request{
		NumDecks: 2,
		Players: [][]deck.Rank{
			{deck.Ten, deck.Six},
			{deck.Ace, deck.Seven},
		},
		DealerUpcard: deck.Nine,
		Simulations:  300,
		History:      history,
		Seed:         9,
	})
	require.NoError(t, err)

	assert.Len(t, report.Advice, 2)
	assert.Equal(t, 16, report.Advice[0].Total)
	assert.False(t, report.Advice[0].Soft)
	assert.Equal(t, 18, report.Advice[1].Total)
	assert.True(t, report.Advice[1].Soft)

	assert.Equal(t, 300, report.Outcomes.Trials)
	require.Len(t, report.Outcomes.Players, 2)
	for _, p := range report.Outcomes.Players {
		assert.InDelta(t, 1.0, p.Win+p.Push+p.Loss, 1e-9)
	}

	// [2,3,10,A] is Hi-Lo neutral; the true count divides by the 100
	// cards still in a two-deck shoe after this history.
	assert.Equal(t, 0, report.RunningCount)
	assert.Zero(t, report.TrueCount)
}

func TestAdviseTrueCountUsesDepletedShoe(t *testing.T) {
	// Running +4 with 48 cards left of one deck: 4 / (48/52).
	history := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five}

	report, err := New(nil).Advise(context.Background(), Request{
		NumDecks:     1,
		Players:      [][]deck.Rank{{deck.Ten, deck.Eight}},
		DealerUpcard: deck.Seven,
		Simulations:  100,
		History:      history,
		Seed:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.RunningCount)
	assert.InDelta(t, 4.0/(48.0/52.0), report.TrueCount, 1e-9)
}

func TestAdviseValidation(t *testing.T) {
	base := Request{
		NumDecks:     6,
		Players:      [][]deck.Rank{{deck.Ten, deck.Six}},
		DealerUpcard: deck.Ten,
		Simulations:  100,
	}

	t.Run("empty hand is below the table domain", func(t *testing.T) {
		req := base
		req.Players = [][]deck.Rank{{}}
		_, err := New(nil).Advise(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "player 1")
	})

	t.Run("invalid upcard", func(t *testing.T) {
		req := base
		req.DealerUpcard = 12
		_, err := New(nil).Advise(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("zero simulations", func(t *testing.T) {
		req := base
		req.Simulations = 0
		_, err := New(nil).Advise(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("zero decks", func(t *testing.T) {
		req := base
		req.NumDecks = 0
		_, err := New(nil).Advise(context.Background(), req)
		require.Error(t, err)
	})
}
