package hand

import (
	"testing"

	"github.com/lox/blackjack-cli/internal/deck"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		soft      bool
		card      deck.Rank
		wantTotal int
		wantSoft  bool
	}{
		{"number card", 10, false, deck.Six, 16, false},
		{"ace counts as 11 when safe", 5, false, deck.Ace, 16, true},
		{"ace counts as 11 on empty hand", 0, false, deck.Ace, 11, true},
		{"ace counts as 1 when 11 busts", 15, false, deck.Ace, 16, false},
		{"soft hand converts instead of busting", 17, true, deck.Ten, 17, false},
		{"hard hand busts", 17, false, deck.Ten, 27, false},
		{"soft stays soft under 21", 13, true, deck.Five, 18, true},
		{"second ace adds one to a soft hand", 16, true, deck.Ace, 17, true},
		{"exactly 21 with ace", 10, false, deck.Ace, 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, soft := Apply(tt.total, tt.soft, tt.card)
			if total != tt.wantTotal || soft != tt.wantSoft {
				t.Errorf("Apply(%d, %v, %s) = (%d, %v), want (%d, %v)",
					tt.total, tt.soft, tt.card, total, soft, tt.wantTotal, tt.wantSoft)
			}
		})
	}
}

func TestApplyNeverBelowFaceValue(t *testing.T) {
	// A freshly applied card always contributes at least 1.
	for total := 0; total <= 21; total++ {
		for r := deck.Two; r <= deck.Ace; r++ {
			got, _ := Apply(total, false, r)
			if got <= total {
				t.Fatalf("Apply(%d, false, %s) did not increase the total: %d", total, r, got)
			}
			if got < 0 {
				t.Fatalf("Apply(%d, false, %s) returned negative total %d", total, r, got)
			}
		}
	}
}

func TestNewHand(t *testing.T) {
	tests := []struct {
		cards  []deck.Rank
		total  int
		soft   bool
		busted bool
	}{
		{[]deck.Rank{deck.Ten, deck.Six}, 16, false, false},
		{[]deck.Rank{deck.Ace, deck.Six}, 17, true, false},
		{[]deck.Rank{deck.Ace, deck.Ace}, 12, true, false},
		{[]deck.Rank{deck.Ace, deck.Ten}, 21, true, false},
		{[]deck.Rank{deck.Ten, deck.Nine, deck.Five}, 24, false, true},
		{[]deck.Rank{deck.Ace, deck.Six, deck.Ten}, 17, false, false},
	}

	for _, tt := range tests {
		h := New(tt.cards...)
		if h.Total != tt.total || h.Soft != tt.soft || h.Busted() != tt.busted {
			t.Errorf("New(%v) = total %d soft %v busted %v, want %d %v %v",
				tt.cards, h.Total, h.Soft, h.Busted(), tt.total, tt.soft, tt.busted)
		}
	}
}

func TestAddChainsWithOwnOutput(t *testing.T) {
	h := New()
	for _, c := range []deck.Rank{deck.Ace, deck.Five, deck.Ten} {
		h.Add(c)
	}
	// A,5 is soft 16; the ten converts it to hard 16.
	if h.Total != 16 || h.Soft {
		t.Errorf("expected hard 16, got total %d soft %v", h.Total, h.Soft)
	}
	if len(h.Cards) != 3 {
		t.Errorf("expected 3 cards recorded, got %d", len(h.Cards))
	}
}
