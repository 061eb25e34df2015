package game

import (
	"testing"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/randutil"
)

// Rigged shoes hold identical ranks so every draw is deterministic
// regardless of the RNG.

func TestDealerStandsOnHardSeventeen(t *testing.T) {
	shoe := deck.NewShoeOf(deck.Seven)
	rng := randutil.New(42)

	res := PlayRound(shoe, nil, deck.Ten, rng)

	if res.Hidden != deck.Seven {
		t.Fatalf("expected hidden card 7, got %s", res.Hidden)
	}
	if res.DealerTotal != 17 {
		t.Errorf("dealer should stand on hard 17, finished on %d", res.DealerTotal)
	}
	if res.InfiniteDraws != 0 {
		t.Errorf("dealer drew %d extra cards past hard 17", res.InfiniteDraws)
	}
}

func TestDealerHitsSoftSeventeen(t *testing.T) {
	// Upcard ace + hidden six is soft 17; the house must hit it. The shoe
	// is then empty, so any further draw is an infinite-deck fallback.
	shoe := deck.NewShoeOf(deck.Six)
	rng := randutil.New(42)

	res := PlayRound(shoe, nil, deck.Ace, rng)

	if res.InfiniteDraws < 1 {
		t.Error("dealer stood on soft 17; expected at least one more draw")
	}
}

func TestPlayerHitsToBust(t *testing.T) {
	// Hard 16 vs dealer ten is a Hit; the only cards left are tens.
	shoe := deck.NewShoeOf(deck.Ten, deck.Ten)
	rng := randutil.New(1)

	res := PlayRound(shoe, [][]deck.Rank{{deck.Ten, deck.Six}}, deck.Ten, rng)

	if len(res.Players) != 1 {
		t.Fatalf("expected 1 player result, got %d", len(res.Players))
	}
	if !res.Players[0].Busted || res.Players[0].Total != 26 {
		t.Errorf("expected bust on 26, got busted=%v total=%d", res.Players[0].Busted, res.Players[0].Total)
	}
	if res.DealerTotal != 20 {
		t.Errorf("expected dealer 20, got %d", res.DealerTotal)
	}
	if res.InfiniteDraws != 0 {
		t.Errorf("unexpected fallback draws: %d", res.InfiniteDraws)
	}
}

func TestDoubleDrawsExactlyOneCard(t *testing.T) {
	// Hard 11 vs dealer six doubles. Three tens: hidden, the double card,
	// and one dealer draw.
	shoe := deck.NewShoeOf(deck.Ten, deck.Ten, deck.Ten)
	rng := randutil.New(1)

	res := PlayRound(shoe, [][]deck.Rank{{deck.Five, deck.Six}}, deck.Six, rng)

	if res.Players[0].Total != 21 || res.Players[0].Busted {
		t.Errorf("expected 21 after the double card, got total=%d busted=%v",
			res.Players[0].Total, res.Players[0].Busted)
	}
	if res.DealerTotal != 26 {
		t.Errorf("expected dealer to bust on 26, got %d", res.DealerTotal)
	}
	if shoe.Remaining() != 0 {
		t.Errorf("expected all three cards consumed, %d left", shoe.Remaining())
	}
}

func TestMidLoopDoubleIsTerminalWithoutDrawing(t *testing.T) {
	// Hard 8 vs dealer five hits first; after drawing a two the table says
	// Double on 10, which mid-loop means stop without a second card.
	shoe := deck.NewShoeOf(deck.Two, deck.Two, deck.Two, deck.Two, deck.Two, deck.Two, deck.Two)
	rng := randutil.New(1)

	res := PlayRound(shoe, [][]deck.Rank{{deck.Three, deck.Five}}, deck.Five, rng)

	if res.Players[0].Total != 10 {
		t.Errorf("mid-loop double should stand on 10, got %d", res.Players[0].Total)
	}
	// Dealer runs 5+2 up to 17 on twos.
	if res.DealerTotal != 17 {
		t.Errorf("expected dealer 17, got %d", res.DealerTotal)
	}
}

func TestEmptyShoeFallsBackToInfiniteDeck(t *testing.T) {
	shoe := deck.NewShoeOf()
	rng := randutil.New(99)

	res := PlayRound(shoe, [][]deck.Rank{{deck.Two, deck.Three}}, deck.Ten, rng)

	if res.InfiniteDraws == 0 {
		t.Error("expected fallback draws on an empty shoe")
	}
	if res.DealerTotal < 17 {
		t.Errorf("dealer stopped early on %d", res.DealerTotal)
	}
	if !res.Hidden.Valid() {
		t.Errorf("fallback hidden card invalid: %d", int(res.Hidden))
	}
}

func TestMultiplePlayersShareTheShoe(t *testing.T) {
	// Two players and the dealer all draw from one pool of tens.
	shoe := deck.NewShoeOf(deck.Ten, deck.Ten, deck.Ten, deck.Ten)
	rng := randutil.New(5)

	res := PlayRound(shoe, [][]deck.Rank{
		{deck.Ten, deck.Six}, // hits, busts on a ten
		{deck.Ten, deck.Nine}, // stands on 19
	}, deck.Ten, rng)

	if !res.Players[0].Busted {
		t.Error("player 1 should bust hitting 16 into a ten")
	}
	if res.Players[1].Busted || res.Players[1].Total != 19 {
		t.Errorf("player 2 should stand on 19, got busted=%v total=%d",
			res.Players[1].Busted, res.Players[1].Total)
	}
	if res.DealerTotal != 20 {
		t.Errorf("expected dealer 20, got %d", res.DealerTotal)
	}
	// Hidden and player 1's hit consume two tens; the dealer stands on 20
	// without drawing.
	if res.InfiniteDraws != 0 {
		t.Errorf("unexpected fallback draws: %d", res.InfiniteDraws)
	}
	if shoe.Remaining() != 2 {
		t.Errorf("expected 2 cards left, got %d", shoe.Remaining())
	}
}
