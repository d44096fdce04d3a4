package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edenlum/PokerLLM/internal/game"
)

func addChipResult(t *Tracker, net map[string]int) {
	t.AddHand(nil, net, &game.HandResult{})
}

func TestMeanAndVariance(t *testing.T) {
	tr := NewTracker(10)

	// Results in BB: +2, -1, +5 for alice.
	addChipResult(tr, map[string]int{"alice": 20})
	addChipResult(tr, map[string]int{"alice": -10})
	addChipResult(tr, map[string]int{"alice": 50})

	s := tr.Player("alice")
	assert.Equal(t, 3, s.Hands)
	assert.InDelta(t, 2.0, s.Mean(), 1e-9)
	assert.InDelta(t, 9.0, s.Variance(), 1e-9, "sample variance of 2,-1,5")
	assert.InDelta(t, 3.0, s.StdDev(), 1e-9)
	assert.InDelta(t, 3.0/math.Sqrt(3), s.StdError(), 1e-9)

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, s.Mean())
	assert.Greater(t, hi, s.Mean())
}

func TestZeroAndSingleHandEdges(t *testing.T) {
	tr := NewTracker(10)
	assert.Nil(t, tr.Player("ghost"))

	addChipResult(tr, map[string]int{"bob": 30})
	s := tr.Player("bob")
	assert.Equal(t, 0.0, s.Variance(), "variance needs at least 2 hands")
	assert.InDelta(t, 3.0, s.Mean(), 1e-9)
}

func TestPlayStyleCounters(t *testing.T) {
	tr := NewTracker(10)

	events := []game.Event{
		{Street: game.Preflop, Kind: game.EventBlind, Player: "sb", Amount: 5},
		{Street: game.Preflop, Kind: game.EventAction, Player: "alice", Action: game.Raise, Amount: 30},
		{Street: game.Preflop, Kind: game.EventAction, Player: "bob", Action: game.Call, Amount: 30},
		{Street: game.Flop, Kind: game.EventAction, Player: "alice", Action: game.Bet, Amount: 40},
		{Street: game.Flop, Kind: game.EventAction, Player: "bob", Action: game.Fold},
	}
	tr.AddHand(events, map[string]int{"alice": 40, "bob": -40}, &game.HandResult{
		Winners: []string{"alice"},
	})

	alice := tr.Player("alice")
	assert.Equal(t, 1, alice.VPIPHands)
	assert.Equal(t, 2, alice.Raises)
	assert.Equal(t, 0, alice.Calls)
	assert.Equal(t, 1, alice.WalkoverWins)
	assert.Equal(t, 0, alice.ShowdownWins)
	assert.InDelta(t, 2.0, alice.AggressionFactor(), 1e-9, "no calls reports raw raise count")

	bob := tr.Player("bob")
	assert.Equal(t, 1, bob.VPIPHands)
	assert.Equal(t, 1, bob.Calls)
	assert.InDelta(t, 1.0, bob.VPIP(), 1e-9)
}

func TestShowdownAttribution(t *testing.T) {
	tr := NewTracker(10)

	events := []game.Event{
		{Street: game.River, Kind: game.EventShowdown, Player: "alice"},
		{Street: game.River, Kind: game.EventShowdown, Player: "bob"},
	}
	tr.AddHand(events, map[string]int{"alice": 50, "bob": -50}, &game.HandResult{
		Winners:  []string{"alice"},
		Showdown: true,
	})

	assert.Equal(t, 1, tr.Player("alice").ShowdownWins)
	assert.Equal(t, 1, tr.Player("alice").Showdowns)
	assert.Equal(t, 1, tr.Player("bob").Showdowns)
	assert.Equal(t, 0, tr.Player("bob").ShowdownWins)
}

func TestNamesSorted(t *testing.T) {
	tr := NewTracker(10)
	addChipResult(tr, map[string]int{"zeta": 1, "alpha": -1})
	assert.Equal(t, []string{"alpha", "zeta"}, tr.Names())
}
