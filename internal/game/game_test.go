package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenlum/PokerLLM/internal/deck"
)

// script replays a fixed decision sequence; tests drive exact betting
// lines with it.
type script struct {
	decisions []Decision
	used      int
}

func (s *script) Decide(req DecisionRequest) (Decision, error) {
	d := s.decisions[s.used]
	s.used++
	return d, nil
}

// checkCallAgent checks when possible, calls when affordable, folds
// otherwise.
func checkCallAgent() Agent {
	return AgentFunc(func(req DecisionRequest) (Decision, error) {
		if Check.legalIn(req.LegalActions) {
			return Decision{Action: Check}, nil
		}
		if Call.legalIn(req.LegalActions) {
			return Decision{Action: Call}, nil
		}
		return Decision{Action: Fold}, nil
	})
}

func TestWalkoverAwardsBlindsToBigBlind(t *testing.T) {
	foldAgent := AgentFunc(func(req DecisionRequest) (Decision, error) {
		return Decision{Action: Fold}, nil
	})

	// First hand rotates the big blind onto seat 0.
	g, err := New([]Seat{
		{Name: "a", Stack: 1000, Agent: checkCallAgent()},
		{Name: "b", Stack: 1000, Agent: foldAgent},
		{Name: "c", Stack: 1000, Agent: foldAgent},
	})
	require.NoError(t, err)

	res, err := g.RunHand(WithShuffleSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, res.Winners)
	assert.Equal(t, 15, res.Pot, "pot should be the two blinds")
	assert.False(t, res.Showdown)

	snap := g.Snapshot()
	assert.Equal(t, 1005, snap.Players[0].Stack, "BB keeps blinds minus own post")
	assert.Equal(t, 1000, snap.Players[1].Stack, "button never put chips in")
	assert.Equal(t, 995, snap.Players[2].Stack, "SB loses the small blind")
	assert.Equal(t, 0, snap.Pot)
}

func TestRaiseReopensAction(t *testing.T) {
	// Three-handed, BB lands on seat 0, so b holds the button and c
	// the small blind. Preflop all three see the flop for one blind.
	// On the flop c checks and a bets, then b raises: both c and a
	// already acted this street and must act again before it ends.
	a := &script{decisions: []Decision{
		{Action: Check},
		{Action: Bet, Amount: 20}, {Action: Call},
		{Action: Check}, {Action: Check},
	}}
	b := &script{decisions: []Decision{
		{Action: Call},
		{Action: Raise, Amount: 60},
		{Action: Check}, {Action: Check},
	}}
	c := &script{decisions: []Decision{
		{Action: Call},
		{Action: Check}, {Action: Fold},
	}}

	g, err := New([]Seat{
		{Name: "a", Stack: 1000, Agent: a},
		{Name: "b", Stack: 1000, Agent: b},
		{Name: "c", Stack: 1000, Agent: c},
	})
	require.NoError(t, err)

	res, err := g.RunHand(WithShuffleSeed(7))
	require.NoError(t, err)

	assert.Equal(t, 5, a.used, "a acts twice on the flop after the raise")
	assert.Equal(t, 3, c.used, "c checks, then must respond to the raise")
	assert.Equal(t, 4, b.used)

	assert.True(t, res.Showdown)
	assert.Equal(t, 150, res.Pot, "30 preflop, 60 each from a and b on the flop")

	shows := 0
	for _, e := range g.Events() {
		if e.Kind == EventShowdown {
			shows++
		}
	}
	assert.Equal(t, 2, shows, "only a and b reach showdown")

	snap := g.Snapshot()
	total := 0
	for _, p := range snap.Players {
		total += p.Stack
	}
	assert.Equal(t, 3000, total, "chips conserved")
}

func TestAllInCallIsClampedAndSkipped(t *testing.T) {
	// Heads-up, BB on seat 0 with the short stack. The button raises
	// to exactly the short stack's total so the call puts it all-in;
	// the all-in seat never acts again while the hand runs to
	// showdown.
	short := &script{decisions: []Decision{{Action: Call}}}
	big := &script{decisions: []Decision{
		{Action: Raise, Amount: 100},
		{Action: Check}, {Action: Check}, {Action: Check},
	}}

	g, err := New([]Seat{
		{Name: "short", Stack: 100, Agent: short},
		{Name: "big", Stack: 1000, Agent: big},
	})
	require.NoError(t, err)

	res, err := g.RunHand(WithShuffleSeed(3))
	require.NoError(t, err)

	assert.Equal(t, 1, short.used, "all-in player acts exactly once")
	assert.Equal(t, 4, big.used, "live player still acts on every street")
	assert.True(t, res.Showdown)
	assert.Equal(t, 200, res.Pot)

	snap := g.Snapshot()
	total := 0
	for _, p := range snap.Players {
		total += p.Stack
	}
	assert.Equal(t, 1100, total)
}

func TestChipConservationOverManyHands(t *testing.T) {
	g, err := New([]Seat{
		{Name: "a", Stack: 1000, Agent: checkCallAgent()},
		{Name: "b", Stack: 1000, Agent: checkCallAgent()},
		{Name: "c", Stack: 1000, Agent: checkCallAgent()},
	})
	require.NoError(t, err)

	for hand := 0; hand < 20; hand++ {
		_, err := g.RunHand(WithShuffleSeed(int64(hand)))
		require.NoError(t, err, "hand %d", hand)

		snap := g.Snapshot()
		total := 0
		for _, p := range snap.Players {
			total += p.Stack
		}
		assert.Equal(t, 3000, total, "hand %d leaked chips", hand)
		assert.Equal(t, 0, snap.Pot, "hand %d left chips in the pot", hand)
	}
}

func TestBigBlindGetsOption(t *testing.T) {
	// Heads-up limp: the button completes, then the BB must be offered
	// check/bet rather than the street ending.
	var bbLegal []Action
	bb := AgentFunc(func(req DecisionRequest) (Decision, error) {
		if bbLegal == nil {
			bbLegal = append([]Action(nil), req.LegalActions...)
		}
		return Decision{Action: Check}, nil
	})
	button := &script{decisions: []Decision{
		{Action: Call},
		{Action: Check}, {Action: Check}, {Action: Check},
	}}

	g, err := New([]Seat{
		{Name: "bb", Stack: 1000, Agent: bb},
		{Name: "btn", Stack: 1000, Agent: button},
	})
	require.NoError(t, err)

	_, err = g.RunHand(WithShuffleSeed(11))
	require.NoError(t, err)

	require.NotNil(t, bbLegal, "big blind was never asked to act")
	assert.Equal(t, []Action{Check, Bet}, bbLegal, "BB option is check or bet, not a call")
}

func TestBigBlindRotates(t *testing.T) {
	g, err := New([]Seat{
		{Name: "a", Stack: 1000, Agent: checkCallAgent()},
		{Name: "b", Stack: 1000, Agent: checkCallAgent()},
		{Name: "c", Stack: 1000, Agent: checkCallAgent()},
	})
	require.NoError(t, err)

	seen := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		_, err := g.RunHand(WithShuffleSeed(int64(i)))
		require.NoError(t, err)
		seen = append(seen, g.BigBlindSeat())
	}
	assert.Equal(t, []int{0, 1, 2}, seen, "big blind rotates one seat per hand")
}

func TestSplitPotRemainderGoesToFirstSeat(t *testing.T) {
	// Identical two-card holdings rank-wise: the board plays for both,
	// forcing an exact tie. The odd chip goes to the earliest tied
	// winner in seat order.
	g, err := New([]Seat{
		{Name: "alice", Stack: 0, Agent: checkCallAgent()},
		{Name: "bob", Stack: 0, Agent: checkCallAgent()},
	})
	require.NoError(t, err)

	g.players[0].Hole = []deck.Card{
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.Three),
	}
	g.players[1].Hole = []deck.Card{
		deck.NewCard(deck.Clubs, deck.Two),
		deck.NewCard(deck.Diamonds, deck.Three),
	}
	g.community = []deck.Card{
		deck.NewCard(deck.Spades, deck.Ace),
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Diamonds, deck.Queen),
		deck.NewCard(deck.Clubs, deck.Jack),
		deck.NewCard(deck.Spades, deck.Nine),
	}
	g.pot = 25

	res := &HandResult{}
	require.NoError(t, g.showdown(res))

	assert.Equal(t, []string{"alice", "bob"}, res.Winners)
	assert.Equal(t, 13, g.players[0].Stack, "first seat takes the odd chip")
	assert.Equal(t, 12, g.players[1].Stack)
	assert.Equal(t, 0, g.pot)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() ([]string, []int) {
		g, err := New([]Seat{
			{Name: "a", Stack: 1000, Agent: checkCallAgent()},
			{Name: "b", Stack: 1000, Agent: checkCallAgent()},
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := g.RunHand(WithShuffleSeed(99)); err != nil {
			t.Fatal(err)
		}

		var lines []string
		for _, e := range g.Events() {
			lines = append(lines, e.String())
		}
		var stacks []int
		for _, p := range g.Snapshot().Players {
			stacks = append(stacks, p.Stack)
		}
		return lines, stacks
	}

	lines1, stacks1 := run()
	lines2, stacks2 := run()
	assert.Equal(t, lines1, lines2, "identical seed and decisions must replay identically")
	assert.Equal(t, stacks1, stacks2)
}

func TestInvalidDecisionReachingEngineIsFatal(t *testing.T) {
	bad := AgentFunc(func(req DecisionRequest) (Decision, error) {
		return Decision{Action: Check, Amount: 50}, nil
	})
	g, err := New([]Seat{
		{Name: "a", Stack: 1000, Agent: bad},
		{Name: "b", Stack: 1000, Agent: bad},
	})
	require.NoError(t, err)

	_, err = g.RunHand(WithShuffleSeed(5))
	require.Error(t, err, "unvalidated decision must abort the hand")
}
