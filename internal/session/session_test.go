package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenlum/PokerLLM/internal/agent"
	"github.com/edenlum/PokerLLM/internal/game"
	"github.com/edenlum/PokerLLM/internal/phh"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxHands = 10
	cfg.Seed = 42
	return cfg
}

// shoveAgent moves all-in at every opportunity.
func shoveAgent() game.Agent {
	return game.AgentFunc(func(req game.DecisionRequest) (game.Decision, error) {
		allIn := req.CurrentBet + req.Stack
		for _, a := range req.LegalActions {
			if a == game.Bet {
				return game.Decision{Action: game.Bet, Amount: allIn}, nil
			}
		}
		for _, a := range req.LegalActions {
			if a == game.Raise && allIn > req.AmountToCall {
				return game.Decision{Action: game.Raise, Amount: allIn}, nil
			}
		}
		for _, a := range req.LegalActions {
			if a == game.Call {
				return game.Decision{Action: game.Call}, nil
			}
		}
		return game.Decision{Action: game.Fold}, nil
	})
}

func TestSessionConservesChips(t *testing.T) {
	s, err := New(testConfig(), []Seat{
		{Name: "a", Agent: agent.NewCallBot()},
		{Name: "b", Agent: agent.NewCallBot()},
		{Name: "c", Agent: agent.NewCallBot()},
	}, nil)
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)

	assert.Len(t, res.Hands, 10)
	total := 0
	netTotal := 0
	for _, name := range []string{"a", "b", "c"} {
		total += res.FinalStacks[name]
		netTotal += res.NetChips[name]
	}
	assert.Equal(t, 3*testConfig().StartingStack, total)
	assert.Equal(t, 0, netTotal)
	assert.NotEmpty(t, res.ID)
}

func TestSessionIsDeterministic(t *testing.T) {
	run := func() *Result {
		s, err := New(testConfig(), []Seat{
			{Name: "a", Agent: agent.NewCallBot()},
			{Name: "b", Agent: agent.NewCallBot()},
		}, nil)
		require.NoError(t, err)
		res, err := s.Run()
		require.NoError(t, err)
		return res
	}

	r1, r2 := run(), run()
	assert.Equal(t, r1.FinalStacks, r2.FinalStacks)
	require.Equal(t, len(r1.Hands), len(r2.Hands))
	for i := range r1.Hands {
		assert.Equal(t, r1.Hands[i].Seed, r2.Hands[i].Seed)
		assert.Equal(t, r1.Hands[i].Winners, r2.Hands[i].Winners)
		assert.Equal(t, r1.Hands[i].Pot, r2.Hands[i].Pot)
	}
}

func TestSessionStopsWhenPlayerBusts(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHands = 50
	cfg.StartingStack = 100

	s, err := New(cfg, []Seat{
		{Name: "a", Agent: shoveAgent()},
		{Name: "b", Agent: shoveAgent()},
	}, nil)
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)

	require.NotEmpty(t, res.Busted, "two shoving players must produce a bust")
	assert.Less(t, len(res.Hands), cfg.MaxHands)
	assert.Equal(t, 0, res.FinalStacks[res.Busted])
	assert.Equal(t, 200, res.FinalStacks["a"]+res.FinalStacks["b"])
}

func TestSessionRejectsBadConfig(t *testing.T) {
	_, err := New(testConfig(), []Seat{{Name: "only", Agent: agent.NewCallBot()}}, nil)
	assert.Error(t, err)

	cfg := testConfig()
	cfg.MaxHands = 0
	_, err = New(cfg, []Seat{
		{Name: "a", Agent: agent.NewCallBot()},
		{Name: "b", Agent: agent.NewCallBot()},
	}, nil)
	assert.Error(t, err)
}

func TestDuplicatePairCancelsCardLuck(t *testing.T) {
	cfg := testConfig()
	dr, err := RunDuplicate(cfg,
		Seat{Name: "a", Agent: agent.NewCallBot()},
		Seat{Name: "b", Agent: agent.NewCallBot()},
		nil)
	require.NoError(t, err)

	// Identical strategies on both sides of the same deals must come
	// out exactly even once the seats are mirrored.
	assert.Equal(t, 0, dr.NetChips["a"])
	assert.Equal(t, 0, dr.NetChips["b"])

	// Both runs deal the same cards: hand seeds match pairwise.
	require.Equal(t, len(dr.Runs[0].Hands), len(dr.Runs[1].Hands))
	for i := range dr.Runs[0].Hands {
		assert.Equal(t, dr.Runs[0].Hands[i].Seed, dr.Runs[1].Hands[i].Seed)
	}
}

func TestBenchmarkRoundRobin(t *testing.T) {
	cfg := testConfig()
	cfg.MaxHands = 5

	callFactory := func() game.Agent { return agent.NewCallBot() }
	b, err := NewBenchmark(cfg, []Competitor{
		{Name: "a", NewAgent: callFactory},
		{Name: "b", NewAgent: callFactory},
		{Name: "c", NewAgent: callFactory},
	}, 2, nil)
	require.NoError(t, err)

	res, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Pairings, 3)
	require.Len(t, res.Standings, 3)

	totalNet := 0
	for _, s := range res.Standings {
		totalNet += s.NetChips
		assert.Equal(t, 20, s.Hands, "2 pairings x 2 runs x 5 hands each")
	}
	assert.Equal(t, 0, totalNet)

	// Equal scores rank alphabetically.
	assert.Equal(t, "a", res.Standings[0].Name)
	assert.Equal(t, "b", res.Standings[1].Name)
	assert.Equal(t, "c", res.Standings[2].Name)
}

func TestBenchmarkValidatesCompetitors(t *testing.T) {
	cfg := testConfig()
	callFactory := func() game.Agent { return agent.NewCallBot() }

	_, err := NewBenchmark(cfg, []Competitor{{Name: "solo", NewAgent: callFactory}}, 1, nil)
	assert.Error(t, err)

	_, err = NewBenchmark(cfg, []Competitor{
		{Name: "dup", NewAgent: callFactory},
		{Name: "dup", NewAgent: callFactory},
	}, 1, nil)
	assert.Error(t, err)

	_, err = NewBenchmark(cfg, []Competitor{
		{Name: "a", NewAgent: callFactory},
		{Name: "b", NewAgent: nil},
	}, 1, nil)
	assert.Error(t, err)
}

// capturingExporter records every hand it is asked to archive.
type capturingExporter struct {
	sessionIDs []string
	hands      []phh.Hand
	err        error
}

func (c *capturingExporter) ExportHand(sessionID string, h phh.Hand) error {
	c.sessionIDs = append(c.sessionIDs, sessionID)
	c.hands = append(c.hands, h)
	return c.err
}

func TestSessionExportsEveryHand(t *testing.T) {
	exp := &capturingExporter{}
	s, err := New(testConfig(), []Seat{
		{Name: "a", Agent: agent.NewCallBot()},
		{Name: "b", Agent: agent.NewCallBot()},
	}, nil, WithExporter(exp))
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)

	require.Len(t, exp.hands, len(res.Hands))
	for i, h := range exp.hands {
		assert.Equal(t, s.ID(), exp.sessionIDs[i])
		assert.Equal(t, i+1, h.Num)
		assert.Equal(t, fmt.Sprintf("%s-%d", s.ID(), i+1), h.ID)
		assert.Len(t, h.StartingStacks, 2)
		assert.NotEmpty(t, h.Events)
		assert.Equal(t, 10, h.BigBlind)
	}
	// The first hand starts from even stacks.
	assert.Equal(t, []int{1000, 1000}, exp.hands[0].StartingStacks)
}

func TestSessionExportFailureIsNotFatal(t *testing.T) {
	exp := &capturingExporter{err: errors.New("disk full")}
	s, err := New(testConfig(), []Seat{
		{Name: "a", Agent: agent.NewCallBot()},
		{Name: "b", Agent: agent.NewCallBot()},
	}, nil, WithExporter(exp))
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, res.Hands, 10)
}

func TestSessionTracksStatistics(t *testing.T) {
	s, err := New(testConfig(), []Seat{
		{Name: "a", Agent: agent.NewCallBot()},
		{Name: "b", Agent: agent.NewCallBot()},
	}, nil)
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)

	require.NotNil(t, res.Stats)
	assert.Equal(t, []string{"a", "b"}, res.Stats.Names())
	for _, name := range []string{"a", "b"} {
		ps := res.Stats.Player(name)
		require.NotNil(t, ps)
		assert.Equal(t, len(res.Hands), ps.Hands)
	}
	// Chip conservation holds in big blinds too.
	sum := 0.0
	for _, name := range res.Stats.Names() {
		sum += res.Stats.Player(name).Mean() * float64(res.Stats.Player(name).Hands)
	}
	assert.InDelta(t, 0, sum, 1e-9)
}
