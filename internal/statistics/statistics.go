// Package statistics aggregates per-player results across the hands of
// a session: winrate in big blinds per hand with confidence bounds,
// plus simple play-style measures.
package statistics

import (
	"math"
	"sort"

	"github.com/edenlum/PokerLLM/internal/game"
)

// PlayerStats accumulates one player's per-hand results.
type PlayerStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64 // sum of squares for variance

	ShowdownWins int
	WalkoverWins int
	Showdowns    int

	// Play-style counters.
	VPIPHands int // hands with voluntary preflop chips
	Raises    int // bets and raises across all streets
	Calls     int
}

// Mean returns the average result in big blinds per hand.
func (s *PlayerStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of the per-hand results.
func (s *PlayerStats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation.
func (s *PlayerStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *PlayerStats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean winrate.
func (s *PlayerStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// VPIP returns the fraction of hands with voluntary preflop chips.
func (s *PlayerStats) VPIP() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.VPIPHands) / float64(s.Hands)
}

// AggressionFactor returns (bets+raises)/calls. Infinite aggression
// (no calls) is reported as the raw raise count.
func (s *PlayerStats) AggressionFactor() float64 {
	if s.Calls == 0 {
		return float64(s.Raises)
	}
	return float64(s.Raises) / float64(s.Calls)
}

// Tracker derives per-player statistics from hand event logs.
type Tracker struct {
	bigBlind int
	players  map[string]*PlayerStats
}

// NewTracker creates a tracker; bigBlind scales chip results into big
// blinds.
func NewTracker(bigBlind int) *Tracker {
	return &Tracker{
		bigBlind: bigBlind,
		players:  make(map[string]*PlayerStats),
	}
}

// AddHand incorporates one completed hand: its event log, the chip
// delta per player, and the result.
func (t *Tracker) AddHand(events []game.Event, netChips map[string]int, res *game.HandResult) {
	for name, net := range netChips {
		s := t.player(name)
		bb := float64(net) / float64(t.bigBlind)
		s.Hands++
		s.SumBB += bb
		s.SumBB2 += bb * bb
	}

	vpip := make(map[string]bool)
	for _, e := range events {
		switch e.Kind {
		case game.EventAction:
			switch e.Action {
			case game.Call:
				t.player(e.Player).Calls++
				if e.Street == game.Preflop {
					vpip[e.Player] = true
				}
			case game.Bet, game.Raise:
				t.player(e.Player).Raises++
				if e.Street == game.Preflop {
					vpip[e.Player] = true
				}
			}
		case game.EventShowdown:
			t.player(e.Player).Showdowns++
		}
	}
	for name := range vpip {
		t.player(name).VPIPHands++
	}

	for _, winner := range res.Winners {
		if res.Showdown {
			t.player(winner).ShowdownWins++
		} else {
			t.player(winner).WalkoverWins++
		}
	}
}

// Player returns the stats for one player, or nil if never seen.
func (t *Tracker) Player(name string) *PlayerStats {
	return t.players[name]
}

// Names returns all tracked player names in sorted order.
func (t *Tracker) Names() []string {
	names := make([]string, 0, len(t.players))
	for name := range t.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Tracker) player(name string) *PlayerStats {
	s, ok := t.players[name]
	if !ok {
		s = &PlayerStats{}
		t.players[name] = s
	}
	return s
}
