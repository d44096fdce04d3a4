package agent

import (
	"fmt"

	"github.com/edenlum/PokerLLM/internal/game"
)

// Scripted replays a fixed decision sequence. Used to drive exact
// betting lines in tests and to replay recorded hands.
type Scripted struct {
	decisions []game.Decision
	next      int
}

// NewScripted builds an agent that answers with the given decisions in
// order and errors once they run out.
func NewScripted(decisions ...game.Decision) *Scripted {
	return &Scripted{decisions: decisions}
}

// Decide implements game.Agent.
func (s *Scripted) Decide(game.DecisionRequest) (game.Decision, error) {
	if s.next >= len(s.decisions) {
		return game.Decision{}, fmt.Errorf("script exhausted after %d decisions", len(s.decisions))
	}
	d := s.decisions[s.next]
	s.next++
	return d, nil
}

// Used reports how many decisions have been consumed.
func (s *Scripted) Used() int { return s.next }
