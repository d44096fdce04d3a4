package game

import "fmt"

// Action represents a player action. The set is closed: amounts only
// accompany Bet and Raise, so malformed combinations are caught by
// numeric validation rather than string matching.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// ParseAction converts an action name to an Action. Used by decision
// sources that receive actions as text (console input, model replies).
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Decision is a concrete (action, amount) pair returned by an agent.
// For Bet and Raise the amount is the new total committed this street.
// Fallback marks decisions substituted by the validation layer after an
// agent repeatedly failed to produce a legal move.
type Decision struct {
	Action   Action
	Amount   int
	Fallback bool
}

// DecisionRequest is everything the engine hands to an agent when it is
// that player's turn to act.
type DecisionRequest struct {
	// History is the textual game history from the acting player's
	// perspective, ending with the decision data (pot, amount to call,
	// stack, legal actions).
	History string

	// LegalActions is the ordered set of actions the player may take.
	LegalActions []Action

	// AmountToCall is the total bet the player must match this street.
	AmountToCall int

	// CurrentBet and Stack mirror the acting player's state so decision
	// sources can pre-validate before answering.
	CurrentBet int
	Stack      int
}

// Validate checks a candidate decision against this request. It applies
// the same rules the engine applies, so a decision that passes here is
// guaranteed to be accepted.
func (r DecisionRequest) Validate(d Decision) error {
	return validateDecision(d, r.LegalActions, r.AmountToCall, r.CurrentBet, r.Stack)
}

// Agent supplies decisions for a seat. Implementations block until a
// decision is available; any timeout or retry policy lives inside the
// agent, never in the engine.
type Agent interface {
	Decide(req DecisionRequest) (Decision, error)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(req DecisionRequest) (Decision, error)

// Decide implements Agent.
func (f AgentFunc) Decide(req DecisionRequest) (Decision, error) {
	return f(req)
}

// legalIn reports whether a is a member of the legal action set.
func (a Action) legalIn(legal []Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
