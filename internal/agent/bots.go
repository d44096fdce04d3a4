package agent

import (
	"math/rand/v2"

	"github.com/edenlum/PokerLLM/internal/game"
	"github.com/edenlum/PokerLLM/internal/randutil"
)

// CallBot checks when nothing is owed, calls when it can afford to and
// folds otherwise. It never bets, which makes it a stable baseline
// opponent.
type CallBot struct{}

// NewCallBot returns the calling baseline bot.
func NewCallBot() CallBot { return CallBot{} }

// Decide implements game.Agent.
func (CallBot) Decide(req game.DecisionRequest) (game.Decision, error) {
	switch {
	case contains(req.LegalActions, game.Check):
		return game.Decision{Action: game.Check}, nil
	case contains(req.LegalActions, game.Call):
		return game.Decision{Action: game.Call}, nil
	default:
		return game.Decision{Action: game.Fold}, nil
	}
}

// RandBot picks a uniformly random legal action. Bet and raise sizes
// are drawn uniformly from the legal range. Seeded construction makes
// its play reproducible.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a random bot from a seed.
func NewRandBot(seed int64) *RandBot {
	return &RandBot{rng: randutil.New(seed)}
}

// Decide implements game.Agent.
func (b *RandBot) Decide(req game.DecisionRequest) (game.Decision, error) {
	action := req.LegalActions[b.rng.IntN(len(req.LegalActions))]

	switch action {
	case game.Bet:
		if req.AmountToCall > 0 {
			// The big blind's option offers bet while a blind is
			// already live; a bet cannot follow one, so check.
			return game.Decision{Action: game.Check}, nil
		}
		// Any positive total up to all-in.
		max := req.CurrentBet + req.Stack
		return game.Decision{Action: game.Bet, Amount: 1 + b.rng.IntN(max)}, nil

	case game.Raise:
		min := req.AmountToCall + 1
		max := req.CurrentBet + req.Stack
		if max < min {
			// Raise is offered but the stack cannot cover one; step
			// down to a call when affordable, else fold.
			if contains(req.LegalActions, game.Call) {
				return game.Decision{Action: game.Call}, nil
			}
			return game.Decision{Action: game.Fold}, nil
		}
		return game.Decision{Action: game.Raise, Amount: min + b.rng.IntN(max-min+1)}, nil

	default:
		return game.Decision{Action: action}, nil
	}
}

func contains(legal []game.Action, a game.Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
