package agent

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/edenlum/PokerLLM/internal/game"
)

// DefaultMaxAttempts is how many times Validating asks the wrapped
// source before substituting a fallback decision.
const DefaultMaxAttempts = 5

// Validating wraps a decision source that may answer illegally. Each
// rejected answer is retried with the rejection reason appended to the
// prompt; when every attempt fails the wrapper substitutes a safe
// decision (check when legal, otherwise fold) and marks it as a
// fallback so callers can discount the hand.
type Validating struct {
	inner    game.Agent
	logger   *log.Logger
	attempts int
}

// NewValidating wraps inner with validation and retry.
func NewValidating(inner game.Agent, logger *log.Logger) *Validating {
	return &Validating{
		inner:    inner,
		logger:   logger.WithPrefix("validate"),
		attempts: DefaultMaxAttempts,
	}
}

// Decide implements game.Agent. It never returns a validation error:
// the result is either a legal decision from the wrapped source, the
// fallback, or io.EOF when the source's input ended.
func (v *Validating) Decide(req game.DecisionRequest) (game.Decision, error) {
	attempt := req
	for i := 0; i < v.attempts; i++ {
		d, err := v.inner.Decide(attempt)
		if err != nil {
			// Input ending is not a bad answer: let the caller stop.
			if errors.Is(err, io.EOF) {
				return game.Decision{}, err
			}
			v.logger.Warn("decision source failed", "attempt", i+1, "error", err)
			attempt = withRejection(req, err.Error())
			continue
		}
		if err := req.Validate(d); err != nil {
			v.logger.Warn("illegal decision",
				"attempt", i+1,
				"action", d.Action,
				"amount", d.Amount,
				"error", err)
			attempt = withRejection(req, err.Error())
			continue
		}
		return d, nil
	}

	fb := fallbackDecision(req)
	v.logger.Warn("all attempts rejected, substituting fallback", "action", fb.Action)
	return fb, nil
}

// withRejection re-issues the request with the rejection reason so a
// model (or human) sees why the previous answer was refused.
func withRejection(req game.DecisionRequest, reason string) game.DecisionRequest {
	r := req
	r.History = fmt.Sprintf("%s\n\nYour previous answer was rejected: %s.\nAnswer again with one of the legal actions.", req.History, reason)
	return r
}

func fallbackDecision(req game.DecisionRequest) game.Decision {
	for _, a := range req.LegalActions {
		if a == game.Check {
			return game.Decision{Action: game.Check, Fallback: true}
		}
	}
	return game.Decision{Action: game.Fold, Fallback: true}
}
