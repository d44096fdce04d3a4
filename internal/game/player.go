package game

import (
	"fmt"

	"github.com/edenlum/PokerLLM/internal/deck"
)

// Player is the mutable per-seat record for a session. The stack
// persists across hands; everything else is reset between hands.
type Player struct {
	Name       string
	Stack      int
	Hole       []deck.Card
	CurrentBet int // chips committed this street
	Folded     bool
	AllIn      bool
}

// NewPlayer creates a player with a starting stack
func NewPlayer(name string, stack int) *Player {
	return &Player{Name: name, Stack: stack}
}

// ResetForNewHand clears per-hand state. The stack carries over.
func (p *Player) ResetForNewHand() {
	p.Hole = nil
	p.CurrentBet = 0
	p.Folded = false
	p.AllIn = false
}

// PlaceBet moves min(amount, stack) from the stack to the current bet
// and returns the chips actually moved. Reaching a stack of exactly
// zero is the sole all-in trigger.
func (p *Player) PlaceBet(amount int) int {
	bet := amount
	if bet > p.Stack {
		bet = p.Stack
	}
	p.Stack -= bet
	p.CurrentBet += bet
	if p.Stack == 0 {
		p.AllIn = true
	}
	return bet
}

// ValidateDecision checks a raw agent decision against the legal action
// set and the numeric betting constraints. A nil return means the
// engine can apply the decision without further checks.
func (p *Player) ValidateDecision(d Decision, legal []Action, amountToCall int) error {
	return validateDecision(d, legal, amountToCall, p.CurrentBet, p.Stack)
}

func validateDecision(d Decision, legal []Action, amountToCall, currentBet, stack int) error {
	if !d.Action.legalIn(legal) {
		return &IllegalActionError{Action: d.Action, Legal: legal}
	}

	switch d.Action {
	case Bet, Raise:
		if d.Amount <= 0 {
			return &UnexpectedAmountError{
				Action: d.Action,
				Amount: d.Amount,
				Reason: "amount must be positive",
			}
		}
		if d.Action == Raise && d.Amount <= amountToCall {
			return &UnexpectedAmountError{
				Action: d.Action,
				Amount: d.Amount,
				Reason: fmt.Sprintf("raise total must exceed the amount to call (%d)", amountToCall),
			}
		}
		required := d.Amount - currentBet
		if required > stack {
			return &InsufficientStackError{
				Action:   d.Action,
				Amount:   d.Amount,
				Required: required,
				Stack:    stack,
			}
		}
		if d.Action == Bet && amountToCall > 0 {
			return &WrongActionError{
				Action: Bet,
				Reason: "there is already a bet to call, use raise instead",
			}
		}

	case Call, Check, Fold:
		if d.Amount != 0 {
			return &UnexpectedAmountError{
				Action: d.Action,
				Amount: d.Amount,
				Reason: "action should not carry an amount",
			}
		}
	}

	return nil
}
