package game

import (
	"fmt"
	"strings"

	"github.com/edenlum/PokerLLM/internal/deck"
)

// Street is one of the four betting phases of a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"Preflop", "Flop", "Turn", "River"}[s]
}

// EventKind classifies entries in the hand's event log.
type EventKind int

const (
	// EventBlind records a forced blind post.
	EventBlind EventKind = iota
	// EventCommunity records community cards dealt before a street.
	EventCommunity
	// EventAction records a voluntary player action.
	EventAction
	// EventShowdown records a player's revealed ranking at showdown.
	EventShowdown
	// EventWin records a pot (or pot share) credited to a player.
	EventWin
)

// Event is one entry in the engine-owned append-only event log. The log
// is reset at the start of every hand and grows monotonically during
// it; observers receive each event exactly once, in order.
type Event struct {
	Street   Street
	Kind     EventKind
	Player   string
	Position Position
	Action   Action
	Amount   int
	Cards    []deck.Card
	Detail   string // showdown ranking or win description
}

// String renders the event the way the textual action history shows it,
// e.g. "Preflop - alice (SB) posts small blind 5".
func (e Event) String() string {
	switch e.Kind {
	case EventBlind:
		kind := "small"
		if e.Position == BigBlindPos {
			kind = "big"
		}
		return fmt.Sprintf("%s - %s (%s) posts %s blind %d", e.Street, e.Player, e.Position, kind, e.Amount)
	case EventCommunity:
		return fmt.Sprintf("%s - %s", e.Street, formatCards(e.Cards))
	case EventAction:
		switch e.Action {
		case Fold:
			return fmt.Sprintf("%s - %s (%s) folds", e.Street, e.Player, e.Position)
		case Check:
			return fmt.Sprintf("%s - %s (%s) checks", e.Street, e.Player, e.Position)
		case Call:
			return fmt.Sprintf("%s - %s (%s) calls %d", e.Street, e.Player, e.Position, e.Amount)
		default:
			return fmt.Sprintf("%s - %s (%s) %ss to %d", e.Street, e.Player, e.Position, e.Action, e.Amount)
		}
	case EventShowdown:
		return fmt.Sprintf("%s - %s (%s) shows %s", e.Street, e.Player, e.Position, e.Detail)
	case EventWin:
		return fmt.Sprintf("%s - %s wins %d%s", e.Street, e.Player, e.Amount, e.Detail)
	default:
		return fmt.Sprintf("%s - %s", e.Street, e.Detail)
	}
}

// Observer receives every event as it is appended to the hand log.
// Observers must not mutate game state.
type Observer interface {
	OnEvent(e Event)
}

// PlayerSnapshot is the read-only view of one seat.
type PlayerSnapshot struct {
	Name       string
	Stack      int
	CurrentBet int
	Folded     bool
	AllIn      bool
	Hole       []deck.Card
}

// Snapshot is a read-only view of game state, safe to retain: all
// slices are copies.
type Snapshot struct {
	Pot            int
	CommunityCards []deck.Card
	Players        []PlayerSnapshot
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
