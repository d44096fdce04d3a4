// Package phh exports played hands in the Poker Hand History (PHH)
// format, a TOML-based interchange format readable by common poker
// tooling. One hand maps to one .phh file.
package phh

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/edenlum/PokerLLM/internal/deck"
	"github.com/edenlum/PokerLLM/internal/game"
)

// HandHistory is a single hand in PHH TOML form.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
}

// Hand is everything the exporter needs about one completed hand.
type Hand struct {
	ID             string
	Num            int
	Time           time.Time
	SmallBlind     int
	BigBlind       int
	StartingStacks []int // seat order, before blinds
	Events         []game.Event
	Snapshot       game.Snapshot
}

// FromHand converts a completed hand into its PHH representation.
func FromHand(h Hand) (*HandHistory, error) {
	n := len(h.Snapshot.Players)
	if n == 0 {
		return nil, fmt.Errorf("phh: hand has no players")
	}
	if len(h.StartingStacks) != n {
		return nil, fmt.Errorf("phh: %d starting stacks for %d players", len(h.StartingStacks), n)
	}

	seatOf := make(map[string]int, n)
	players := make([]string, n)
	finishing := make([]int, n)
	for i, p := range h.Snapshot.Players {
		seatOf[p.Name] = i
		players[i] = p.Name
		finishing[i] = p.Stack
	}

	out := &HandHistory{
		Variant:           "NT",
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            h.BigBlind,
		StartingStacks:    h.StartingStacks,
		FinishingStacks:   finishing,
		Players:           players,
		HandID:            h.ID,
		Time:              h.Time.UTC().Format(time.RFC3339),
	}

	// Hole cards are dealt before any voluntary action.
	for i, p := range h.Snapshot.Players {
		out.Actions = append(out.Actions,
			fmt.Sprintf("d dh p%d %s", i+1, cardString(p.Hole)))
	}

	for _, e := range h.Events {
		switch e.Kind {
		case game.EventBlind:
			out.BlindsOrStraddles[seatOf[e.Player]] = e.Amount

		case game.EventCommunity:
			out.Actions = append(out.Actions, "d db "+cardString(e.Cards))

		case game.EventAction:
			if a, ok := formatAction(seatOf[e.Player], e); ok {
				out.Actions = append(out.Actions, a)
			}

		case game.EventShowdown:
			out.Actions = append(out.Actions,
				fmt.Sprintf("p%d sm %s", seatOf[e.Player]+1, cardString(e.Cards)))
		}
	}

	return out, nil
}

// Encode writes the hand history as PHH TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// formatAction converts one engine action event to a PHH action
// string. Folds and checks/calls collapse the way PHH expects; bets
// and raises both become "cbr" with the total committed this street.
func formatAction(seat int, e game.Event) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch e.Action {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise:
		if e.Amount <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, e.Amount), true
	}
	return "", false
}

// cardString renders cards in PHH notation: rank then lowercase suit
// letter, concatenated, e.g. "AsKh".
func cardString(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Rank.String())
		b.WriteByte(suitLetter(c.Suit))
	}
	return b.String()
}

func suitLetter(s deck.Suit) byte {
	switch s {
	case deck.Spades:
		return 's'
	case deck.Hearts:
		return 'h'
	case deck.Diamonds:
		return 'd'
	case deck.Clubs:
		return 'c'
	}
	return '?'
}
