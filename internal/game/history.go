package game

import (
	"fmt"
	"strings"
)

// buildHistory renders the textual game history handed to agents with a
// decision request. Events are grouped by street, community cards are
// folded into the street heading, and the acting player's own actions
// are rewritten in second person. The text ends with the decision data
// the agent needs: pot, net amount to call, current bet, stack, and the
// legal action set.
func (g *Game) buildHistory(p *Player, legal []Action, amountToCall int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Players: %d\n", len(g.players))
	fmt.Fprintf(&b, "Blinds: %d/%d\n", g.smallBlind, g.bigBlind)
	fmt.Fprintf(&b, "Your position: %s\n", PositionOf(g.seatOf(p), g.bbPos, len(g.players)))
	fmt.Fprintf(&b, "Your hand: %s\n\n", formatCards(p.Hole))

	var currentStreet Street = -1
	for _, e := range g.events {
		switch e.Kind {
		case EventCommunity:
			// Community cards open the street heading.
			if currentStreet >= 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s: %s\n", e.Street, formatCards(e.Cards))
			currentStreet = e.Street

		case EventBlind, EventAction:
			if e.Street != currentStreet {
				if currentStreet >= 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "%s:\n", e.Street)
				currentStreet = e.Street
			}
			line := strings.TrimPrefix(e.String(), fmt.Sprintf("%s - ", e.Street))
			if e.Player == p.Name {
				line = strings.Replace(line, fmt.Sprintf("%s (", p.Name), "You (", 1)
			}
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total pot: %d\n", g.pot)
	if net := amountToCall - p.CurrentBet; net > 0 {
		fmt.Fprintf(&b, "Amount to call: %d\n", net)
	}
	if p.CurrentBet > 0 {
		fmt.Fprintf(&b, "Your current bet: %d\n", p.CurrentBet)
	}
	fmt.Fprintf(&b, "Your stack: %d\n", p.Stack)

	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	fmt.Fprintf(&b, "Legal actions: %s\n", strings.Join(names, ", "))
	b.WriteString("\nWhat is your action?")

	return b.String()
}
