// Package display renders game output for the interactive console. All
// rendering goes through a Renderer so the same code paths produce
// plain text when stdout is not a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/edenlum/PokerLLM/internal/deck"
	"github.com/edenlum/PokerLLM/internal/game"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Renderer writes styled game output to a single destination.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a renderer for out. Styling is enabled only when
// the environment reports a color-capable terminal.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:   out,
		color: termenv.EnvColorProfile() != termenv.Ascii,
	}
}

func (r *Renderer) render(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Prompt prints the decision prompt for the acting player, with card
// runs recolored by suit.
func (r *Renderer) Prompt(history string) {
	fmt.Fprintln(r.out)
	for _, line := range strings.Split(history, "\n") {
		fmt.Fprintln(r.out, r.colorizeCards(line))
	}
}

// HandHeader prints a banner at the start of a hand.
func (r *Renderer) HandHeader(handNum int) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.render(headerStyle, fmt.Sprintf("Hand #%d", handNum)))
}

// Event prints one engine event as it happens.
func (r *Renderer) Event(e game.Event) {
	line := e.String()
	switch e.Kind {
	case game.EventWin:
		fmt.Fprintln(r.out, r.render(winStyle, line))
	case game.EventCommunity:
		fmt.Fprintln(r.out, r.colorizeCards(line))
	default:
		fmt.Fprintln(r.out, r.render(dimStyle, line))
	}
}

// Error prints a rejected-input message during interactive play.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.out, r.render(errorStyle, msg))
}

// ActionsHint prints the legal action set as an input hint.
func (r *Renderer) ActionsHint(legal []game.Action) {
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	hint := fmt.Sprintf("> enter one of: %s (bet/raise take an amount, e.g. \"raise 40\")", strings.Join(names, ", "))
	fmt.Fprintln(r.out, r.render(actionsStyle, hint))
}

// Result prints the hand outcome summary.
func (r *Renderer) Result(res *game.HandResult) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wins %d", strings.Join(res.Winners, " and "), res.Pot)
	if res.Showdown {
		b.WriteString(" at showdown")
	}
	if len(res.Board) > 0 {
		fmt.Fprintf(&b, "  [board: %s]", formatCards(res.Board))
	}
	fmt.Fprintln(r.out, r.render(winStyle, r.colorizeCards(b.String())))
}

// colorizeCards restyles every card token in the line by suit color.
// Card tokens are a rank followed by a suit rune, e.g. "A♠" or "T♥".
func (r *Renderer) colorizeCards(line string) string {
	if !r.color {
		return line
	}
	var b strings.Builder
	runes := []rune(line)
	start := 0
	for i, ru := range runes {
		if !isSuitRune(ru) {
			continue
		}
		tokenStart := i
		for tokenStart > start && isRankRune(runes[tokenStart-1]) {
			tokenStart--
		}
		if tokenStart == i {
			continue
		}
		b.WriteString(string(runes[start:tokenStart]))
		token := string(runes[tokenStart : i+1])
		if ru == '♥' || ru == '♦' {
			b.WriteString(redCardStyle.Render(token))
		} else {
			b.WriteString(blackCardStyle.Render(token))
		}
		start = i + 1
	}
	b.WriteString(string(runes[start:]))
	return b.String()
}

func isSuitRune(r rune) bool {
	return r == '♠' || r == '♥' || r == '♦' || r == '♣'
}

func isRankRune(r rune) bool {
	return (r >= '2' && r <= '9') ||
		r == 'T' || r == 'J' || r == 'Q' || r == 'K' || r == 'A'
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
