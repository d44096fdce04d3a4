package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edenlum/PokerLLM/internal/game"
)

func plainRenderer(out *bytes.Buffer) *Renderer {
	return &Renderer{out: out, color: false}
}

func colorRenderer(out *bytes.Buffer) *Renderer {
	return &Renderer{out: out, color: true}
}

func TestPromptPlainOutputIsUnmodified(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out)

	r.Prompt("Your hand: A♠, K♥\n\nWhat is your action?")

	assert.Contains(t, out.String(), "Your hand: A♠, K♥")
	assert.NotContains(t, out.String(), "\x1b[", "plain mode must not emit escape codes")
}

func TestColorizeCardsTargetsOnlyCardTokens(t *testing.T) {
	var out bytes.Buffer
	r := colorRenderer(&out)

	line := r.colorizeCards("alice shows A♠, T♥ and wins")
	assert.Contains(t, line, "alice shows ")
	assert.Contains(t, line, " and wins")

	// Both tokens restyled, hearts and spades differently.
	spade := strings.Index(line, "A♠")
	heart := strings.Index(line, "T♥")
	assert.NotEqual(t, -1, spade)
	assert.NotEqual(t, -1, heart)
}

func TestColorizeCardsLeavesBareSuitAlone(t *testing.T) {
	var out bytes.Buffer
	r := colorRenderer(&out)

	// A suit rune with no rank before it is not a card token.
	line := r.colorizeCards("suit ♠ alone")
	assert.Equal(t, "suit ♠ alone", line)
}

func TestResultSummary(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out)

	r.Result(&game.HandResult{
		Winners:  []string{"alice", "bob"},
		Pot:      120,
		Showdown: true,
	})

	assert.Contains(t, out.String(), "alice and bob wins 120 at showdown")
}

func TestActionsHint(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out)

	r.ActionsHint([]game.Action{game.Fold, game.Call, game.Raise})
	assert.Contains(t, out.String(), "fold, call, raise")
}
