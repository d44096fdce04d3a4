package agent

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edenlum/PokerLLM/internal/display"
	"github.com/edenlum/PokerLLM/internal/game"
)

// Console asks a human for decisions over a line-based terminal
// session. Input is parsed leniently ("raise 40", "Call", "f"); the
// Validating wrapper still has the final say on legality.
type Console struct {
	scanner  *bufio.Scanner
	renderer *display.Renderer
}

// NewConsole creates a console agent reading commands from in and
// rendering prompts to the given renderer.
func NewConsole(in io.Reader, renderer *display.Renderer) *Console {
	return &Console{
		scanner:  bufio.NewScanner(in),
		renderer: renderer,
	}
}

// Decide implements game.Agent.
func (c *Console) Decide(req game.DecisionRequest) (game.Decision, error) {
	c.renderer.Prompt(req.History)
	c.renderer.ActionsHint(req.LegalActions)

	for {
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return game.Decision{}, fmt.Errorf("read console input: %w", err)
			}
			return game.Decision{}, io.EOF
		}

		d, err := parseInput(c.scanner.Text())
		if err != nil {
			c.renderer.Error(err.Error())
			c.renderer.ActionsHint(req.LegalActions)
			continue
		}
		return d, nil
	}
}

func parseInput(line string) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("empty input")
	}

	name := expandShorthand(fields[0])
	action, err := game.ParseAction(name)
	if err != nil {
		return game.Decision{}, err
	}

	d := game.Decision{Action: action}
	if len(fields) > 1 {
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.Decision{}, fmt.Errorf("bad amount %q", fields[1])
		}
		d.Amount = amount
	}
	return d, nil
}

func expandShorthand(s string) string {
	switch s {
	case "f":
		return "fold"
	case "k":
		return "check"
	case "c":
		return "call"
	case "b":
		return "bet"
	case "r":
		return "raise"
	}
	return s
}
