package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/edenlum/PokerLLM/internal/agent"
	"github.com/edenlum/PokerLLM/internal/config"
	"github.com/edenlum/PokerLLM/internal/display"
	"github.com/edenlum/PokerLLM/internal/game"
)

// PlayCmd seats a human at a console table.
type PlayCmd struct {
	Name       string `kong:"default='you',help='Your display name'"`
	Opponents  int    `kong:"default='2',help='Number of bot opponents'"`
	Strategy   string `kong:"default='call',enum='call,rand',help='Opponent strategy'"`
	Model      string `kong:"help='Play heads-up against a configured model instead of bots (competitor name)'"`
	Config     string `kong:"default='pokerllm.hcl',help='Configuration file (for --model)'"`
	Hands      int    `kong:"default='10',help='Maximum hands to play'"`
	Stack      int    `kong:"default='1000',help='Starting stack'"`
	SmallBlind int    `kong:"default='5',help='Small blind'"`
	BigBlind   int    `kong:"default='10',help='Big blind'"`
	Seed       *int64 `kong:"help='Deterministic shuffle seed'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)
	renderer := display.NewRenderer(os.Stdout)

	human := agent.NewValidating(agent.NewConsole(os.Stdin, renderer), logger)
	seats := []game.Seat{{Name: c.Name, Stack: c.Stack, Agent: human}}

	opponents, err := c.opponentSeats(logger)
	if err != nil {
		return err
	}
	seats = append(seats, opponents...)

	g, err := game.New(seats,
		game.WithBlinds(c.SmallBlind, c.BigBlind),
		game.WithLogger(logger))
	if err != nil {
		return err
	}
	g.AddObserver(eventPrinter{renderer})

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	for hand := 1; hand <= c.Hands; hand++ {
		renderer.HandHeader(hand)

		res, err := g.RunHand(game.WithShuffleSeed(seed + int64(hand)))
		if errors.Is(err, io.EOF) {
			fmt.Println("\nbye")
			return nil
		}
		if err != nil {
			return err
		}
		renderer.Result(res)

		if busted := firstBusted(g); busted != "" {
			fmt.Printf("\n%s is out of chips after %d hands\n", busted, hand)
			return nil
		}
	}
	return nil
}

func (c *PlayCmd) opponentSeats(logger *log.Logger) ([]game.Seat, error) {
	if c.Model != "" {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		for _, m := range cfg.Models {
			if m.Name != c.Model {
				continue
			}
			llm := agent.NewLLM(agent.LLMConfig{
				BaseURL:     m.BaseURL,
				APIKey:      m.APIKey(),
				Model:       m.Model,
				Temperature: m.Temperature,
				MaxTokens:   m.MaxTokens,
				Timeout:     m.Timeout(),
			}, logger, nil)
			return []game.Seat{{
				Name:  m.Name,
				Stack: c.Stack,
				Agent: agent.NewValidating(llm, logger),
			}}, nil
		}
		return nil, fmt.Errorf("model %q not found in %s", c.Model, c.Config)
	}

	if c.Opponents < 1 {
		return nil, errors.New("at least one opponent required")
	}
	seats := make([]game.Seat, c.Opponents)
	for i := range seats {
		var a game.Agent
		name := fmt.Sprintf("%s-%d", c.Strategy, i+1)
		switch c.Strategy {
		case "rand":
			a = agent.NewRandBot(int64(i + 1))
		default:
			a = agent.NewCallBot()
		}
		seats[i] = game.Seat{Name: name, Stack: c.Stack, Agent: a}
	}
	return seats, nil
}

func firstBusted(g *game.Game) string {
	for _, p := range g.Snapshot().Players {
		if p.Stack == 0 {
			return p.Name
		}
	}
	return ""
}

// eventPrinter mirrors engine events to the console as they happen.
type eventPrinter struct {
	renderer *display.Renderer
}

func (p eventPrinter) OnEvent(e game.Event) {
	p.renderer.Event(e)
}
