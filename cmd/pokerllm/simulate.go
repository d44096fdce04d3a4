package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edenlum/PokerLLM/internal/agent"
	"github.com/edenlum/PokerLLM/internal/phh"
	"github.com/edenlum/PokerLLM/internal/session"
	"github.com/edenlum/PokerLLM/internal/store"
)

// SimulateCmd runs a bot-vs-bot session, mainly for engine soak
// testing and seed exploration.
type SimulateCmd struct {
	Bots       string `kong:"default='call,rand',help='Comma-separated bot strategies to seat (call, rand)'"`
	Hands      int    `kong:"default='100',help='Hands to play'"`
	Stack      int    `kong:"default='1000',help='Starting stack'"`
	SmallBlind int    `kong:"default='5',help='Small blind'"`
	BigBlind   int    `kong:"default='10',help='Big blind'"`
	Seed       int64  `kong:"help='Session seed (0 uses current time)'"`
	DB         string `kong:"help='SQLite database to record the session in'"`
	PHHDir     string `kong:"name='phh-dir',help='Directory to archive hands as .phh files'"`
	Stats      bool   `kong:"help='Print per-player statistics'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	strategies := strings.Split(c.Bots, ",")
	if len(strategies) < 2 {
		return fmt.Errorf("need at least 2 bots, got %q", c.Bots)
	}

	seats := make([]session.Seat, len(strategies))
	for i, s := range strategies {
		name := fmt.Sprintf("%s-%d", strings.TrimSpace(s), i+1)
		switch strings.TrimSpace(s) {
		case "call":
			seats[i] = session.Seat{Name: name, Agent: agent.NewCallBot()}
		case "rand":
			seats[i] = session.Seat{Name: name, Agent: agent.NewRandBot(int64(i + 1))}
		default:
			return fmt.Errorf("unknown strategy %q", s)
		}
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := session.Config{
		MaxHands:      c.Hands,
		StartingStack: c.Stack,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		Seed:          seed,
	}

	var opts []session.Option
	if c.PHHDir != "" {
		opts = append(opts, session.WithExporter(phh.NewRecorder(c.PHHDir)))
	}

	s, err := session.New(cfg, seats, logger, opts...)
	if err != nil {
		return err
	}

	logger.Info("simulation start", "bots", c.Bots, "hands", c.Hands, "seed", seed)
	res, err := s.Run()
	if err != nil {
		return err
	}

	fmt.Printf("session %s: %d hands in %s\n", res.ID, len(res.Hands), res.Duration.Round(time.Millisecond))
	if res.Busted != "" {
		fmt.Printf("%s busted\n", res.Busted)
	}
	for _, seat := range seats {
		fmt.Printf("  %-12s stack %5d  net %+d\n",
			seat.Name, res.FinalStacks[seat.Name], res.NetChips[seat.Name])
	}

	if c.Stats {
		fmt.Println()
		fmt.Printf("  %-12s %10s %12s %6s %6s\n", "player", "bb/hand", "95% CI", "vpip", "aggr")
		for _, name := range res.Stats.Names() {
			ps := res.Stats.Player(name)
			lo, hi := ps.ConfidenceInterval95()
			fmt.Printf("  %-12s %+10.2f [%+.2f,%+.2f] %5.0f%% %6.2f\n",
				name, ps.Mean(), lo, hi, ps.VPIP()*100, ps.AggressionFactor())
		}
	}

	if c.DB != "" {
		db, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SaveSession(context.Background(), res); err != nil {
			return err
		}
		logger.Info("session saved", "db", c.DB, "id", res.ID)
	}
	return nil
}
