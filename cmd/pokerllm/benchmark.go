package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/edenlum/PokerLLM/internal/agent"
	"github.com/edenlum/PokerLLM/internal/config"
	"github.com/edenlum/PokerLLM/internal/game"
	"github.com/edenlum/PokerLLM/internal/session"
	"github.com/edenlum/PokerLLM/internal/store"
)

// BenchmarkCmd plays a duplicate-pair round-robin between every
// configured competitor and prints the ranking.
type BenchmarkCmd struct {
	Config      string `kong:"default='pokerllm.hcl',help='Configuration file'"`
	Seed        *int64 `kong:"help='Override the configured benchmark seed'"`
	Parallelism int    `kong:"help='Override the configured pairing parallelism'"`
	DB          string `kong:"help='Override the configured results database'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *BenchmarkCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Match.Seed = *c.Seed
	}
	if c.Parallelism > 0 {
		cfg.Match.Parallelism = c.Parallelism
	}
	if c.DB != "" {
		cfg.Store = &config.StoreSettings{Path: c.DB}
	}
	if cfg.Match.Seed == 0 {
		cfg.Match.Seed = time.Now().UnixNano()
	}

	competitors, err := buildCompetitors(cfg, logger)
	if err != nil {
		return err
	}

	b, err := session.NewBenchmark(cfg.SessionConfig(), competitors, cfg.Match.Parallelism, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("benchmark start",
		"competitors", len(competitors),
		"hands", cfg.Match.MaxHands,
		"seed", cfg.Match.Seed)

	res, err := b.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("%-4s %-16s %10s %8s %10s\n", "#", "competitor", "net chips", "hands", "fallbacks")
	for i, s := range res.Standings {
		fmt.Printf("%-4d %-16s %+10d %8d %10d\n", i+1, s.Name, s.NetChips, s.Hands, s.Fallbacks)
	}

	if cfg.Store != nil {
		if err := saveResults(cfg.Store.Path, res, logger); err != nil {
			return err
		}
	}
	return nil
}

func buildCompetitors(cfg *config.Config, logger *log.Logger) ([]session.Competitor, error) {
	var competitors []session.Competitor

	for _, m := range cfg.Models {
		m := m
		llmCfg := agent.LLMConfig{
			BaseURL:     m.BaseURL,
			APIKey:      m.APIKey(),
			Model:       m.Model,
			Temperature: m.Temperature,
			MaxTokens:   m.MaxTokens,
			Timeout:     m.Timeout(),
		}
		competitors = append(competitors, session.Competitor{
			Name: m.Name,
			NewAgent: func() game.Agent {
				return agent.NewValidating(agent.NewLLM(llmCfg, logger, nil), logger)
			},
		})
	}

	for _, b := range cfg.Bots {
		b := b
		switch b.Strategy {
		case "call":
			competitors = append(competitors, session.Competitor{
				Name:     b.Name,
				NewAgent: func() game.Agent { return agent.NewCallBot() },
			})
		case "rand":
			competitors = append(competitors, session.Competitor{
				Name:     b.Name,
				NewAgent: func() game.Agent { return agent.NewRandBot(b.Seed) },
			})
		default:
			return nil, fmt.Errorf("bot %s: unknown strategy %s", b.Name, b.Strategy)
		}
	}

	return competitors, nil
}

func saveResults(path string, res *session.BenchmarkResult, logger *log.Logger) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	saved := 0
	for _, pairing := range res.Pairings {
		for _, run := range pairing.Runs {
			if err := db.SaveSession(ctx, run); err != nil {
				return err
			}
			saved++
		}
	}
	logger.Info("results saved", "db", path, "sessions", saved)
	return nil
}
