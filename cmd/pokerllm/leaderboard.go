package main

import (
	"context"
	"fmt"

	"github.com/edenlum/PokerLLM/internal/store"
)

// LeaderboardCmd prints aggregated standings from a results database.
type LeaderboardCmd struct {
	DB string `kong:"default='pokerllm.db',help='SQLite results database'"`
}

func (c *LeaderboardCmd) Run() error {
	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Leaderboard(context.Background())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("no stored sessions")
		return nil
	}

	fmt.Printf("%-4s %-16s %10s %9s %10s\n", "#", "player", "net chips", "sessions", "fallbacks")
	for i, r := range rows {
		fmt.Printf("%-4d %-16s %+10d %9d %10d\n", i+1, r.Player, r.NetChips, r.Sessions, r.Fallbacks)
	}
	return nil
}
