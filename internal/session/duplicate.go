package session

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DuplicateResult is the outcome of a duplicate-seat pair: the same
// session played twice with the seats swapped, so each competitor
// plays both sides of the identical card sequence. Summing net chips
// across the two runs cancels most card-distribution luck.
type DuplicateResult struct {
	Runs     [2]*Result
	NetChips map[string]int
}

// RunDuplicate plays the two mirrored sessions of a duplicate pair
// sequentially. Both runs use cfg.Seed, so they deal identical cards
// to opposite seats.
func RunDuplicate(cfg Config, a, b Seat, logger *log.Logger) (*DuplicateResult, error) {
	first, err := New(cfg, []Seat{a, b}, logger)
	if err != nil {
		return nil, err
	}
	r1, err := first.Run()
	if err != nil {
		return nil, fmt.Errorf("duplicate run 1 (%s vs %s): %w", a.Name, b.Name, err)
	}

	second, err := New(cfg, []Seat{b, a}, logger)
	if err != nil {
		return nil, err
	}
	r2, err := second.Run()
	if err != nil {
		return nil, fmt.Errorf("duplicate run 2 (%s vs %s): %w", b.Name, a.Name, err)
	}

	net := make(map[string]int, 2)
	for _, run := range []*Result{r1, r2} {
		for name, chips := range run.NetChips {
			net[name] += chips
		}
	}
	return &DuplicateResult{Runs: [2]*Result{r1, r2}, NetChips: net}, nil
}
