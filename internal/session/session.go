// Package session runs multi-hand matches on top of the game engine
// and aggregates their outcomes: single sessions, duplicate-seat pairs
// that cancel card variance, and full round-robin benchmarks.
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/edenlum/PokerLLM/internal/game"
	"github.com/edenlum/PokerLLM/internal/phh"
	"github.com/edenlum/PokerLLM/internal/randutil"
	"github.com/edenlum/PokerLLM/internal/statistics"
)

// Config describes one session. The zero value is not usable; call
// DefaultConfig and override.
type Config struct {
	MaxHands      int
	StartingStack int
	SmallBlind    int
	BigBlind      int

	// Seed drives every shuffle in the session: hand n uses a sub-seed
	// derived from (Seed, n). Two sessions with equal seeds deal the
	// identical card sequence.
	Seed int64
}

// DefaultConfig returns the standard match settings.
func DefaultConfig() Config {
	return Config{
		MaxHands:      100,
		StartingStack: 1000,
		SmallBlind:    5,
		BigBlind:      10,
	}
}

// Seat pairs a competitor name with its decision source.
type Seat struct {
	Name  string
	Agent game.Agent
}

// HandRecord summarises one played hand.
type HandRecord struct {
	Num       int
	Seed      int64
	Winners   []string
	Pot       int
	Showdown  bool
	Fallbacks int
}

// Result is the outcome of one completed session.
type Result struct {
	ID          string
	Start       time.Time
	Duration    time.Duration
	Hands       []HandRecord
	FinalStacks map[string]int
	NetChips    map[string]int
	Fallbacks   int
	FallbacksBy map[string]int
	Busted      string // name of the busted player, if the session ended early
	Stats       *statistics.Tracker
}

// Exporter receives every completed hand, e.g. for .phh archival.
type Exporter interface {
	ExportHand(sessionID string, h phh.Hand) error
}

// Option configures a Session beyond its Config.
type Option func(*Session)

// WithExporter archives each hand through e. Export failures are
// logged, not fatal.
func WithExporter(e Exporter) Option {
	return func(s *Session) {
		s.exporter = e
	}
}

// Session plays up to MaxHands hands between fixed seats, carrying
// stacks across hands. It stops early when any stack reaches zero.
type Session struct {
	id       string
	cfg      Config
	seats    []Seat
	logger   *log.Logger
	exporter Exporter
}

// New creates a session. At least two seats are required.
func New(cfg Config, seats []Seat, logger *log.Logger, opts ...Option) (*Session, error) {
	if len(seats) < 2 {
		return nil, errors.New("session: at least 2 seats required")
	}
	if cfg.MaxHands <= 0 {
		return nil, errors.New("session: MaxHands must be positive")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	s := &Session{
		id:     id,
		cfg:    cfg,
		seats:  seats,
		logger: logger.WithPrefix("session").With("id", id),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Run plays the session to completion.
func (s *Session) Run() (*Result, error) {
	gameSeats := make([]game.Seat, len(s.seats))
	for i, seat := range s.seats {
		gameSeats[i] = game.Seat{
			Name:  seat.Name,
			Stack: s.cfg.StartingStack,
			Agent: seat.Agent,
		}
	}

	g, err := game.New(gameSeats, game.WithBlinds(s.cfg.SmallBlind, s.cfg.BigBlind))
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:          s.id,
		Start:       time.Now(),
		FinalStacks: make(map[string]int, len(s.seats)),
		NetChips:    make(map[string]int, len(s.seats)),
		FallbacksBy: make(map[string]int, len(s.seats)),
		Stats:       statistics.NewTracker(s.cfg.BigBlind),
	}

	for hand := 1; hand <= s.cfg.MaxHands; hand++ {
		before := g.Snapshot()
		seed := randutil.Derive(s.cfg.Seed, hand)
		hr, err := g.RunHand(game.WithShuffleSeed(seed))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand, err)
		}

		record := HandRecord{
			Num:       hand,
			Seed:      seed,
			Winners:   hr.Winners,
			Pot:       hr.Pot,
			Showdown:  hr.Showdown,
			Fallbacks: len(hr.Fallbacks),
		}
		res.Hands = append(res.Hands, record)
		res.Fallbacks += record.Fallbacks
		for _, fb := range hr.Fallbacks {
			res.FallbacksBy[fb.Player]++
		}

		after := g.Snapshot()
		net := make(map[string]int, len(after.Players))
		starting := make([]int, len(before.Players))
		for i, p := range after.Players {
			net[p.Name] = p.Stack - before.Players[i].Stack
			starting[i] = before.Players[i].Stack
		}
		res.Stats.AddHand(g.Events(), net, hr)

		if s.exporter != nil {
			err := s.exporter.ExportHand(s.id, phh.Hand{
				ID:             fmt.Sprintf("%s-%d", s.id, hand),
				Num:            hand,
				Time:           time.Now(),
				SmallBlind:     s.cfg.SmallBlind,
				BigBlind:       s.cfg.BigBlind,
				StartingStacks: starting,
				Events:         g.Events(),
				Snapshot:       after,
			})
			if err != nil {
				s.logger.Warn("hand export failed", "hand", hand, "error", err)
			}
		}

		s.logger.Debug("hand complete",
			"hand", hand,
			"winners", hr.Winners,
			"pot", hr.Pot,
			"showdown", hr.Showdown)

		if busted := s.bustedPlayer(g); busted != "" {
			res.Busted = busted
			s.logger.Info("player busted, ending session", "player", busted, "hands", hand)
			break
		}
	}

	for _, p := range g.Snapshot().Players {
		res.FinalStacks[p.Name] = p.Stack
		res.NetChips[p.Name] = p.Stack - s.cfg.StartingStack
	}
	res.Duration = time.Since(res.Start)

	s.logger.Info("session complete",
		"hands", len(res.Hands),
		"fallbacks", res.Fallbacks,
		"stacks", res.FinalStacks)
	return res, nil
}

func (s *Session) bustedPlayer(g *game.Game) string {
	for _, p := range g.Snapshot().Players {
		if p.Stack == 0 {
			return p.Name
		}
	}
	return ""
}
