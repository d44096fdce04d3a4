package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/edenlum/PokerLLM/internal/deck"
	"github.com/edenlum/PokerLLM/internal/evaluator"
)

// Game plays Texas Hold'em hands to completion between a fixed set of
// seats. A Game instance is single-threaded: the betting loop blocks on
// each agent decision, and nothing is shared between instances, so
// independent games can run on separate goroutines without locking.
//
// A single main pot is tracked even when players go all-in for
// different amounts on the same street. This mirrors the behaviour the
// benchmark is calibrated against; proper side pots are deliberately
// not modeled.
type Game struct {
	players    []*Player
	agents     []Agent
	smallBlind int
	bigBlind   int

	pot       int
	community []deck.Card
	bbPos     int
	deck      *deck.Deck

	events    []Event
	observers []Observer
	logger    *log.Logger

	// stack total captured at hand setup, before blinds; every award
	// path must restore this exact total.
	handChipTotal int
}

// Seat describes one participant: a name, a starting stack, and the
// agent that supplies decisions for the seat.
type Seat struct {
	Name  string
	Stack int
	Agent Agent
}

// Option configures a Game at creation.
type Option func(*Game)

// WithBlinds overrides the default 5/10 blinds.
func WithBlinds(small, big int) Option {
	return func(g *Game) {
		g.smallBlind = small
		g.bigBlind = big
	}
}

// WithLogger attaches a logger for per-action debug output.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// New creates a game for the given seats. The big blind starts on the
// last seat and rotates forward one seat at the start of every hand, so
// the first hand puts it on seat 0.
func New(seats []Seat, opts ...Option) (*Game, error) {
	if len(seats) < 2 {
		return nil, errors.New("game: at least 2 seats required")
	}

	g := &Game{
		players:    make([]*Player, len(seats)),
		agents:     make([]Agent, len(seats)),
		smallBlind: 5,
		bigBlind:   10,
		bbPos:      len(seats) - 1,
		logger:     log.New(io.Discard),
	}
	for i, s := range seats {
		if s.Agent == nil {
			return nil, fmt.Errorf("game: seat %q has no agent", s.Name)
		}
		g.players[i] = NewPlayer(s.Name, s.Stack)
		g.agents[i] = s.Agent
	}

	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// AddObserver registers an observer for the event log. Observers are
// notified synchronously, in registration order, after every append.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// Snapshot returns a read-only copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Pot:            g.pot,
		CommunityCards: append([]deck.Card(nil), g.community...),
		Players:        make([]PlayerSnapshot, len(g.players)),
	}
	for i, p := range g.players {
		snap.Players[i] = PlayerSnapshot{
			Name:       p.Name,
			Stack:      p.Stack,
			CurrentBet: p.CurrentBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			Hole:       append([]deck.Card(nil), p.Hole...),
		}
	}
	return snap
}

// Events returns a copy of the current hand's event log.
func (g *Game) Events() []Event {
	return append([]Event(nil), g.events...)
}

// BigBlindSeat returns the current big blind seat index.
func (g *Game) BigBlindSeat() int {
	return g.bbPos
}

// FallbackDecision records a decision the validation layer substituted
// after an agent failed to produce a legal move. Sessions count these
// so results from degraded agents can be discounted.
type FallbackDecision struct {
	Player string
	Street Street
	Action Action
	Amount int
}

// HandResult summarises one completed hand.
type HandResult struct {
	Winners   []string
	Pot       int // size of the pot that was awarded
	Showdown  bool
	Board     []deck.Card
	Fallbacks []FallbackDecision
}

// HandOption configures a single hand.
type HandOption func(*handConfig)

type handConfig struct {
	seed *int64
}

// WithShuffleSeed makes the hand's shuffle reproducible: the same seed
// over the same seats yields the identical deck order.
func WithShuffleSeed(seed int64) HandOption {
	return func(c *handConfig) {
		c.seed = &seed
	}
}

// RunHand plays one full hand: blinds, hole cards, up to four betting
// streets, then showdown or walkover and pot award. It is the only
// externally callable way to advance the game.
func (g *Game) RunHand(opts ...HandOption) (*HandResult, error) {
	var cfg handConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := g.setupHand(cfg); err != nil {
		return nil, err
	}

	res := &HandResult{}
	ended := false
	for _, street := range []Street{Preflop, Flop, Turn, River} {
		if street != Preflop {
			if err := g.dealCommunity(street); err != nil {
				return nil, err
			}
		}
		over, err := g.runBettingRound(street, res)
		if err != nil {
			return nil, err
		}
		if over {
			ended = true
			break
		}
	}

	if !ended {
		if g.activeCount() > 1 {
			if err := g.showdown(res); err != nil {
				return nil, err
			}
		} else {
			g.awardWalkover(River, res)
		}
	}

	res.Board = append([]deck.Card(nil), g.community...)

	if err := g.checkConservation(); err != nil {
		return nil, err
	}
	return res, nil
}

// setupHand resets per-hand state, shuffles a fresh deck, rotates the
// big blind, posts blinds and deals hole cards.
func (g *Game) setupHand(cfg handConfig) error {
	g.pot = 0
	g.community = nil
	g.events = nil
	for _, p := range g.players {
		p.ResetForNewHand()
	}

	g.deck = deck.New()
	if cfg.seed != nil {
		g.deck.ShuffleSeeded(*cfg.seed)
	} else {
		g.deck.Shuffle()
	}

	g.bbPos = (g.bbPos + 1) % len(g.players)
	g.handChipTotal = g.totalStacks()

	g.postBlinds()
	return g.dealHoleCards()
}

func (g *Game) postBlinds() {
	n := len(g.players)
	sbPos := mod(g.bbPos-1, n)

	sb := g.players[sbPos]
	g.pot += sb.PlaceBet(g.smallBlind)
	g.emit(Event{
		Street:   Preflop,
		Kind:     EventBlind,
		Player:   sb.Name,
		Position: PositionOf(sbPos, g.bbPos, n),
		Amount:   g.smallBlind,
	})

	bb := g.players[g.bbPos]
	g.pot += bb.PlaceBet(g.bigBlind)
	g.emit(Event{
		Street:   Preflop,
		Kind:     EventBlind,
		Player:   bb.Name,
		Position: BigBlindPos,
		Amount:   g.bigBlind,
	})

	g.logger.Debug("blinds posted", "sb", sb.Name, "bb", bb.Name, "pot", g.pot)
}

// dealHoleCards deals two cards to each seat, starting at the small
// blind and proceeding around the table.
func (g *Game) dealHoleCards() error {
	n := len(g.players)
	start := mod(g.bbPos-1, n)
	for i := 0; i < n; i++ {
		p := g.players[(start+i)%n]
		for j := 0; j < 2; j++ {
			card, err := g.deck.Deal()
			if err != nil {
				return err
			}
			p.Hole = append(p.Hole, card)
		}
	}
	return nil
}

func (g *Game) dealCommunity(street Street) error {
	count := 1
	if street == Flop {
		count = 3
	}
	dealt := make([]deck.Card, 0, count)
	for i := 0; i < count; i++ {
		card, err := g.deck.Deal()
		if err != nil {
			return err
		}
		dealt = append(dealt, card)
	}
	g.community = append(g.community, dealt...)
	g.emit(Event{Street: street, Kind: EventCommunity, Cards: dealt})
	g.logger.Debug("community dealt", "street", street, "board", formatCards(g.community))
	return nil
}

// runBettingRound plays a single street. It returns true when the hand
// ended inside the round (walkover), in which case the pot has already
// been awarded.
func (g *Game) runBettingRound(street Street, res *HandResult) (bool, error) {
	if g.activeCount() <= 1 {
		g.awardWalkover(street, res)
		return true, nil
	}

	n := len(g.players)
	amountToCall := 0
	var start int
	if street == Preflop {
		// Blinds stay live: the amount to call opens at the big blind
		// and action starts on the seat after it.
		amountToCall = g.bigBlind
		start = (g.bbPos + 1) % n
	} else {
		for _, p := range g.players {
			p.CurrentBet = 0
		}
		start = (g.dealerPos() + 1) % n
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seat := (start + i) % n
		p := g.players[seat]
		if !p.Folded && !p.AllIn {
			queue = append(queue, seat)
		}
	}

	for len(queue) > 0 {
		seat := queue[0]
		queue = queue[1:]
		p := g.players[seat]

		if p.Folded || p.AllIn {
			continue
		}
		if g.activeCount() == 1 {
			g.awardWalkover(street, res)
			return true, nil
		}

		legal := g.legalActions(p, amountToCall)
		req := DecisionRequest{
			History:      g.buildHistory(p, legal, amountToCall),
			LegalActions: legal,
			AmountToCall: amountToCall,
			CurrentBet:   p.CurrentBet,
			Stack:        p.Stack,
		}

		d, err := g.agents[seat].Decide(req)
		if err != nil {
			return false, fmt.Errorf("decision for %s: %w", p.Name, err)
		}

		// The validation-and-retry layer owns recovery; a bad decision
		// reaching the engine is a programming error, not a game
		// condition.
		if err := p.ValidateDecision(d, legal, amountToCall); err != nil {
			return false, fmt.Errorf("engine received unvalidated decision for %s: %w", p.Name, err)
		}

		if d.Fallback {
			res.Fallbacks = append(res.Fallbacks, FallbackDecision{
				Player: p.Name,
				Street: street,
				Action: d.Action,
				Amount: d.Amount,
			})
		}

		amountToCall = g.applyDecision(seat, street, d, amountToCall, &queue)
	}

	if g.activeCount() == 1 {
		g.awardWalkover(street, res)
		return true, nil
	}
	return false, nil
}

// legalActions is a pure function of the player's bet, the amount to
// call and the stack. An all-in player never reaches here because the
// queue excludes all-in seats.
func (g *Game) legalActions(p *Player, amountToCall int) []Action {
	if amountToCall > p.CurrentBet {
		actions := []Action{Fold}
		if p.Stack >= amountToCall-p.CurrentBet {
			actions = append(actions, Call)
		}
		return append(actions, Raise)
	}
	return []Action{Check, Bet}
}

// applyDecision mutates game state for a validated decision and returns
// the new amount to call. A bet or raise clears the pending queue and
// re-enqueues every other live player starting after the raiser, which
// is what forces them to act again.
func (g *Game) applyDecision(seat int, street Street, d Decision, amountToCall int, queue *[]int) int {
	n := len(g.players)
	p := g.players[seat]
	pos := PositionOf(seat, g.bbPos, n)

	switch d.Action {
	case Fold:
		p.Folded = true
		g.emit(Event{Street: street, Kind: EventAction, Player: p.Name, Position: pos, Action: Fold})

	case Check:
		g.emit(Event{Street: street, Kind: EventAction, Player: p.Name, Position: pos, Action: Check})

	case Call:
		g.pot += p.PlaceBet(amountToCall - p.CurrentBet)
		g.emit(Event{Street: street, Kind: EventAction, Player: p.Name, Position: pos, Action: Call, Amount: amountToCall})

	case Bet, Raise:
		g.pot += p.PlaceBet(d.Amount - p.CurrentBet)
		amountToCall = p.CurrentBet
		g.emit(Event{Street: street, Kind: EventAction, Player: p.Name, Position: pos, Action: d.Action, Amount: amountToCall})

		*queue = (*queue)[:0]
		for i := 1; i < n; i++ {
			s := (seat + i) % n
			o := g.players[s]
			if !o.Folded && !o.AllIn {
				*queue = append(*queue, s)
			}
		}
	}

	g.logger.Debug("action applied",
		"player", p.Name,
		"street", street,
		"action", d.Action,
		"amount", d.Amount,
		"pot", g.pot,
		"allIn", p.AllIn)
	return amountToCall
}

// showdown evaluates every non-folded hand and awards the pot to the
// best ranking, splitting evenly on exact ties. Odd chips go one each
// to the earliest tied winners in seat order.
func (g *Game) showdown(res *HandResult) error {
	n := len(g.players)
	var (
		winners []int
		best    evaluator.Ranking
	)

	for seat, p := range g.players {
		if p.Folded {
			continue
		}
		ranking, err := evaluator.Evaluate(append(append([]deck.Card(nil), p.Hole...), g.community...))
		if err != nil {
			return fmt.Errorf("showdown evaluation for %s: %w", p.Name, err)
		}
		g.emit(Event{
			Street:   River,
			Kind:     EventShowdown,
			Player:   p.Name,
			Position: PositionOf(seat, g.bbPos, n),
			Cards:    append([]deck.Card(nil), p.Hole...),
			Detail:   ranking.String(),
		})

		switch {
		case winners == nil, ranking.Compare(best) > 0:
			winners = []int{seat}
			best = ranking
		case ranking.Compare(best) == 0:
			winners = append(winners, seat)
		}
	}

	potSize := g.pot
	share := potSize / len(winners)
	remainder := potSize % len(winners)
	for i, seat := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		p := g.players[seat]
		p.Stack += amount
		detail := ""
		if len(winners) > 1 {
			detail = " (split)"
		}
		g.emit(Event{Street: River, Kind: EventWin, Player: p.Name, Amount: amount, Detail: detail})
		res.Winners = append(res.Winners, p.Name)
	}
	g.pot = 0

	res.Pot = potSize
	res.Showdown = true
	g.logger.Debug("showdown complete", "winners", res.Winners, "pot", potSize, "best", best.String())
	return nil
}

// awardWalkover gives the entire pot to the sole remaining player
// without evaluation.
func (g *Game) awardWalkover(street Street, res *HandResult) {
	for _, p := range g.players {
		if p.Folded {
			continue
		}
		potSize := g.pot
		p.Stack += potSize
		g.pot = 0
		g.emit(Event{Street: street, Kind: EventWin, Player: p.Name, Amount: potSize})
		res.Winners = []string{p.Name}
		res.Pot = potSize
		res.Showdown = false
		g.logger.Debug("walkover", "winner", p.Name, "pot", potSize)
		return
	}
}

// checkConservation verifies that the award restored the stack total
// captured at setup and drove the pot to zero. A mismatch means chips
// were created or destroyed and aborts the hand.
func (g *Game) checkConservation() error {
	if g.pot != 0 {
		return fmt.Errorf("chip conservation violation: pot is %d after award", g.pot)
	}
	if total := g.totalStacks(); total != g.handChipTotal {
		return fmt.Errorf("chip conservation violation: stacks total %d, expected %d", total, g.handChipTotal)
	}
	return nil
}

func (g *Game) totalStacks() int {
	total := 0
	for _, p := range g.players {
		total += p.Stack
	}
	return total
}

// activeCount is the number of players still in the hand. All-in
// players count: they remain eligible for the pot.
func (g *Game) activeCount() int {
	count := 0
	for _, p := range g.players {
		if !p.Folded {
			count++
		}
	}
	return count
}

// dealerPos derives the button seat from the big blind seat. Heads-up
// the button and the small blind coincide.
func (g *Game) dealerPos() int {
	n := len(g.players)
	if n == 2 {
		return mod(g.bbPos-1, n)
	}
	return mod(g.bbPos-2, n)
}

func (g *Game) seatOf(p *Player) int {
	for i, other := range g.players {
		if other == p {
			return i
		}
	}
	return -1
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}
