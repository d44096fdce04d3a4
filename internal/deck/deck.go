package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/edenlum/PokerLLM/internal/randutil"
)

// ErrEmptyDeck is returned by Deal when the deck is exhausted. With 52
// cards a deck is always sufficient for realistic seat counts plus the
// board, so hitting this indicates a programming error.
var ErrEmptyDeck = errors.New("deck: no cards remaining")

// Deck is an ordered sequence of the 52 unique cards. A fresh deck is
// built for every hand; cards already dealt are owned by their
// destinations, not the deck.
type Deck struct {
	cards []Card
}

// New creates a new standard 52-card deck in generation order
// (suit-major). The order is never relied upon directly since every
// deck is shuffled before dealing.
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// Shuffle randomizes the deck order using a non-reproducible source.
func (d *Deck) Shuffle() {
	d.shuffle(randutil.NewUnseeded())
}

// ShuffleSeeded randomizes the deck order using a PRNG local to this
// call. Two freshly built decks shuffled with the same seed end up in
// identical order, which is what hand replay depends on.
func (d *Deck) ShuffleSeeded(seed int64) {
	d.shuffle(randutil.New(seed))
}

// shuffle is a Fisher-Yates shuffle over the current deck contents.
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the last card in the deck.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Cards returns a copy of the current deck contents in order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
