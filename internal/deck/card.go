package deck

import "fmt"

// Suit is one of the four card suits, in spades-first order.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitGlyphs = [...]string{"♠", "♥", "♦", "♣"}

func (s Suit) String() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitGlyphs[s]
}

// IsRed reports whether the suit prints red at a card table.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank. The underlying integer doubles as the
// comparison value used by the evaluator (Two=2 .. Ace=14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankGlyphs = "23456789TJQKA"

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankGlyphs[r-Two])
}

// Card is an immutable playing card. Cards are value types and compare
// by (rank, suit).
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard builds a card from its suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String renders rank then suit, e.g. "A♠".
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed reports whether the card's suit is red.
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value of the card for comparison. Aces are
// high (14); the evaluator treats the wheel straight separately.
func (c Card) Value() int {
	return int(c.Rank)
}
