// Package evaluator ranks 7-card Texas Hold'em hands by exhaustive
// enumeration of all C(7,5)=21 five-card subsets. Rankings compare by
// category first, then lexicographically over the tiebreak values.
package evaluator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/edenlum/PokerLLM/internal/deck"
)

// ErrTooFewCards is returned when Evaluate is called with fewer than
// seven cards. This is a precondition violation, not a game condition.
var ErrTooFewCards = errors.New("evaluator: need at least 7 cards")

// Category is the ordered hand category. Higher is better.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	// RoyalFlush is a straight flush whose values are exactly A-K-Q-J-T.
	// It compares by the same tiebreak rule as any straight flush; the
	// distinct category is a display refinement.
	RoyalFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Ranking is the result of evaluating a hand: a category plus an
// ordered tiebreak tuple, leftmost element most significant.
type Ranking struct {
	Category Category
	Tiebreak []int
}

// Compare returns 1 if r is the stronger ranking, -1 if other is
// stronger, and 0 if they tie exactly.
func (r Ranking) Compare(other Ranking) int {
	if r.Category != other.Category {
		if r.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(r.Tiebreak) && i < len(other.Tiebreak); i++ {
		if r.Tiebreak[i] != other.Tiebreak[i] {
			if r.Tiebreak[i] > other.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns a readable description like "Flush (14 13 12 11 9)"
func (r Ranking) String() string {
	parts := make([]string, len(r.Tiebreak))
	for i, v := range r.Tiebreak {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s (%s)", r.Category, strings.Join(parts, " "))
}

// Evaluate returns the best ranking over all 5-card subsets of the
// given cards. It requires at least 7 cards (2 hole + 5 board) and is
// a pure function.
func Evaluate(cards []deck.Card) (Ranking, error) {
	if len(cards) < 7 {
		return Ranking{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	}

	var best Ranking
	var hand [5]deck.Card
	forEachSubset(cards, hand[:], 0, 0, func(subset []deck.Card) {
		r := rankFive(subset)
		if best.Category == 0 || r.Compare(best) > 0 {
			best = r
		}
	})
	return best, nil
}

// forEachSubset visits every 5-card subset of cards exactly once.
func forEachSubset(cards, hand []deck.Card, start, depth int, fn func([]deck.Card)) {
	if depth == len(hand) {
		fn(hand)
		return
	}
	for i := start; i <= len(cards)-(len(hand)-depth); i++ {
		hand[depth] = cards[i]
		forEachSubset(cards, hand, i+1, depth+1, fn)
	}
}

// rankFive classifies a single 5-card hand.
func rankFive(hand []deck.Card) Ranking {
	values := make([]int, 5)
	for i, c := range hand {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := true
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			flush = false
			break
		}
	}

	straight, straightVals := straightValues(values)

	if straight && flush {
		cat := StraightFlush
		if straightVals[0] == 14 {
			cat = RoyalFlush
		}
		return Ranking{Category: cat, Tiebreak: straightVals}
	}

	counts := make(map[int]int, 5)
	for _, v := range values {
		counts[v]++
	}

	// Group values by (count desc, value desc); kickers come out in
	// descending value order after the groups.
	type group struct{ value, count int }
	groups := make([]group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, group{v, n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	tiebreak := make([]int, len(groups))
	for i, g := range groups {
		tiebreak[i] = g.value
	}

	switch {
	case groups[0].count == 4:
		return Ranking{Category: FourOfAKind, Tiebreak: tiebreak}
	case groups[0].count == 3 && groups[1].count == 2:
		return Ranking{Category: FullHouse, Tiebreak: tiebreak}
	case flush:
		return Ranking{Category: Flush, Tiebreak: values}
	case straight:
		return Ranking{Category: Straight, Tiebreak: straightVals}
	case groups[0].count == 3:
		return Ranking{Category: ThreeOfAKind, Tiebreak: tiebreak}
	case groups[0].count == 2 && groups[1].count == 2:
		return Ranking{Category: TwoPair, Tiebreak: tiebreak}
	case groups[0].count == 2:
		return Ranking{Category: Pair, Tiebreak: tiebreak}
	default:
		return Ranking{Category: HighCard, Tiebreak: values}
	}
}

// straightValues reports whether the descending values form a straight
// and returns the tiebreak tuple to use. The wheel (A-5-4-3-2) scores
// with high card 5, not Ace-high.
func straightValues(values []int) (bool, []int) {
	distinct := true
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			distinct = false
			break
		}
	}
	if !distinct {
		return false, nil
	}

	if values[0]-values[4] == 4 {
		out := make([]int, 5)
		copy(out, values)
		return true, out
	}

	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return true, []int{5, 4, 3, 2, 1}
	}

	return false, nil
}
