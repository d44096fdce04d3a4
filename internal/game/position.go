package game

import "fmt"

// Position is a table position label relative to the big blind seat.
type Position string

const (
	Button        Position = "BTN"
	SmallBlindPos Position = "SB"
	BigBlindPos   Position = "BB"
	UnderTheGun   Position = "UTG"
)

// PositionOf computes the position label for a seat given the big blind
// seat and the seat count. It is a pure function of its arguments so it
// can be tested independently of engine state.
//
// The button is two seats before the big blind, except heads-up where
// the button and small blind are the same seat (and the button label
// wins). Seats after UTG are labeled UTG1, UTG2, ...
func PositionOf(seat, bbPos, numPlayers int) Position {
	dealer := mod(bbPos-2, numPlayers)
	if numPlayers == 2 {
		dealer = mod(bbPos-1, numPlayers)
	}
	sb := mod(bbPos-1, numPlayers)
	utg := mod(bbPos+1, numPlayers)

	switch seat {
	case dealer:
		return Button
	case bbPos:
		return BigBlindPos
	case sb:
		return SmallBlindPos
	case utg:
		return UnderTheGun
	default:
		return Position(fmt.Sprintf("UTG%d", mod(seat-utg, numPlayers)))
	}
}

// mod is the floor modulus, safe for negative seat arithmetic.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
