package game

import (
	"fmt"
	"strconv"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
)

// RandSource is the randomness the generators draw from
type RandSource interface {
	Intn(n int) int
}

// SpinWinWheel is the 11-slot multiplier wheel for the Spin & Win live
// round. 0 denotes a bust slot: every bet on the round loses.
var SpinWinWheel = [11]int64{0, 2, 3, 5, 2, 0, 3, 2, 5, 2, 0}

// DrawSpinWin picks a slot uniformly and returns its multiplier
func DrawSpinWin(src RandSource) int64 {
	return SpinWinWheel[src.Intn(len(SpinWinWheel))]
}

// ParseSpinWinOutcome converts a stored round outcome back to a multiplier
func ParseSpinWinOutcome(outcome string) (int64, error) {
	m, err := strconv.ParseInt(outcome, 10, 64)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("%w: bad spinwin outcome %q", errs.ErrInvalidSelection, outcome)
	}
	return m, nil
}

// FourColorColors lists the valid colors of the operator-driven 4-Color
// round. The outcome here is supplied by the operator, never drawn.
var FourColorColors = []string{"red", "green", "blue", "yellow"}

// IsFourColor reports whether c is a valid 4-Color selection
func IsFourColor(c string) bool {
	for _, x := range FourColorColors {
		if x == c {
			return true
		}
	}
	return false
}
