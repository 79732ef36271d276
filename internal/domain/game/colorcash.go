package game

import (
	"fmt"
	"strconv"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
)

// ColorCash draws a digit 0-9. Color and size are deterministic functions
// of the digit; the bet selection decides which of them pays.

// Colors used by ColorCash selections
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorViolet = "violet"
)

// Size classes
const (
	SizeSmall = "small"
	SizeBig   = "big"
)

// Parity values for the OddEven die variant
const (
	ParityOdd  = "odd"
	ParityEven = "even"
)

// Payout rates in tenths of the stake (45 = 4.5x)
const (
	RateViolet    int64 = 45
	RateColor     int64 = 20
	RateColorHalf int64 = 15 // red on 0 / green on 5, where violet shares the digit
	RateNumber    int64 = 90
	RateTrio      int64 = 30
	RateSize      int64 = 20
	RateParity    int64 = 20
	RateFourColor int64 = 40
)

// trioDigits maps trio group -> member digits
var trioDigits = map[int][3]int{
	1: {1, 4, 7},
	2: {2, 5, 8},
	3: {3, 6, 9},
}

// DigitColors returns the color set of a drawn digit. 0 and 5 carry violet
// alongside red and green respectively.
func DigitColors(n int) []string {
	switch {
	case n == 0:
		return []string{ColorRed, ColorViolet}
	case n == 5:
		return []string{ColorGreen, ColorViolet}
	case n%2 == 1:
		return []string{ColorGreen}
	default:
		return []string{ColorRed}
	}
}

// DigitSize returns the size class of a drawn digit: 0-4 small, 5-9 big
func DigitSize(n int) string {
	if n < 5 {
		return SizeSmall
	}
	return SizeBig
}

// ColorCashOutcome carries the drawn digit plus its derived attributes
type ColorCashOutcome struct {
	Number int
	Colors []string
	Size   string
}

// DrawColorCash produces a ColorCash outcome from the given source
func DrawColorCash(src RandSource) ColorCashOutcome {
	n := src.Intn(10)
	return ColorCashOutcome{
		Number: n,
		Colors: DigitColors(n),
		Size:   DigitSize(n),
	}
}

// ResolveColorCash applies the rule table for a ColorCash selection against
// a drawn outcome. It returns whether the bet won and the payout rate in
// tenths (0 on a loss).
func ResolveColorCash(selType entity.SelectionType, selValue string, out ColorCashOutcome) (bool, int64, error) {
	switch selType {
	case entity.SelectColor:
		return resolveColorSelection(selValue, out)
	case entity.SelectNumber:
		k, err := strconv.Atoi(selValue)
		if err != nil || k < 0 || k > 9 {
			return false, 0, fmt.Errorf("%w: number must be 0-9, got %q", errs.ErrInvalidSelection, selValue)
		}
		if out.Number == k {
			return true, RateNumber, nil
		}
		return false, 0, nil
	case entity.SelectTrio:
		g, err := strconv.Atoi(selValue)
		if err != nil {
			return false, 0, fmt.Errorf("%w: trio must be 1-3, got %q", errs.ErrInvalidSelection, selValue)
		}
		digits, ok := trioDigits[g]
		if !ok {
			return false, 0, fmt.Errorf("%w: trio must be 1-3, got %q", errs.ErrInvalidSelection, selValue)
		}
		for _, d := range digits {
			if out.Number == d {
				return true, RateTrio, nil
			}
		}
		return false, 0, nil
	case entity.SelectSize:
		if selValue != SizeSmall && selValue != SizeBig {
			return false, 0, fmt.Errorf("%w: size must be small or big, got %q", errs.ErrInvalidSelection, selValue)
		}
		if out.Size == selValue {
			return true, RateSize, nil
		}
		return false, 0, nil
	default:
		return false, 0, fmt.Errorf("%w: selection type %s not valid for colorcash", errs.ErrInvalidSelection, selType)
	}
}

func resolveColorSelection(color string, out ColorCashOutcome) (bool, int64, error) {
	switch color {
	case ColorViolet:
		if out.Number == 0 || out.Number == 5 {
			return true, RateViolet, nil
		}
		return false, 0, nil
	case ColorRed:
		if !containsColor(out.Colors, ColorRed) {
			return false, 0, nil
		}
		// Red shares digit 0 with violet and pays at the reduced rate there
		if out.Number == 0 {
			return true, RateColorHalf, nil
		}
		return true, RateColor, nil
	case ColorGreen:
		if !containsColor(out.Colors, ColorGreen) {
			return false, 0, nil
		}
		if out.Number == 5 {
			return true, RateColorHalf, nil
		}
		return true, RateColor, nil
	default:
		return false, 0, fmt.Errorf("%w: color must be green, red or violet, got %q", errs.ErrInvalidSelection, color)
	}
}

func containsColor(colors []string, c string) bool {
	for _, x := range colors {
		if x == c {
			return true
		}
	}
	return false
}

// DrawDie rolls a die 1-6 for the OddEven variant
func DrawDie(src RandSource) int {
	return src.Intn(6) + 1
}

// ResolveOddEven resolves a parity bet against a die roll
func ResolveOddEven(selValue string, roll int) (bool, int64, error) {
	if selValue != ParityOdd && selValue != ParityEven {
		return false, 0, fmt.Errorf("%w: parity must be odd or even, got %q", errs.ErrInvalidSelection, selValue)
	}

	rolled := ParityEven
	if roll%2 == 1 {
		rolled = ParityOdd
	}
	if rolled == selValue {
		return true, RateParity, nil
	}
	return false, 0, nil
}
