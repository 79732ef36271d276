package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
	"github.com/luckyrupee/wager-engine/mocks/port/core"
)

func TestDigitColors(t *testing.T) {
	tests := []struct {
		digit    int
		expected []string
	}{
		{0, []string{ColorRed, ColorViolet}},
		{1, []string{ColorGreen}},
		{2, []string{ColorRed}},
		{3, []string{ColorGreen}},
		{4, []string{ColorRed}},
		{5, []string{ColorGreen, ColorViolet}},
		{6, []string{ColorRed}},
		{7, []string{ColorGreen}},
		{8, []string{ColorRed}},
		{9, []string{ColorGreen}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("digit %d", tt.digit), func(t *testing.T) {
			assert.Equal(t, tt.expected, DigitColors(tt.digit))
		})
	}
}

func TestDigitSize(t *testing.T) {
	for d := 0; d <= 4; d++ {
		assert.Equal(t, SizeSmall, DigitSize(d), "digit %d", d)
	}
	for d := 5; d <= 9; d++ {
		assert.Equal(t, SizeBig, DigitSize(d), "digit %d", d)
	}
}

func TestDrawColorCash(t *testing.T) {
	t.Run("should derive colors and size from the drawn digit", func(t *testing.T) {
		mockRand := new(core.MockRandSource)
		mockRand.On("Intn", 10).Return(5)

		out := DrawColorCash(mockRand)

		assert.Equal(t, 5, out.Number)
		assert.Equal(t, []string{ColorGreen, ColorViolet}, out.Colors)
		assert.Equal(t, SizeBig, out.Size)
		mockRand.AssertExpectations(t)
	})
}

func outcomeOf(n int) ColorCashOutcome {
	return ColorCashOutcome{Number: n, Colors: DigitColors(n), Size: DigitSize(n)}
}

func TestResolveColorCash_ColorSelections(t *testing.T) {
	tests := []struct {
		name  string
		color string
		drawn int
		won   bool
		rate  int64
	}{
		{"violet wins on 0", ColorViolet, 0, true, RateViolet},
		{"violet wins on 5", ColorViolet, 5, true, RateViolet},
		{"violet loses on 3", ColorViolet, 3, false, 0},
		{"red wins full on 2", ColorRed, 2, true, RateColor},
		{"red wins half on 0", ColorRed, 0, true, RateColorHalf},
		{"red loses on 7", ColorRed, 7, false, 0},
		{"green wins full on 7", ColorGreen, 7, true, RateColor},
		{"green wins half on 5", ColorGreen, 5, true, RateColorHalf},
		{"green loses on 4", ColorGreen, 4, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won, rate, err := ResolveColorCash(entity.SelectColor, tt.color, outcomeOf(tt.drawn))

			assert.NoError(t, err)
			assert.Equal(t, tt.won, won)
			assert.Equal(t, tt.rate, rate)
		})
	}

	t.Run("should reject unknown color", func(t *testing.T) {
		_, _, err := ResolveColorCash(entity.SelectColor, "blue", outcomeOf(3))
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})
}

func TestResolveColorCash_NumberSelection(t *testing.T) {
	t.Run("should win on exact match at nine times", func(t *testing.T) {
		won, rate, err := ResolveColorCash(entity.SelectNumber, "7", outcomeOf(7))

		assert.NoError(t, err)
		assert.True(t, won)
		assert.Equal(t, RateNumber, rate)
	})

	t.Run("should lose on mismatch", func(t *testing.T) {
		won, rate, err := ResolveColorCash(entity.SelectNumber, "7", outcomeOf(3))

		assert.NoError(t, err)
		assert.False(t, won)
		assert.Equal(t, int64(0), rate)
	})

	t.Run("should reject number out of range", func(t *testing.T) {
		_, _, err := ResolveColorCash(entity.SelectNumber, "10", outcomeOf(3))
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})

	t.Run("should reject non-numeric selection", func(t *testing.T) {
		_, _, err := ResolveColorCash(entity.SelectNumber, "seven", outcomeOf(3))
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})
}

func TestResolveColorCash_TrioSelection(t *testing.T) {
	// Trio groups: 1 -> {1,4,7}, 2 -> {2,5,8}, 3 -> {3,6,9}
	trioMembers := map[string][]int{
		"1": {1, 4, 7},
		"2": {2, 5, 8},
		"3": {3, 6, 9},
	}

	for group, members := range trioMembers {
		for _, d := range members {
			t.Run(fmt.Sprintf("trio %s wins on %d", group, d), func(t *testing.T) {
				won, rate, err := ResolveColorCash(entity.SelectTrio, group, outcomeOf(d))

				assert.NoError(t, err)
				assert.True(t, won)
				assert.Equal(t, RateTrio, rate)
			})
		}
	}

	t.Run("should lose on digit outside the group", func(t *testing.T) {
		won, rate, err := ResolveColorCash(entity.SelectTrio, "1", outcomeOf(2))

		assert.NoError(t, err)
		assert.False(t, won)
		assert.Equal(t, int64(0), rate)
	})

	t.Run("no trio covers zero", func(t *testing.T) {
		for _, group := range []string{"1", "2", "3"} {
			won, _, err := ResolveColorCash(entity.SelectTrio, group, outcomeOf(0))
			assert.NoError(t, err)
			assert.False(t, won)
		}
	})

	t.Run("should reject group out of range", func(t *testing.T) {
		_, _, err := ResolveColorCash(entity.SelectTrio, "4", outcomeOf(3))
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})
}

func TestResolveColorCash_SizeSelection(t *testing.T) {
	t.Run("small wins on low digit", func(t *testing.T) {
		won, rate, err := ResolveColorCash(entity.SelectSize, SizeSmall, outcomeOf(2))

		assert.NoError(t, err)
		assert.True(t, won)
		assert.Equal(t, RateSize, rate)
	})

	t.Run("big loses on low digit", func(t *testing.T) {
		won, rate, err := ResolveColorCash(entity.SelectSize, SizeBig, outcomeOf(2))

		assert.NoError(t, err)
		assert.False(t, won)
		assert.Equal(t, int64(0), rate)
	})

	t.Run("should reject unknown size", func(t *testing.T) {
		_, _, err := ResolveColorCash(entity.SelectSize, "medium", outcomeOf(2))
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})
}

func TestResolveColorCash_UnknownSelectionType(t *testing.T) {
	_, _, err := ResolveColorCash(entity.SelectParity, "odd", outcomeOf(2))
	assert.ErrorIs(t, err, errs.ErrInvalidSelection)
}

func TestDrawDie(t *testing.T) {
	t.Run("should map draw to 1-6 range", func(t *testing.T) {
		mockRand := new(core.MockRandSource)
		mockRand.On("Intn", 6).Return(0)

		assert.Equal(t, 1, DrawDie(mockRand))
		mockRand.AssertExpectations(t)
	})
}

func TestResolveOddEven(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		roll      int
		won       bool
	}{
		{"odd wins on 3", ParityOdd, 3, true},
		{"odd loses on 4", ParityOdd, 4, false},
		{"even wins on 6", ParityEven, 6, true},
		{"even loses on 1", ParityEven, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won, rate, err := ResolveOddEven(tt.selection, tt.roll)

			assert.NoError(t, err)
			assert.Equal(t, tt.won, won)
			if tt.won {
				assert.Equal(t, RateParity, rate)
			} else {
				assert.Equal(t, int64(0), rate)
			}
		})
	}

	t.Run("should reject unknown parity", func(t *testing.T) {
		_, _, err := ResolveOddEven("prime", 3)
		assert.ErrorIs(t, err, errs.ErrInvalidSelection)
	})
}

func TestValidateInstantSelection(t *testing.T) {
	valid := []struct {
		variant entity.GameVariant
		selType entity.SelectionType
		value   string
	}{
		{entity.VariantColorCash, entity.SelectColor, "green"},
		{entity.VariantColorCash, entity.SelectColor, "violet"},
		{entity.VariantColorCash, entity.SelectNumber, "0"},
		{entity.VariantColorCash, entity.SelectNumber, "9"},
		{entity.VariantColorCash, entity.SelectTrio, "3"},
		{entity.VariantColorCash, entity.SelectSize, "big"},
		{entity.VariantOddEven, entity.SelectParity, "odd"},
		{entity.VariantOddEven, entity.SelectParity, "even"},
	}
	for _, tt := range valid {
		t.Run(fmt.Sprintf("accepts %s %s %s", tt.variant, tt.selType, tt.value), func(t *testing.T) {
			assert.NoError(t, ValidateInstantSelection(tt.variant, tt.selType, tt.value))
		})
	}

	invalid := []struct {
		variant entity.GameVariant
		selType entity.SelectionType
		value   string
	}{
		{entity.VariantColorCash, entity.SelectColor, "blue"},
		{entity.VariantColorCash, entity.SelectNumber, "10"},
		{entity.VariantColorCash, entity.SelectTrio, "0"},
		{entity.VariantColorCash, entity.SelectSize, "huge"},
		{entity.VariantColorCash, entity.SelectParity, "odd"},
		{entity.VariantOddEven, entity.SelectParity, "prime"},
		{entity.VariantOddEven, entity.SelectColor, "green"},
		{entity.VariantSpinWin, entity.SelectColor, "green"},
	}
	for _, tt := range invalid {
		t.Run(fmt.Sprintf("rejects %s %s %s", tt.variant, tt.selType, tt.value), func(t *testing.T) {
			assert.ErrorIs(t, ValidateInstantSelection(tt.variant, tt.selType, tt.value), errs.ErrInvalidSelection)
		})
	}
}
