package game

import (
	"fmt"
	"strconv"

	"github.com/luckyrupee/wager-engine/internal/domain/entity"
	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
)

// ValidateInstantSelection checks a selection before any money moves.
// Resolution revalidates, but a failed placement must reject before the
// stake is debited.
func ValidateInstantSelection(variant entity.GameVariant, selType entity.SelectionType, selValue string) error {
	switch variant {
	case entity.VariantColorCash:
		switch selType {
		case entity.SelectColor:
			if selValue != ColorGreen && selValue != ColorRed && selValue != ColorViolet {
				return fmt.Errorf("%w: color must be green, red or violet, got %q", errs.ErrInvalidSelection, selValue)
			}
		case entity.SelectNumber:
			k, err := strconv.Atoi(selValue)
			if err != nil || k < 0 || k > 9 {
				return fmt.Errorf("%w: number must be 0-9, got %q", errs.ErrInvalidSelection, selValue)
			}
		case entity.SelectTrio:
			g, err := strconv.Atoi(selValue)
			if err != nil || g < 1 || g > 3 {
				return fmt.Errorf("%w: trio must be 1-3, got %q", errs.ErrInvalidSelection, selValue)
			}
		case entity.SelectSize:
			if selValue != SizeSmall && selValue != SizeBig {
				return fmt.Errorf("%w: size must be small or big, got %q", errs.ErrInvalidSelection, selValue)
			}
		default:
			return fmt.Errorf("%w: selection type %s not valid for colorcash", errs.ErrInvalidSelection, selType)
		}
		return nil
	case entity.VariantOddEven:
		if selType != entity.SelectParity {
			return fmt.Errorf("%w: oddeven takes a parity selection", errs.ErrInvalidSelection)
		}
		if selValue != ParityOdd && selValue != ParityEven {
			return fmt.Errorf("%w: parity must be odd or even, got %q", errs.ErrInvalidSelection, selValue)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s is not an instant game", errs.ErrInvalidSelection, variant)
	}
}
