package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/luckyrupee/wager-engine/internal/domain/error"
)

// Monetary amounts cross the API as decimal strings ("20.00") and are held
// internally as int64 cents so balance arithmetic is exact.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string and converts it to cents.
// Accepts "10", "10.5" and "10.50"; rejects signs, empty strings and more
// than two decimal places.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}
	if strings.HasPrefix(amount, "+") {
		return 0, fmt.Errorf("%w: explicit sign not allowed", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	if len(parts) == 1 {
		digits = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			digits = parts[0] + "00"
		case 1:
			digits = parts[0] + parts[1] + "0"
		case 2:
			digits = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			return 0, errs.ErrAmountOverflow
		}
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// ParsePositiveAmount is ParseAmount with a strictly-positive requirement,
// used for stakes, deposits and withdrawals
func ParsePositiveAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}
	return cents, nil
}

// FormatCents converts an amount in cents to a decimal string with exactly
// two decimal places, e.g. 1015 -> "10.15", 0 -> "0.00"
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	split := len(s) - 2
	out := s[:split] + "." + s[split:]
	if negative {
		return "-" + out
	}
	return out
}

// ApplyRate multiplies a stake in cents by a payout rate expressed in
// tenths (45 means 4.5x). Integer arithmetic keeps payouts exact for every
// rate in the rule tables, all of which are multiples of 0.5.
func ApplyRate(stakeCents int64, rateTenths int64) int64 {
	return stakeCents * rateTenths / 10
}
