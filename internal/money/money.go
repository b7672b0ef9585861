// Package money provides fixed-point currency arithmetic in integer minor
// units (cents). All amounts inside the engine are int64 cents; decimal
// values only appear at API boundaries and for percentage/share fractions.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrTooPrecise        = errors.New("amount has more than two decimal places")
	ErrBadCurrency       = errors.New("currency must be a 3-letter code")
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ToCents converts a decimal amount to integer cents.
// Sub-cent precision is rejected rather than rounded away.
func ToCents(d decimal.Decimal) (int64, error) {
	scaled := d.Mul(decimal.NewFromInt(100))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, ErrTooPrecise
	}
	return scaled.IntPart(), nil
}

// PositiveCents converts a decimal amount to cents, requiring it to be
// strictly positive.
func PositiveCents(d decimal.Decimal) (int64, error) {
	cents, err := ToCents(d)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return cents, nil
}

// FromCents converts integer cents back to a two-decimal value.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// RoundedShare returns round(totalCents * numerator / denominator) in cents,
// half away from zero. Used for percentage and share splits.
func RoundedShare(totalCents int64, numerator, denominator decimal.Decimal) int64 {
	return decimal.NewFromInt(totalCents).
		Mul(numerator).
		Div(denominator).
		Round(0).
		IntPart()
}

// ValidateCurrency checks for a 3-letter uppercase currency code.
func ValidateCurrency(code string) error {
	if !currencyPattern.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrBadCurrency, code)
	}
	return nil
}

// NormalizeCurrency uppercases a currency code before validation.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
