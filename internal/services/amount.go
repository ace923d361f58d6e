package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxAmountText     = 64
	maxAmountExponent = 18
)

// decimal(20,2) leaves 18 integer digits
var maxAmount = decimal.New(1, maxAmountExponent)

var ErrAmountRange = errors.New("amount out of range")

// ParseAmount parses a decimal amount and rounds it to cents. Text length
// and exponent are bounded before any arithmetic: rescaling cost grows with
// the exponent.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountText {
		return decimal.Zero, ErrAmountRange
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountText {
		return decimal.Zero, ErrAmountRange
	}

	d = d.Round(2)
	if d.Abs().Cmp(maxAmount) >= 0 {
		return decimal.Zero, ErrAmountRange
	}
	return d, nil
}
