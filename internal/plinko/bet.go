package plinko

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Bet limits. Exponents are checked before any arithmetic so that inputs
// like "1e-30000000" are rejected without being expanded.
const (
	MaxBetScale  = 8  // decimal places
	MaxBetDigits = 15 // digits before the decimal point
	maxBetExp    = 64
)

var (
	ErrInvalidBet        = errors.New("invalid bet; must be a positive number")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ParseBet reads raw user input. Only positive finite numbers are accepted.
func ParseBet(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidBet)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidBet, raw)
	}
	return checkBet(d)
}

// BetFromFloat accepts a numeric bet, rejecting NaN and infinities.
func BetFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidBet, f)
	}
	return checkBet(decimal.NewFromFloat(f))
}

func checkBet(d decimal.Decimal) (decimal.Decimal, error) {
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidBet, d.String())
	}
	exp := int(d.Exponent())
	if exp < -maxBetExp || exp > maxBetExp {
		return decimal.Zero, fmt.Errorf("%w: exponent %d out of range", ErrInvalidBet, exp)
	}
	if d.NumDigits()+exp > MaxBetDigits {
		return decimal.Zero, fmt.Errorf("%w: more than %d integer digits", ErrInvalidBet, MaxBetDigits)
	}
	if !d.Truncate(MaxBetScale).Equal(d) {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places", ErrInvalidBet, MaxBetScale)
	}
	return d, nil
}
