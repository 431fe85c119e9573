// Package tagged provides runtime-checked numeric kinds used throughout the
// projection engine. Every item constructor validates its numeric inputs
// through these helpers so that malformed model data (NaN rates, negative
// probabilities, zero growth multipliers) fails at construction time instead
// of surfacing as silently wrong projections hundreds of periods later.
package tagged

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Probability is a value in [0, 1].
type Probability float64

// Age is a fractional age in years, in [0, 125).
type Age float64

// Year is a calendar year within the range the engine can simulate.
type Year int

// NewProbability validates v as a probability.
func NewProbability(v float64) (Probability, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("probability must be in [0,1], got %v", v)
	}
	return Probability(v), nil
}

// NewAge validates v as a fractional age in years.
func NewAge(v float64) (Age, error) {
	if math.IsNaN(v) || v < 0 || v >= 125 {
		return 0, fmt.Errorf("age must be in [0,125), got %v", v)
	}
	return Age(v), nil
}

// NewYear validates v as a simulatable calendar year.
func NewYear(v int) (Year, error) {
	if v < 1850 || v > 2200 {
		return 0, fmt.Errorf("year must be in [1850,2200], got %d", v)
	}
	return Year(v), nil
}

// Money validates v as a finite monetary amount and returns it rounded to
// cent precision.
func Money(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, fmt.Errorf("money must be finite, got %v", v)
	}
	return decimal.NewFromFloat(v).Round(2), nil
}

// Rate validates v as a growth/interest multiplier. A rate of exactly zero is
// rejected: a multiplicative factor of 0 is meaningless and indicates a
// configuration error (the author probably meant 1.0).
func Rate(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Decimal{}, fmt.Errorf("rate must be a positive multiplier, got %v", v)
	}
	return decimal.NewFromFloat(v), nil
}

// Cents rounds d to cent precision. Applied at every computed step (interest,
// payments, withdrawals) so that accumulation drift cannot build up across a
// multi-decade run.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
