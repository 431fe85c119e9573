package tagged

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbabilityBounds(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		p, err := NewProbability(v)
		require.NoError(t, err)
		assert.Equal(t, Probability(v), p)
	}
	for _, v := range []float64{-0.001, 1.001, math.NaN()} {
		_, err := NewProbability(v)
		assert.Error(t, err, "%v", v)
	}
}

func TestAgeBounds(t *testing.T) {
	_, err := NewAge(124.99)
	assert.NoError(t, err)
	for _, v := range []float64{-1, 125, math.NaN()} {
		_, err := NewAge(v)
		assert.Error(t, err, "%v", v)
	}
}

func TestYearBounds(t *testing.T) {
	_, err := NewYear(2025)
	assert.NoError(t, err)
	_, err = NewYear(1849)
	assert.Error(t, err)
	_, err = NewYear(2201)
	assert.Error(t, err)
}

func TestMoneyRoundsToCents(t *testing.T) {
	m, err := Money(1234.567)
	require.NoError(t, err)
	assert.Equal(t, "1234.57", m.StringFixed(2))

	_, err = Money(math.Inf(1))
	assert.Error(t, err)
	_, err = Money(math.NaN())
	assert.Error(t, err)
}

func TestRateRejectsNonPositive(t *testing.T) {
	r, err := Rate(1.07)
	require.NoError(t, err)
	assert.True(t, r.GreaterThan(decimal.NewFromInt(1)))

	for _, v := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		_, err := Rate(v)
		assert.Error(t, err, "%v", v)
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, "10.01", Cents(decimal.NewFromFloat(10.005)).StringFixed(2))
	assert.Equal(t, "-2.35", Cents(decimal.NewFromFloat(-2.345)).StringFixed(2))
}
