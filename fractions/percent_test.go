package fractions

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentRendersScaledByHundred(t *testing.T) {
	p := NewPercent(1, 100)

	sig, err := p.ToSignificant(5, DefaultFormat, RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "1", sig)

	fixed, err := p.ToFixed(2, DefaultFormat, RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "1.00", fixed)
}

func TestPercentKeepsRawFractionUnscaled(t *testing.T) {
	p := NewPercent(5, 100)
	assert.Equal(t, big.NewInt(5), p.Num())
	assert.Equal(t, big.NewInt(100), p.Den())

	// Arithmetic is inherited from Fraction and stays in raw terms: 5% + 1/4.
	sum := p.Add(NewInt(1).Divide(NewInt(4)))
	assert.True(t, sum.EqualTo(New(big.NewInt(3), big.NewInt(10))))
}

func TestPercentComparableWithFraction(t *testing.T) {
	p := NewPercent(30, 100)
	assert.True(t, p.GreaterThan(New(big.NewInt(1), big.NewInt(4))))
	assert.True(t, p.LessThan(New(big.NewInt(1), big.NewInt(2))))
}

func TestPercentString(t *testing.T) {
	impact := PercentFromFraction(New(
		newBigIntFromString("337502084375521094"),
		newBigIntFromString("2000000000000000000"),
	))
	assert.Equal(t, "16.875%", impact.String())

	long, err := impact.ToSignificant(18, DefaultFormat, RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "16.8751042187760547", long)
}
