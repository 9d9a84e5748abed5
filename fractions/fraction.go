// Package fractions implements exact rational arithmetic over arbitrary-precision
// integers. Fractions are never reduced to lowest terms; comparisons cross-multiply
// instead, so no precision is ever lost before the final formatting step.
package fractions

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidSignificantDigits is returned when ToSignificant is called with a
	// non-positive digit count.
	ErrInvalidSignificantDigits = errors.New("significant digits must be positive")
	// ErrInvalidDecimalPlaces is returned when ToFixed is called with a negative
	// number of decimal places.
	ErrInvalidDecimalPlaces = errors.New("decimal places must be non-negative")
	// ErrZeroDenominator is returned when formatting a fraction whose denominator
	// is zero.
	ErrZeroDenominator = errors.New("fraction denominator is zero")
)

// Fraction is an immutable rational number. Constructors copy their operands and
// every operation returns a new value, so a Fraction can be shared freely across
// goroutines. Callers must keep denominators non-zero; internal constructors keep
// them positive, which the cross-multiplied comparisons rely on.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// New returns the fraction numerator/denominator.
func New(numerator, denominator *big.Int) Fraction {
	return Fraction{
		num: new(big.Int).Set(numerator),
		den: new(big.Int).Set(denominator),
	}
}

// NewInt returns the fraction n/1.
func NewInt(n int64) Fraction {
	return Fraction{num: big.NewInt(n), den: big.NewInt(1)}
}

// FromBig returns the fraction n/1.
func FromBig(n *big.Int) Fraction {
	return Fraction{num: new(big.Int).Set(n), den: big.NewInt(1)}
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int {
	return new(big.Int).Set(f.num)
}

// Den returns a copy of the denominator.
func (f Fraction) Den() *big.Int {
	return new(big.Int).Set(f.den)
}

// Sign returns -1, 0 or +1 depending on the sign of the fraction's value.
func (f Fraction) Sign() int {
	return f.num.Sign() * f.den.Sign()
}

// Quotient performs floor division of the numerator by the denominator.
func (f Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.num, f.den)
}

// Remainder returns the remainder after floor division, over the same denominator.
func (f Fraction) Remainder() Fraction {
	return Fraction{
		num: new(big.Int).Rem(f.num, f.den),
		den: new(big.Int).Set(f.den),
	}
}

// Invert swaps numerator and denominator.
func (f Fraction) Invert() Fraction {
	return Fraction{num: new(big.Int).Set(f.den), den: new(big.Int).Set(f.num)}
}

// Add returns f + other. Equal denominators combine numerators directly,
// anything else cross-multiplies.
func (f Fraction) Add(other Fraction) Fraction {
	if f.den.Cmp(other.den) == 0 {
		return Fraction{
			num: new(big.Int).Add(f.num, other.num),
			den: new(big.Int).Set(f.den),
		}
	}
	return Fraction{
		num: new(big.Int).Add(
			new(big.Int).Mul(f.num, other.den),
			new(big.Int).Mul(other.num, f.den),
		),
		den: new(big.Int).Mul(f.den, other.den),
	}
}

// Subtract returns f - other.
func (f Fraction) Subtract(other Fraction) Fraction {
	if f.den.Cmp(other.den) == 0 {
		return Fraction{
			num: new(big.Int).Sub(f.num, other.num),
			den: new(big.Int).Set(f.den),
		}
	}
	return Fraction{
		num: new(big.Int).Sub(
			new(big.Int).Mul(f.num, other.den),
			new(big.Int).Mul(other.num, f.den),
		),
		den: new(big.Int).Mul(f.den, other.den),
	}
}

// Multiply returns f * other.
func (f Fraction) Multiply(other Fraction) Fraction {
	return Fraction{
		num: new(big.Int).Mul(f.num, other.num),
		den: new(big.Int).Mul(f.den, other.den),
	}
}

// Divide returns f / other.
func (f Fraction) Divide(other Fraction) Fraction {
	return Fraction{
		num: new(big.Int).Mul(f.num, other.den),
		den: new(big.Int).Mul(f.den, other.num),
	}
}

// LessThan reports whether f < other, by cross-multiplication.
func (f Fraction) LessThan(other Fraction) bool {
	return new(big.Int).Mul(f.num, other.den).Cmp(new(big.Int).Mul(other.num, f.den)) < 0
}

// EqualTo reports whether f == other, by cross-multiplication. Two fractions with
// different components but the same value compare equal.
func (f Fraction) EqualTo(other Fraction) bool {
	return new(big.Int).Mul(f.num, other.den).Cmp(new(big.Int).Mul(other.num, f.den)) == 0
}

// GreaterThan reports whether f > other, by cross-multiplication.
func (f Fraction) GreaterThan(other Fraction) bool {
	return new(big.Int).Mul(f.num, other.den).Cmp(new(big.Int).Mul(other.num, f.den)) > 0
}

// ToSignificant renders the fraction rounded to the given number of significant
// digits, trimming trailing fractional zeros. The format controls grouping of the
// integer part only.
func (f Fraction) ToSignificant(significantDigits int, format Format, rounding Rounding) (string, error) {
	if significantDigits <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidSignificantDigits, significantDigits)
	}
	if f.den.Sign() == 0 {
		return "", ErrZeroDenominator
	}
	return formatSignificant(f.num, f.den, significantDigits, format, rounding), nil
}

// ToFixed renders the fraction rounded to exactly decimalPlaces decimal places,
// padding with zeros as needed.
func (f Fraction) ToFixed(decimalPlaces int, format Format, rounding Rounding) (string, error) {
	if decimalPlaces < 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidDecimalPlaces, decimalPlaces)
	}
	if f.den.Sign() == 0 {
		return "", ErrZeroDenominator
	}
	return formatFixed(f.num, f.den, decimalPlaces, format, rounding), nil
}
