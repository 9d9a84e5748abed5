package fractions

import "math/big"

var oneHundred = NewInt(100)

// Percent is a Fraction that renders as a percentage. The stored fraction keeps
// its raw value (0.05 for 5%); only the formatted output is scaled by 100.
// Arithmetic and comparisons come from the embedded Fraction unchanged, so a
// Percent combines freely with plain Fractions.
type Percent struct {
	Fraction
}

// NewPercent returns the percentage numerator/denominator, e.g. 1/100 for 1%.
func NewPercent(numerator, denominator int64) Percent {
	return Percent{New(big.NewInt(numerator), big.NewInt(denominator))}
}

// PercentFromFraction wraps an existing fraction as a Percent.
func PercentFromFraction(f Fraction) Percent {
	return Percent{f}
}

// ToSignificant renders the percentage value (fraction times 100).
func (p Percent) ToSignificant(significantDigits int, format Format, rounding Rounding) (string, error) {
	return p.Fraction.Multiply(oneHundred).ToSignificant(significantDigits, format, rounding)
}

// ToFixed renders the percentage value (fraction times 100).
func (p Percent) ToFixed(decimalPlaces int, format Format, rounding Rounding) (string, error) {
	return p.Fraction.Multiply(oneHundred).ToFixed(decimalPlaces, format, rounding)
}

// String renders the default five-significant-digit percentage, e.g. "16.875%".
// Formatting a valid percent cannot fail, so errors are swallowed here.
func (p Percent) String() string {
	s, err := p.ToSignificant(5, DefaultFormat, RoundHalfUp)
	if err != nil {
		return "<invalid percent>"
	}
	return s + "%"
}
