package fractions

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Rounding selects how the last retained digit is rounded during formatting.
type Rounding uint8

const (
	// RoundDown truncates toward zero.
	RoundDown Rounding = iota
	// RoundHalfUp rounds to nearest, ties away from zero.
	RoundHalfUp
	// RoundUp rounds away from zero whenever any digit is dropped.
	RoundUp
)

// Format holds the recognized rendering options. The zero value renders with no
// group separator.
type Format struct {
	// GroupSeparator is inserted between thousands groups of the integer part.
	GroupSeparator string
}

// DefaultFormat renders with no group separator.
var DefaultFormat = Format{}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// roundQuo divides n by d on non-negative operands, rounding per mode.
func roundQuo(n, d *big.Int, rounding Rounding) *big.Int {
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	switch rounding {
	case RoundUp:
		q.Add(q, bigOne)
	case RoundHalfUp:
		if r.Lsh(r, 1).Cmp(d) >= 0 {
			q.Add(q, bigOne)
		}
	}
	return q
}

// formatSignificant rounds num/den to the requested significant digits and renders
// it with trailing fractional zeros trimmed, e.g. "1234", "1000", "0.0008104".
func formatSignificant(num, den *big.Int, digits int, format Format, rounding Rounding) string {
	absNum := new(big.Int).Abs(num)
	absDen := new(big.Int).Abs(den)
	negative := (num.Sign() < 0) != (den.Sign() < 0)

	if absNum.Sign() == 0 {
		return "0"
	}

	// decimalPlaces is the scale at which the last significant digit sits. It goes
	// negative when the value has more integer digits than requested, in which case
	// rounding happens inside the integer part ("1234" at 1 digit is "1000").
	var decimalPlaces int
	intPart := new(big.Int).Quo(absNum, absDen)
	if intPart.Sign() > 0 {
		decimalPlaces = digits - len(intPart.String())
	} else {
		leadingZeros := 0
		probe := new(big.Int).Set(absNum)
		for {
			probe.Mul(probe, bigTen)
			if probe.Cmp(absDen) >= 0 {
				break
			}
			leadingZeros++
		}
		decimalPlaces = digits + leadingZeros
	}

	var rendered string
	if decimalPlaces >= 0 {
		scaled := roundQuo(new(big.Int).Mul(absNum, pow10(decimalPlaces)), absDen, rounding)
		rendered = decimal.NewFromBigInt(scaled, int32(-decimalPlaces)).String()
	} else {
		unit := pow10(-decimalPlaces)
		scaled := roundQuo(absNum, new(big.Int).Mul(absDen, unit), rounding)
		rendered = decimal.NewFromBigInt(scaled.Mul(scaled, unit), 0).String()
	}
	if negative && rendered != "0" {
		rendered = "-" + rendered
	}
	return GroupDigits(rendered, format)
}

// formatFixed rounds num/den to exactly places decimal places, keeping trailing
// zeros, e.g. "1234.00", "0.0008104".
func formatFixed(num, den *big.Int, places int, format Format, rounding Rounding) string {
	absNum := new(big.Int).Abs(num)
	absDen := new(big.Int).Abs(den)
	negative := (num.Sign() < 0) != (den.Sign() < 0)

	scaled := roundQuo(new(big.Int).Mul(absNum, pow10(places)), absDen, rounding)
	rendered := decimal.NewFromBigInt(scaled, int32(-places)).StringFixed(int32(places))
	if negative && scaled.Sign() != 0 {
		rendered = "-" + rendered
	}
	return GroupDigits(rendered, format)
}

// GroupDigits inserts the group separator into the integer part of an already
// rendered decimal string. Exposed for sibling packages that render through
// shopspring/decimal directly.
func GroupDigits(s string, format Format) string {
	if format.GroupSeparator == "" {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(format.GroupSeparator)
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}
