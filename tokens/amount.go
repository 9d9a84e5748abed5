package tokens

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/dexquote/dexquote-go/fractions"
)

var (
	// ErrCurrencyMismatch is returned when combining amounts of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrAmountOverflow is returned when a raw amount does not fit in 256 bits.
	ErrAmountOverflow = errors.New("amount exceeds 256-bit bound")
	// ErrNegativeAmount is returned when a raw amount is negative.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

var (
	ten = big.NewInt(10)

	// precomputed 10^dec for typical ERC20 decimals (0..18)
	precomputedScales [19]*big.Int
)

func init() {
	precomputedScales[0] = big.NewInt(1)
	for i := 1; i < len(precomputedScales); i++ {
		precomputedScales[i] = new(big.Int).Mul(precomputedScales[i-1], ten)
	}
}

// decimalScale returns 10^dec. The returned value MUST NOT be modified: for
// dec <= 18 it is a shared precomputed big.Int.
func decimalScale(dec uint8) *big.Int {
	if int(dec) < len(precomputedScales) {
		return precomputedScales[dec]
	}
	return new(big.Int).Exp(ten, big.NewInt(int64(dec)), nil)
}

// CurrencyAmount is a raw smallest-unit integer amount tagged with its currency.
// The embedded fraction is raw/10^decimals, so the inherited formatting methods
// render the human-readable quantity.
type CurrencyAmount struct {
	fractions.Fraction
	currency Currency
}

// NewCurrencyAmount wraps a raw smallest-unit amount. The raw value must be
// non-negative and fit the 256-bit unsigned bound on-chain settlement uses;
// violating either is a construction-time error, never a silent wrap.
func NewCurrencyAmount(currency Currency, raw *big.Int) (CurrencyAmount, error) {
	if raw.Sign() < 0 {
		return CurrencyAmount{}, fmt.Errorf("%w: %s", ErrNegativeAmount, raw)
	}
	if _, overflow := uint256.FromBig(raw); overflow {
		return CurrencyAmount{}, fmt.Errorf("%w: %s", ErrAmountOverflow, raw)
	}
	return CurrencyAmount{
		Fraction: fractions.New(raw, decimalScale(currency.Decimals())),
		currency: currency,
	}, nil
}

// Currency returns the currency the amount is denominated in.
func (a CurrencyAmount) Currency() Currency {
	return a.currency
}

// Raw returns a copy of the smallest-unit integer amount.
func (a CurrencyAmount) Raw() *big.Int {
	return a.Num()
}

// Add returns a + other. Both amounts must share a currency.
func (a CurrencyAmount) Add(other CurrencyAmount) (CurrencyAmount, error) {
	if !CurrencyEqual(a.currency, other.currency) {
		return CurrencyAmount{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, a.currency.Symbol(), other.currency.Symbol())
	}
	return NewCurrencyAmount(a.currency, new(big.Int).Add(a.Raw(), other.Raw()))
}

// Subtract returns a - other. Both amounts must share a currency.
func (a CurrencyAmount) Subtract(other CurrencyAmount) (CurrencyAmount, error) {
	if !CurrencyEqual(a.currency, other.currency) {
		return CurrencyAmount{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, a.currency.Symbol(), other.currency.Symbol())
	}
	return NewCurrencyAmount(a.currency, new(big.Int).Sub(a.Raw(), other.Raw()))
}

// ToExact renders the amount at the currency's full declared precision with
// trailing zeros trimmed, e.g. "1234.567" for raw 1234567000000000000000 at 18
// decimals.
func (a CurrencyAmount) ToExact(format fractions.Format) string {
	d := decimal.NewFromBigInt(a.Raw(), -int32(a.currency.Decimals()))
	return fractions.GroupDigits(d.String(), format)
}
