// Package pricing implements directional exchange rates between two currencies.
package pricing

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dexquote/dexquote-go/fractions"
	"github.com/dexquote/dexquote-go/tokens"
)

var (
	// ErrBaseCurrencyMismatch is returned when quoting an amount that is not
	// denominated in the price's base currency.
	ErrBaseCurrencyMismatch = errors.New("amount currency does not match base currency")
	// ErrPriceComposition is returned when multiplying prices whose currencies do
	// not chain (p.quote must equal other.base).
	ErrPriceComposition = errors.New("prices do not share a common currency")
)

// Price is the exchange rate from a base currency into a quote currency. The raw
// fraction is quote smallest-units per base smallest-unit; the scalar
// 10^baseDecimals/10^quoteDecimals lifts it to the human-readable rate, so two
// prices over tokens with different decimal counts still compose by plain
// multiplication of their raw fractions. Immutable.
type Price struct {
	base     tokens.Currency
	quote    tokens.Currency
	scalar   fractions.Fraction
	fraction fractions.Fraction
}

// New builds a price from two raw smallest-unit amounts: numerator quote units
// per denominator base units.
func New(base, quote tokens.Currency, denominator, numerator *big.Int) Price {
	return FromFraction(base, quote, fractions.New(numerator, denominator))
}

// FromFraction builds a price from an already computed raw fraction (quote
// smallest-units per base smallest-unit).
func FromFraction(base, quote tokens.Currency, raw fractions.Fraction) Price {
	scale := func(dec uint8) *big.Int {
		return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dec)), nil)
	}
	return Price{
		base:     base,
		quote:    quote,
		scalar:   fractions.New(scale(base.Decimals()), scale(quote.Decimals())),
		fraction: raw,
	}
}

// BaseCurrency returns the currency one unit of which the price is quoted for.
func (p Price) BaseCurrency() tokens.Currency { return p.base }

// QuoteCurrency returns the currency the price is expressed in.
func (p Price) QuoteCurrency() tokens.Currency { return p.quote }

// Raw returns the underlying fraction in smallest-unit terms.
func (p Price) Raw() fractions.Fraction { return p.fraction }

// Adjusted returns the decimal-scale-corrected fraction: quote units per one base
// unit in human-readable terms.
func (p Price) Adjusted() fractions.Fraction { return p.fraction.Multiply(p.scalar) }

// Invert returns the price in the opposite direction. Invert of Invert is equal,
// not merely approximately equal, to the original.
func (p Price) Invert() Price {
	return FromFraction(p.quote, p.base, p.fraction.Invert())
}

// Multiply composes two prices along a conversion chain: base -> p.quote ==
// other.base -> other.quote. Raw fractions are already decimal-normalized, so
// they multiply directly.
func (p Price) Multiply(other Price) (Price, error) {
	if !tokens.CurrencyEqual(p.quote, other.base) {
		return Price{}, fmt.Errorf("%w: %s vs %s", ErrPriceComposition, p.quote.Symbol(), other.base.Symbol())
	}
	return FromFraction(p.base, other.quote, p.fraction.Multiply(other.fraction)), nil
}

// Quote converts an amount of the base currency into the quote currency,
// flooring to a whole number of smallest units.
func (p Price) Quote(amount tokens.CurrencyAmount) (tokens.CurrencyAmount, error) {
	if !tokens.CurrencyEqual(amount.Currency(), p.base) {
		return tokens.CurrencyAmount{}, fmt.Errorf("%w: have %s, want %s",
			ErrBaseCurrencyMismatch, amount.Currency().Symbol(), p.base.Symbol())
	}
	raw := p.fraction.Multiply(fractions.FromBig(amount.Raw())).Quotient()
	return tokens.NewCurrencyAmount(p.quote, raw)
}

// Equal reports whether two prices have the same endpoints and exactly the same
// value (cross-multiplied, so 2/4 equals 1/2).
func (p Price) Equal(other Price) bool {
	return tokens.CurrencyEqual(p.base, other.base) &&
		tokens.CurrencyEqual(p.quote, other.quote) &&
		p.fraction.EqualTo(other.fraction)
}

// ToSignificant renders the adjusted rate to the given significant digits.
func (p Price) ToSignificant(significantDigits int, format fractions.Format, rounding fractions.Rounding) (string, error) {
	return p.Adjusted().ToSignificant(significantDigits, format, rounding)
}

// ToFixed renders the adjusted rate to a fixed number of decimal places.
func (p Price) ToFixed(decimalPlaces int, format fractions.Format, rounding fractions.Rounding) (string, error) {
	return p.Adjusted().ToFixed(decimalPlaces, format, rounding)
}
