package uniswapv2

import (
	"fmt"

	"github.com/dexquote/dexquote-go/fractions"
	"github.com/dexquote/dexquote-go/pricing"
	"github.com/dexquote/dexquote-go/tokens"
)

// TradeType chooses which side of the trade the caller fixes.
type TradeType uint8

const (
	// ExactInput fixes the input amount and computes the output.
	ExactInput TradeType = iota
	// ExactOutput fixes the output amount and computes the required input.
	ExactOutput
)

func (t TradeType) String() string {
	if t == ExactOutput {
		return "exact output"
	}
	return "exact input"
}

// Trade is a fully computed swap over a route: both amounts, the realized
// execution price, the post-trade mid-price and the price impact. Exactly one
// amount is supplied by the caller; the other is derived by folding the route's
// pairs hop by hop, carrying each hop's updated pool state forward. Construction
// either yields a complete Trade or fails; partial trades are never returned.
type Trade struct {
	route          *Route
	tradeType      TradeType
	inputAmount    tokens.CurrencyAmount
	outputAmount   tokens.CurrencyAmount
	executionPrice pricing.Price
	nextMidPrice   pricing.Price
	priceImpact    fractions.Percent
}

// NewTrade computes a swap of the given type over the route. For ExactInput the
// amount is the route input and the fold runs forward through GetOutputAmount;
// for ExactOutput it is the route output and the fold runs backward through
// GetInputAmount. The wrapped token stands in for the native currency during
// the fold; reported amounts keep the caller's currencies.
func NewTrade(route *Route, amount tokens.CurrencyAmount, tradeType TradeType, wrapped tokens.Token) (*Trade, error) {
	fixed := route.Input()
	if tradeType == ExactOutput {
		fixed = route.Output()
	}
	if !tokens.CurrencyEqual(amount.Currency(), fixed) {
		return nil, fmt.Errorf("%w: %s amount in %s against route %s",
			tokens.ErrCurrencyMismatch, tradeType, amount.Currency().Symbol(), fixed.Symbol())
	}

	pairs := route.Pairs()
	amounts := make([]tokens.CurrencyAmount, len(pairs)+1)
	nextPairs := make([]Pair, len(pairs))

	var err error
	if tradeType == ExactInput {
		if amounts[0], err = wrapAmount(amount, wrapped); err != nil {
			return nil, err
		}
		for i, pair := range pairs {
			amounts[i+1], nextPairs[i], err = pair.GetOutputAmount(amounts[i])
			if err != nil {
				return nil, err
			}
		}
	} else {
		if amounts[len(pairs)], err = wrapAmount(amount, wrapped); err != nil {
			return nil, err
		}
		for i := len(pairs) - 1; i >= 0; i-- {
			amounts[i], nextPairs[i], err = pairs[i].GetInputAmount(amounts[i+1])
			if err != nil {
				return nil, err
			}
		}
	}

	inputAmount, err := tokens.NewCurrencyAmount(route.Input(), amounts[0].Raw())
	if err != nil {
		return nil, err
	}
	outputAmount, err := tokens.NewCurrencyAmount(route.Output(), amounts[len(amounts)-1].Raw())
	if err != nil {
		return nil, err
	}

	nextRoute, err := NewRoute(nextPairs, wrapped, route.Input(), route.Output())
	if err != nil {
		return nil, err
	}
	nextMidPrice, err := nextRoute.MidPrice()
	if err != nil {
		return nil, err
	}

	midPrice, err := route.MidPrice()
	if err != nil {
		return nil, err
	}
	impact := computePriceImpact(midPrice, inputAmount, outputAmount)

	return &Trade{
		route:          route,
		tradeType:      tradeType,
		inputAmount:    inputAmount,
		outputAmount:   outputAmount,
		executionPrice: pricing.New(inputAmount.Currency(), outputAmount.Currency(), inputAmount.Raw(), outputAmount.Raw()),
		nextMidPrice:   nextMidPrice,
		priceImpact:    impact,
	}, nil
}

// Route returns the route the trade was computed over, with pre-trade reserves.
func (t *Trade) Route() *Route { return t.route }

// Type returns the trade direction.
func (t *Trade) Type() TradeType { return t.tradeType }

// InputAmount returns the amount paid in, in the route's input currency.
func (t *Trade) InputAmount() tokens.CurrencyAmount { return t.inputAmount }

// OutputAmount returns the amount received, in the route's output currency.
func (t *Trade) OutputAmount() tokens.CurrencyAmount { return t.outputAmount }

// ExecutionPrice is the realized rate outputAmount/inputAmount. It is never
// better than the route's mid-price: the fee and the invariant's convexity both
// work against the trader.
func (t *Trade) ExecutionPrice() pricing.Price { return t.executionPrice }

// NextMidPrice is the route's mid-price against the post-trade reserves.
func (t *Trade) NextMidPrice() pricing.Price { return t.nextMidPrice }

// PriceImpact is the fractional degradation of the execution price relative to
// the pre-trade mid-price. Downstream minimum-output guards consume this, so it
// is computed with exact fraction arithmetic end to end.
func (t *Trade) PriceImpact() fractions.Percent { return t.priceImpact }

// computePriceImpact: with exactQuote the output a trade at the untouched
// mid-price would have produced, impact = (exactQuote - output) / exactQuote.
func computePriceImpact(midPrice pricing.Price, inputAmount, outputAmount tokens.CurrencyAmount) fractions.Percent {
	exactQuote := midPrice.Raw().Multiply(fractions.FromBig(inputAmount.Raw()))
	impact := exactQuote.Subtract(fractions.FromBig(outputAmount.Raw())).Divide(exactQuote)
	return fractions.PercentFromFraction(impact)
}

// wrapAmount substitutes the wrapped token for a native-currency amount so pair
// math always runs over tokens.
func wrapAmount(amount tokens.CurrencyAmount, wrapped tokens.Token) (tokens.CurrencyAmount, error) {
	if !amount.Currency().IsNative() {
		return amount, nil
	}
	return tokens.NewCurrencyAmount(wrapped, amount.Raw())
}
