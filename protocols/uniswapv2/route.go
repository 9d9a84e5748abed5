package uniswapv2

import (
	"github.com/dexquote/dexquote-go/pricing"
	"github.com/dexquote/dexquote-go/tokens"
)

// Route is a validated ordered chain of pairs connecting an input currency to an
// output currency. The token path is derived during construction: each pair must
// hold the traversal token of its step, and contributes its other token as the
// next step. Constructed once per quote; never mutated.
type Route struct {
	pairs  []Pair
	path   []tokens.Token
	input  tokens.Currency
	output tokens.Currency
}

// NewRoute validates the pair chain and derives the token path. The wrapped
// token stands in for the native currency at either endpoint. A nil output
// defaults to the last token of the derived path.
func NewRoute(pairs []Pair, wrapped tokens.Token, input tokens.Currency, output tokens.Currency) (*Route, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyRoute
	}
	chainID := pairs[0].ChainID()
	for _, pair := range pairs[1:] {
		if pair.ChainID() != chainID {
			return nil, ErrChainMismatch
		}
	}

	start, ok := input.(tokens.Token)
	if !ok {
		start = wrapped
	}
	if !pairs[0].InvolvesToken(start) {
		return nil, ErrInputNotInPair
	}
	if output != nil {
		end, ok := output.(tokens.Token)
		if !ok {
			end = wrapped
		}
		if !pairs[len(pairs)-1].InvolvesToken(end) {
			return nil, ErrOutputNotInPair
		}
	}

	path := make([]tokens.Token, 0, len(pairs)+1)
	path = append(path, start)
	for i, pair := range pairs {
		current := path[i]
		if !pair.InvolvesToken(current) {
			return nil, ErrDisconnectedRoute
		}
		next := pair.Token0()
		if current.Equal(next) {
			next = pair.Token1()
		}
		path = append(path, next)
	}

	if output == nil {
		output = path[len(path)-1]
	}
	return &Route{pairs: pairs, path: path, input: input, output: output}, nil
}

// Pairs returns the route's pair chain.
func (r *Route) Pairs() []Pair { return r.pairs }

// Path returns the derived token path, input side first.
func (r *Route) Path() []tokens.Token { return r.path }

// Input returns the route's input currency.
func (r *Route) Input() tokens.Currency { return r.input }

// Output returns the route's output currency.
func (r *Route) Output() tokens.Currency { return r.output }

// ChainID returns the chain id all pairs of the route share.
func (r *Route) ChainID() uint64 { return r.pairs[0].ChainID() }

// MidPrice composes each hop's direction-corrected spot price left to right:
// the rate an infinitesimally small trade would realize, fees ignored.
func (r *Route) MidPrice() (pricing.Price, error) {
	price := r.hopPrice(0)
	for i := 1; i < len(r.pairs); i++ {
		composed, err := price.Multiply(r.hopPrice(i))
		if err != nil {
			return pricing.Price{}, err
		}
		price = composed
	}
	return price, nil
}

// hopPrice is the spot price of hop i in traversal direction: reserveOut per
// reserveIn relative to the path token entering the hop.
func (r *Route) hopPrice(i int) pricing.Price {
	pair := r.pairs[i]
	if r.path[i].Equal(pair.Token0()) {
		return pricing.New(pair.Token0(), pair.Token1(), pair.Reserve0().Raw(), pair.Reserve1().Raw())
	}
	return pricing.New(pair.Token1(), pair.Token0(), pair.Reserve1().Raw(), pair.Reserve0().Raw())
}
