package uniswapv2

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexquote/dexquote-go/fractions"
	"github.com/dexquote/dexquote-go/tokens"
)

// Mirrors the layout used throughout: three 0-decimal tokens chained into an
// 18-decimal wrapped-native token, with unit reserves except the last hop.
type routeFixture struct {
	tokens  []tokens.Token
	wrapped tokens.Token
	pairs   []Pair
}

func newRouteFixture(t *testing.T) routeFixture {
	t.Helper()
	ts := []tokens.Token{
		testToken(1, 0, "T0"),
		testToken(2, 0, "T1"),
		testToken(3, 0, "T2"),
	}
	wrapped := testToken(4, 18, "WETH")
	pairs := []Pair{
		newTestPair(t, ts[0], ts[1], big.NewInt(1), big.NewInt(1)),
		newTestPair(t, ts[1], ts[2], big.NewInt(1), big.NewInt(1)),
		newTestPair(t, ts[2], wrapped, big.NewInt(1), newBigIntFromString("1234000000000000000000")),
	}
	return routeFixture{tokens: ts, wrapped: wrapped, pairs: pairs}
}

func TestNewRoutePathDerivation(t *testing.T) {
	fx := newRouteFixture(t)

	route, err := NewRoute(fx.pairs, fx.wrapped, fx.tokens[0], nil)
	require.NoError(t, err)

	require.Len(t, route.Path(), 4)
	for i, expected := range []tokens.Token{fx.tokens[0], fx.tokens[1], fx.tokens[2], fx.wrapped} {
		assert.True(t, route.Path()[i].Equal(expected), "path[%d]", i)
	}
	assert.True(t, tokens.CurrencyEqual(route.Input(), fx.tokens[0]))
	assert.True(t, tokens.CurrencyEqual(route.Output(), fx.wrapped), "output defaults to the last path token")
	assert.Equal(t, uint64(1), route.ChainID())
}

func TestNewRouteValidation(t *testing.T) {
	fx := newRouteFixture(t)
	otherChainToken := func(last byte) tokens.Token {
		a := testToken(last, 18, "X")
		return tokens.NewToken(8453, a.Address(), 18, "X", "")
	}

	foreignPair, err := NewPair(
		amountOf(t, otherChainToken(1), big.NewInt(1)),
		amountOf(t, otherChainToken(2), big.NewInt(1)),
		testFactory,
	)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		pairs       []Pair
		input       tokens.Currency
		output      tokens.Currency
		expectedErr error
	}{
		{"empty pair list", nil, fx.tokens[0], nil, ErrEmptyRoute},
		{"mixed chain ids", []Pair{fx.pairs[0], foreignPair}, fx.tokens[0], nil, ErrChainMismatch},
		{"input absent from first pair", fx.pairs, fx.tokens[2], nil, ErrInputNotInPair},
		{"output absent from last pair", fx.pairs, fx.tokens[0], fx.tokens[0], ErrOutputNotInPair},
		{"second pair shares no token with the first's exit", []Pair{fx.pairs[0], fx.pairs[2]}, fx.tokens[0], nil, ErrDisconnectedRoute},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRoute(tc.pairs, fx.wrapped, tc.input, tc.output)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, ErrInvalidRoute, "every validation failure wraps ErrInvalidRoute")
		})
	}
}

func TestNewRouteNativeInput(t *testing.T) {
	fx := newRouteFixture(t)
	native := tokens.NewNativeCurrency(18, "ETH", "Ether")

	// Traversed backward the route starts at the wrapped token, which stands in
	// for the native currency.
	reversed := []Pair{fx.pairs[2], fx.pairs[1], fx.pairs[0]}
	route, err := NewRoute(reversed, fx.wrapped, native, nil)
	require.NoError(t, err)
	assert.True(t, route.Path()[0].Equal(fx.wrapped))
	assert.True(t, route.Input().IsNative())

	// A wrapped token outside the first pair still fails.
	_, err = NewRoute([]Pair{fx.pairs[0]}, fx.wrapped, native, nil)
	assert.ErrorIs(t, err, ErrInputNotInPair)
}

func TestRouteMidPrice(t *testing.T) {
	fx := newRouteFixture(t)
	route, err := NewRoute(fx.pairs, fx.wrapped, fx.tokens[0], nil)
	require.NoError(t, err)

	mid, err := route.MidPrice()
	require.NoError(t, err)

	sigCases := []struct {
		digits   int
		expected string
	}{
		{1, "1000"}, {2, "1200"}, {3, "1230"}, {4, "1234"}, {5, "1234"},
	}
	for _, tc := range sigCases {
		got, err := mid.ToSignificant(tc.digits, fractions.DefaultFormat, fractions.RoundHalfUp)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "significant digits %d", tc.digits)
	}

	grouped, err := mid.ToSignificant(5, fractions.Format{GroupSeparator: ","}, fractions.RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "1,234", grouped)

	inverted, err := mid.Invert().ToSignificant(5, fractions.DefaultFormat, fractions.RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "0.00081037", inverted)

	down, err := mid.Invert().ToSignificant(4, fractions.DefaultFormat, fractions.RoundDown)
	require.NoError(t, err)
	assert.Equal(t, "0.0008103", down)
}

func TestRouteMidPriceQuotesWholeUnits(t *testing.T) {
	fx := newRouteFixture(t)
	route, err := NewRoute(fx.pairs, fx.wrapped, fx.tokens[0], nil)
	require.NoError(t, err)

	mid, err := route.MidPrice()
	require.NoError(t, err)

	// One unit of the 0-decimal input buys exactly 1234 wrapped units.
	out, err := mid.Quote(amountOf(t, fx.tokens[0], big.NewInt(1)))
	require.NoError(t, err)
	assert.Equal(t, newBigIntFromString("1234000000000000000000"), out.Raw())

	back, err := mid.Invert().Quote(out)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), back.Raw())
}
