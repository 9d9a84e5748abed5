package uniswapv2

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexquote/dexquote-go/fractions"
	"github.com/dexquote/dexquote-go/tokens"
)

var testFactory = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")

// newBigIntFromString is a helper function to create a big.Int from a string,
// which is necessary for numbers larger than a standard int64.
func newBigIntFromString(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("failed to set string for big.Int")
	}
	return n
}

func testToken(last byte, decimals uint8, symbol string) tokens.Token {
	addr := common.Address{}
	addr[common.AddressLength-1] = last
	return tokens.NewToken(1, addr, decimals, symbol, "")
}

func amountOf(t *testing.T, currency tokens.Currency, raw *big.Int) tokens.CurrencyAmount {
	t.Helper()
	a, err := tokens.NewCurrencyAmount(currency, raw)
	require.NoError(t, err)
	return a
}

func newTestPair(t *testing.T, tokenA, tokenB tokens.Token, reserveA, reserveB *big.Int) Pair {
	t.Helper()
	pair, err := NewPair(amountOf(t, tokenA, reserveA), amountOf(t, tokenB, reserveB), testFactory)
	require.NoError(t, err)
	return pair
}

func TestNewPairSortsTokens(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")

	forward := newTestPair(t, a, b, big.NewInt(100), big.NewInt(200))
	backward := newTestPair(t, b, a, big.NewInt(200), big.NewInt(100))

	for _, pair := range []Pair{forward, backward} {
		assert.True(t, pair.Token0().Equal(a))
		assert.True(t, pair.Token1().Equal(b))
		assert.Equal(t, big.NewInt(100), pair.Reserve0().Raw())
		assert.Equal(t, big.NewInt(200), pair.Reserve1().Raw())
	}
	assert.Equal(t, forward.Address(), backward.Address())
}

func TestNewPairValidation(t *testing.T) {
	a := testToken(1, 18, "A")
	sameAddressOtherChain := tokens.NewToken(8453, a.Address(), 18, "A", "")
	native := tokens.NewNativeCurrency(18, "ETH", "Ether")

	nativeAmount, err := tokens.NewCurrencyAmount(native, big.NewInt(1))
	require.NoError(t, err)

	_, err = NewPair(amountOf(t, a, big.NewInt(1)), amountOf(t, a, big.NewInt(1)), testFactory)
	assert.ErrorIs(t, err, ErrIdenticalTokens)

	_, err = NewPair(amountOf(t, a, big.NewInt(1)), amountOf(t, sameAddressOtherChain, big.NewInt(1)), testFactory)
	assert.ErrorIs(t, err, ErrMixedChains)

	_, err = NewPair(amountOf(t, a, big.NewInt(1)), nativeAmount, testFactory)
	assert.ErrorIs(t, err, ErrNotToken)
}

func TestPoolAddressDeterministic(t *testing.T) {
	// The canonical mainnet USDC/WETH pool, derived from the factory and the
	// sorted token pair alone.
	usdc := tokens.NewToken(1, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
	weth := tokens.NewToken(1, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether")

	want := common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc")
	assert.Equal(t, want, PoolAddress(testFactory, usdc, weth, InitCodeHash))
	assert.Equal(t, want, PoolAddress(testFactory, weth, usdc, InitCodeHash))
}

func TestInvolvesTokenAndReserveOf(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	c := testToken(3, 18, "C")
	pair := newTestPair(t, a, b, big.NewInt(100), big.NewInt(200))

	assert.True(t, pair.InvolvesToken(a))
	assert.True(t, pair.InvolvesToken(b))
	assert.False(t, pair.InvolvesToken(c))

	reserve, err := pair.ReserveOf(b)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), reserve.Raw())

	_, err = pair.ReserveOf(c)
	assert.ErrorIs(t, err, ErrTokenNotInPair)
}

func TestPairMidPrices(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	pair := newTestPair(t, a, b,
		newBigIntFromString("5000000000000000000"),
		newBigIntFromString("10000000000000000000"))

	priceA, err := pair.PriceOf(a)
	require.NoError(t, err)
	sig, err := priceA.ToSignificant(5, fractions.DefaultFormat, fractions.RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "2", sig)

	priceB, err := pair.PriceOf(b)
	require.NoError(t, err)
	sig, err = priceB.ToSignificant(5, fractions.DefaultFormat, fractions.RoundHalfUp)
	require.NoError(t, err)
	assert.Equal(t, "0.5", sig)

	_, err = pair.PriceOf(testToken(3, 18, "C"))
	assert.ErrorIs(t, err, ErrTokenNotInPair)
}

func TestGetOutputAmount(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	pair := newTestPair(t, a, b,
		newBigIntFromString("5000000000000000000"),
		newBigIntFromString("10000000000000000000"))

	out, next, err := pair.GetOutputAmount(amountOf(t, a, newBigIntFromString("1000000000000000000")))
	require.NoError(t, err)

	assert.Equal(t, newBigIntFromString("1662497915624478906"), out.Raw())
	assert.True(t, out.Currency().(tokens.Token).Equal(b))

	// The returned pair reflects the post-swap reserves.
	assert.Equal(t, newBigIntFromString("6000000000000000000"), next.Reserve0().Raw())
	assert.Equal(t, newBigIntFromString("8337502084375521094"), next.Reserve1().Raw())
	assert.Equal(t, pair.Address(), next.Address())

	// The original pair is untouched.
	assert.Equal(t, newBigIntFromString("5000000000000000000"), pair.Reserve0().Raw())
}

func TestGetInputAmount(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	pair := newTestPair(t, a, b,
		newBigIntFromString("5000000000000000000"),
		newBigIntFromString("10000000000000000000"))

	in, next, err := pair.GetInputAmount(amountOf(t, b, newBigIntFromString("1662497915624478906")))
	require.NoError(t, err)

	assert.Equal(t, newBigIntFromString("1000000000000000000"), in.Raw())
	assert.True(t, in.Currency().(tokens.Token).Equal(a))
	assert.Equal(t, newBigIntFromString("6000000000000000000"), next.Reserve0().Raw())
}

// Fee plus rounding must never favor the trader: swapping forward and then
// asking for that exact output back never requires less than the original input.
func TestRoundTripNeverFavorsTrader(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")

	testCases := []struct {
		name     string
		reserveA string
		reserveB string
		amountIn string
	}{
		{"balanced pool", "5000000000000000000", "10000000000000000000", "1000000000000000000"},
		{"skewed pool", "1000000000000000000000", "3000000000", "250000000000000000"},
		{"tiny amounts", "1000000", "1000000", "3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pair := newTestPair(t, a, b, newBigIntFromString(tc.reserveA), newBigIntFromString(tc.reserveB))
			in := amountOf(t, a, newBigIntFromString(tc.amountIn))

			out, _, err := pair.GetOutputAmount(in)
			require.NoError(t, err)

			// Against the original pair, as a fresh quote.
			backIn, _, err := pair.GetInputAmount(out)
			require.NoError(t, err)
			assert.True(t, backIn.Raw().Cmp(in.Raw()) >= 0,
				"round trip input %s below original %s", backIn.Raw(), in.Raw())
		})
	}
}

func TestGetOutputAmountFailures(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	c := testToken(3, 18, "C")

	drained := newTestPair(t, a, b, big.NewInt(0), big.NewInt(1000))
	_, _, err := drained.GetOutputAmount(amountOf(t, a, big.NewInt(10)))
	assert.ErrorIs(t, err, ErrInsufficientReserves)

	pair := newTestPair(t, a, b, newBigIntFromString("1000000000000"), big.NewInt(1000))
	_, _, err = pair.GetOutputAmount(amountOf(t, c, big.NewInt(10)))
	assert.ErrorIs(t, err, ErrTokenNotInPair)

	_, _, err = pair.GetOutputAmount(amountOf(t, a, big.NewInt(0)))
	assert.ErrorIs(t, err, ErrInsufficientInputAmount)

	// An input so small the output floors to zero.
	_, _, err = pair.GetOutputAmount(amountOf(t, a, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrInsufficientOutputAmount)
}

func TestGetInputAmountFailures(t *testing.T) {
	a := testToken(1, 18, "A")
	b := testToken(2, 18, "B")
	pair := newTestPair(t, a, b, big.NewInt(1000), big.NewInt(2000))

	// Requesting the entire reserve or more can never be satisfied.
	_, _, err := pair.GetInputAmount(amountOf(t, b, big.NewInt(2000)))
	assert.ErrorIs(t, err, ErrInsufficientReserves)
	_, _, err = pair.GetInputAmount(amountOf(t, b, big.NewInt(5000)))
	assert.ErrorIs(t, err, ErrInsufficientReserves)

	_, _, err = pair.GetInputAmount(amountOf(t, testToken(3, 18, "C"), big.NewInt(10)))
	assert.ErrorIs(t, err, ErrTokenNotInPair)
}
