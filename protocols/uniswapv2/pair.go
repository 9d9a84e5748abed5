// Package uniswapv2 models constant-product liquidity pools and exact swap
// quoting over them: pairs, multi-hop routes and trades. Reserves are
// point-in-time snapshots supplied by the caller; every type here is an
// immutable value and all operations are pure.
package uniswapv2

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dexquote/dexquote-go/pricing"
	"github.com/dexquote/dexquote-go/protocols/uniswapv2/calculator"
	"github.com/dexquote/dexquote-go/tokens"
)

// FeeBps is the fixed proportional swap fee in basis points: 30 bps, i.e. the
// canonical 997/1000 factor pair, taken from the input before the invariant
// applies.
const FeeBps uint16 = 30

// Pair is a liquidity pool snapshot: two token reserves in canonical order
// (token0 sorts before token1 by address) plus the pool's deterministic on-chain
// identity. Refreshed reserves mean constructing a new Pair; a Pair is never
// mutated, which keeps multi-hop folds free of aliasing bugs.
type Pair struct {
	factory  common.Address
	address  common.Address
	reserve0 tokens.CurrencyAmount
	reserve1 tokens.CurrencyAmount
}

// NewPair builds a pool snapshot from two reserves in either order. Both
// reserves must be token amounts on the same chain over distinct tokens.
func NewPair(amountA, amountB tokens.CurrencyAmount, factory common.Address) (Pair, error) {
	tokenA, okA := amountA.Currency().(tokens.Token)
	tokenB, okB := amountB.Currency().(tokens.Token)
	if !okA || !okB {
		return Pair{}, ErrNotToken
	}
	if tokenA.Equal(tokenB) {
		return Pair{}, fmt.Errorf("%w: %s", ErrIdenticalTokens, tokenA.Address())
	}
	if tokenA.ChainID() != tokenB.ChainID() {
		return Pair{}, fmt.Errorf("%w: %d vs %d", ErrMixedChains, tokenA.ChainID(), tokenB.ChainID())
	}

	reserve0, reserve1 := amountA, amountB
	if tokenB.SortsBefore(tokenA) {
		reserve0, reserve1 = amountB, amountA
	}
	return Pair{
		factory:  factory,
		address:  PoolAddress(factory, tokenA, tokenB, InitCodeHash),
		reserve0: reserve0,
		reserve1: reserve1,
	}, nil
}

// Token0 returns the lower-address token of the pair.
func (p Pair) Token0() tokens.Token { return p.reserve0.Currency().(tokens.Token) }

// Token1 returns the higher-address token of the pair.
func (p Pair) Token1() tokens.Token { return p.reserve1.Currency().(tokens.Token) }

// Reserve0 returns the reserve of token0.
func (p Pair) Reserve0() tokens.CurrencyAmount { return p.reserve0 }

// Reserve1 returns the reserve of token1.
func (p Pair) Reserve1() tokens.CurrencyAmount { return p.reserve1 }

// Factory returns the factory contract the pool belongs to.
func (p Pair) Factory() common.Address { return p.factory }

// Address returns the pool's CREATE2-derived contract address.
func (p Pair) Address() common.Address { return p.address }

// ChainID returns the chain both reserves live on.
func (p Pair) ChainID() uint64 { return p.Token0().ChainID() }

// InvolvesToken reports whether the token is one of the pair's two tokens.
func (p Pair) InvolvesToken(token tokens.Token) bool {
	return token.Equal(p.Token0()) || token.Equal(p.Token1())
}

// ReserveOf returns the reserve held in the given token.
func (p Pair) ReserveOf(token tokens.Token) (tokens.CurrencyAmount, error) {
	switch {
	case token.Equal(p.Token0()):
		return p.reserve0, nil
	case token.Equal(p.Token1()):
		return p.reserve1, nil
	default:
		return tokens.CurrencyAmount{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, token)
	}
}

// Token0Price returns the spot price of token0 denominated in token1.
func (p Pair) Token0Price() pricing.Price {
	return pricing.New(p.Token0(), p.Token1(), p.reserve0.Raw(), p.reserve1.Raw())
}

// Token1Price returns the spot price of token1 denominated in token0.
func (p Pair) Token1Price() pricing.Price {
	return pricing.New(p.Token1(), p.Token0(), p.reserve1.Raw(), p.reserve0.Raw())
}

// PriceOf returns the instantaneous spot price of the given token in terms of
// the other, from the reserve ratio alone. The fee only affects realized trades,
// never the quoted mid-price.
func (p Pair) PriceOf(token tokens.Token) (pricing.Price, error) {
	switch {
	case token.Equal(p.Token0()):
		return p.Token0Price(), nil
	case token.Equal(p.Token1()):
		return p.Token1Price(), nil
	default:
		return pricing.Price{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, token)
	}
}

// GetOutputAmount computes the output produced by swapping inputAmount into the
// pool, and the pool snapshot after that swap (input reserve grown, output
// reserve shrunk). The updated Pair is what a route fold carries forward to
// price the next hop.
func (p Pair) GetOutputAmount(inputAmount tokens.CurrencyAmount) (tokens.CurrencyAmount, Pair, error) {
	inputToken, ok := inputAmount.Currency().(tokens.Token)
	if !ok || !p.InvolvesToken(inputToken) {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, inputAmount.Currency().Symbol())
	}
	if inputAmount.Raw().Sign() <= 0 {
		return tokens.CurrencyAmount{}, Pair{}, ErrInsufficientInputAmount
	}
	if p.reserve0.Raw().Sign() == 0 || p.reserve1.Raw().Sign() == 0 {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: empty reserve", ErrInsufficientReserves)
	}

	reserveIn, _ := p.ReserveOf(inputToken)
	outputToken := p.Token0()
	if inputToken.Equal(outputToken) {
		outputToken = p.Token1()
	}
	reserveOut, _ := p.ReserveOf(outputToken)

	outRaw, err := calculator.GetAmountOut(inputAmount.Raw(), reserveIn.Raw(), reserveOut.Raw(), FeeBps)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: %v", ErrInsufficientReserves, err)
	}
	if outRaw.Sign() == 0 || outRaw.Cmp(reserveOut.Raw()) >= 0 {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: computed %s against reserve %s",
			ErrInsufficientOutputAmount, outRaw, reserveOut.Raw())
	}

	outputAmount, err := tokens.NewCurrencyAmount(outputToken, outRaw)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, err
	}
	next, err := p.withSwapped(inputAmount, outputAmount)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, err
	}
	return outputAmount, next, nil
}

// GetInputAmount computes the minimum input that yields outputAmount from the
// pool, and the pool snapshot after that swap. Requesting the whole reserve or
// more fails with ErrInsufficientReserves.
func (p Pair) GetInputAmount(outputAmount tokens.CurrencyAmount) (tokens.CurrencyAmount, Pair, error) {
	outputToken, ok := outputAmount.Currency().(tokens.Token)
	if !ok || !p.InvolvesToken(outputToken) {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: %s", ErrTokenNotInPair, outputAmount.Currency().Symbol())
	}
	reserveOut, _ := p.ReserveOf(outputToken)
	if p.reserve0.Raw().Sign() == 0 ||
		p.reserve1.Raw().Sign() == 0 ||
		outputAmount.Raw().Cmp(reserveOut.Raw()) >= 0 {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: requested %s against reserve %s",
			ErrInsufficientReserves, outputAmount.Raw(), reserveOut.Raw())
	}

	inputToken := p.Token0()
	if outputToken.Equal(inputToken) {
		inputToken = p.Token1()
	}
	reserveIn, _ := p.ReserveOf(inputToken)

	inRaw, err := calculator.GetAmountIn(outputAmount.Raw(), reserveIn.Raw(), reserveOut.Raw(), FeeBps)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, fmt.Errorf("%w: %v", ErrInsufficientReserves, err)
	}

	inputAmount, err := tokens.NewCurrencyAmount(inputToken, inRaw)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, err
	}
	next, err := p.withSwapped(inputAmount, outputAmount)
	if err != nil {
		return tokens.CurrencyAmount{}, Pair{}, err
	}
	return inputAmount, next, nil
}

// withSwapped returns the pool state after the swap: input reserve grown by the
// input amount, output reserve shrunk by the output amount.
func (p Pair) withSwapped(inputAmount, outputAmount tokens.CurrencyAmount) (Pair, error) {
	reserveIn, err := p.ReserveOf(inputAmount.Currency().(tokens.Token))
	if err != nil {
		return Pair{}, err
	}
	reserveOut, err := p.ReserveOf(outputAmount.Currency().(tokens.Token))
	if err != nil {
		return Pair{}, err
	}
	newIn, err := reserveIn.Add(inputAmount)
	if err != nil {
		return Pair{}, err
	}
	newOut, err := reserveOut.Subtract(outputAmount)
	if err != nil {
		return Pair{}, err
	}
	return NewPair(newIn, newOut, p.factory)
}
