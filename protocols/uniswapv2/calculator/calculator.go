// Package calculator implements the raw constant-product swap math on big.Int
// reserves. It is the innermost layer: no token identities, no currency checks,
// just the fee-adjusted x*y=k algebra in both directions.
package calculator

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// basisPointDivisor is a constant representing 100% in basis points (10000).
var basisPointDivisor = big.NewInt(10000)

var (
	// ErrNilAmount is returned when a nil pointer is passed for an amount.
	ErrNilAmount = errors.New("nil pointer passed as amount")
	// ErrInvalidAmount is returned when an input/output amount is negative.
	ErrInvalidAmount = errors.New("amount must be non-negative")
	// ErrInvalidFee is returned when the fee does not leave a positive multiplier.
	ErrInvalidFee = errors.New("fee must be below 10000 basis points")
	// ErrInsufficientLiquidity is returned when a reserve is empty, or an
	// amountOut is requested that is greater than or equal to the available
	// reserve.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for swap")
)

// Calculator holds reusable big.Int objects to avoid memory allocations during
// calculations. Instances of this struct are NOT safe for concurrent use by
// themselves; they are managed by the pool below.
type Calculator struct {
	feeMultiplier   *big.Int
	amountInWithFee *big.Int
	numerator       *big.Int
	denominator     *big.Int
}

// calculatorPool manages a pool of Calculator objects, allowing for safe
// concurrent use and drastically reducing memory allocations.
var calculatorPool = sync.Pool{
	New: func() any {
		return &Calculator{
			feeMultiplier:   new(big.Int),
			amountInWithFee: new(big.Int),
			numerator:       new(big.Int),
			denominator:     new(big.Int),
		}
	},
}

// GetAmountOut computes the output amount produced by swapping amountIn against
// the given reserves with a proportional fee in basis points (30 for 0.3%):
//
//	out = floor(in*(10000-fee)*reserveOut / (reserveIn*10000 + in*(10000-fee)))
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int, feeBps uint16) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountOut(amountIn, reserveIn, reserveOut, feeBps)
}

// GetAmountIn computes the minimum input amount that yields amountOut against
// the given reserves, the algebraic inverse of GetAmountOut. The division is
// ceiled (floor + 1) so rounding never lets the invariant be violated:
//
//	in = floor(reserveIn*out*10000 / ((reserveOut-out)*(10000-fee))) + 1
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int, feeBps uint16) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountIn(amountOut, reserveIn, reserveOut, feeBps)
}

func (c *Calculator) getAmountOut(amountIn, reserveIn, reserveOut *big.Int, feeBps uint16) (*big.Int, error) {
	if amountIn == nil || reserveIn == nil || reserveOut == nil {
		return nil, ErrNilAmount
	}
	if amountIn.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if int64(feeBps) >= basisPointDivisor.Int64() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFee, feeBps)
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: empty reserve", ErrInsufficientLiquidity)
	}

	c.feeMultiplier.Sub(basisPointDivisor, big.NewInt(int64(feeBps)))
	c.amountInWithFee.Mul(amountIn, c.feeMultiplier)
	c.numerator.Mul(reserveOut, c.amountInWithFee)
	c.denominator.Mul(reserveIn, basisPointDivisor)
	c.denominator.Add(c.denominator, c.amountInWithFee)

	return new(big.Int).Div(c.numerator, c.denominator), nil
}

func (c *Calculator) getAmountIn(amountOut, reserveIn, reserveOut *big.Int, feeBps uint16) (*big.Int, error) {
	if amountOut == nil || reserveIn == nil || reserveOut == nil {
		return nil, ErrNilAmount
	}
	if amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if int64(feeBps) >= basisPointDivisor.Int64() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFee, feeBps)
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("%w: requested amountOut (%s) is >= reserveOut (%s)",
			ErrInsufficientLiquidity, amountOut, reserveOut)
	}

	c.numerator.Mul(reserveIn, amountOut)
	c.numerator.Mul(c.numerator, basisPointDivisor)

	c.feeMultiplier.Sub(basisPointDivisor, big.NewInt(int64(feeBps)))
	c.denominator.Sub(reserveOut, amountOut)
	c.denominator.Mul(c.denominator, c.feeMultiplier)

	amountIn := new(big.Int).Div(c.numerator, c.denominator)
	return amountIn.Add(amountIn, big.NewInt(1)), nil
}
