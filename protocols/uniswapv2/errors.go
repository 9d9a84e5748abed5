package uniswapv2

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotInPair is returned when querying a reserve or price for a token
	// the pair does not hold.
	ErrTokenNotInPair = errors.New("token not in pair")
	// ErrIdenticalTokens is returned when constructing a pair over one token.
	ErrIdenticalTokens = errors.New("pair tokens must differ")
	// ErrMixedChains is returned when a pair's reserves live on different chains.
	ErrMixedChains = errors.New("pair reserves must share a chain id")
	// ErrNotToken is returned when a pair reserve is denominated in the native
	// currency; pools only ever hold tokens.
	ErrNotToken = errors.New("pair reserves must be tokens")

	// ErrInsufficientReserves is returned when a reserve is zero or a requested
	// output meets or exceeds the available reserve.
	ErrInsufficientReserves = errors.New("insufficient reserves")
	// ErrInsufficientInputAmount is returned when the supplied input amount is zero.
	ErrInsufficientInputAmount = errors.New("insufficient input amount")
	// ErrInsufficientOutputAmount is returned when the computed output rounds to
	// zero or would drain the opposite reserve.
	ErrInsufficientOutputAmount = errors.New("insufficient output amount")
)

// ErrInvalidRoute is the base of every route validation failure; the wrapped
// specifics below name the check that failed and all satisfy
// errors.Is(err, ErrInvalidRoute).
var ErrInvalidRoute = errors.New("invalid route")

var (
	// ErrEmptyRoute: a route needs at least one pair.
	ErrEmptyRoute = fmt.Errorf("%w: no pairs", ErrInvalidRoute)
	// ErrChainMismatch: all pairs of a route must share one chain id.
	ErrChainMismatch = fmt.Errorf("%w: pairs span multiple chain ids", ErrInvalidRoute)
	// ErrInputNotInPair: the starting token is not held by the first pair.
	ErrInputNotInPair = fmt.Errorf("%w: input not in first pair", ErrInvalidRoute)
	// ErrOutputNotInPair: the explicit output token is not held by the last pair.
	ErrOutputNotInPair = fmt.Errorf("%w: output not in last pair", ErrInvalidRoute)
	// ErrDisconnectedRoute: consecutive pairs do not share the traversal token.
	ErrDisconnectedRoute = fmt.Errorf("%w: disconnected path", ErrInvalidRoute)
)
