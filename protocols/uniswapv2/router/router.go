// Package router searches a set of pools for the best route between two
// currencies and prices it as a trade. The search is a Bellman-Ford style
// relaxation over output amounts: each pass extends the best-known amount at
// every token by one hop, so maxHops passes explore every acyclic route of up
// to maxHops pools.
package router

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dexquote/dexquote-go/bitset"
	"github.com/dexquote/dexquote-go/protocols/uniswapv2"
	"github.com/dexquote/dexquote-go/protocols/uniswapv2/calculator"
	"github.com/dexquote/dexquote-go/tokens"
)

var (
	// ErrTokenNotInGraph is returned when a trade endpoint appears in no pool.
	ErrTokenNotInGraph = errors.New("token not held by any pool")
	// ErrNoRouteFound is returned when no pool chain connects the endpoints
	// within the hop limit.
	ErrNoRouteFound = errors.New("no route between tokens")
	// ErrSameToken is returned when input and output resolve to one token.
	ErrSameToken = errors.New("input and output are the same token")
)

// bigIntPool is a package-level pool for reusing *big.Int objects across
// searches.
var bigIntPool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// edge connects two token vertices and carries every pool holding that token
// pair. Parallel pools compete during relaxation; only the best one is kept.
type edge struct {
	target int
	pools  []int
}

// Graph is a reusable search structure over one reserve snapshot. Build it
// once per snapshot and run any number of searches against it.
type Graph struct {
	pairs        []uniswapv2.Pair
	tokens       []tokens.Token
	tokenToIndex map[common.Address]int
	adjacency    [][]edge
}

// NewGraph indexes the pools into a token adjacency graph. All pools must
// share a chain id.
func NewGraph(pairs []uniswapv2.Pair) (*Graph, error) {
	if len(pairs) == 0 {
		return nil, errors.New("at least one pool is required")
	}
	chainID := pairs[0].ChainID()

	g := &Graph{
		pairs:        pairs,
		tokenToIndex: make(map[common.Address]int),
	}
	for i, pair := range pairs {
		if pair.ChainID() != chainID {
			return nil, fmt.Errorf("pool %s is on chain %d, graph is on chain %d",
				pair.Address(), pair.ChainID(), chainID)
		}
		idx0 := g.vertex(pair.Token0())
		idx1 := g.vertex(pair.Token1())
		g.connect(idx0, idx1, i)
		g.connect(idx1, idx0, i)
	}
	return g, nil
}

func (g *Graph) vertex(token tokens.Token) int {
	if idx, ok := g.tokenToIndex[token.Address()]; ok {
		return idx
	}
	idx := len(g.tokens)
	g.tokens = append(g.tokens, token)
	g.tokenToIndex[token.Address()] = idx
	g.adjacency = append(g.adjacency, nil)
	return idx
}

func (g *Graph) connect(from, to, pairIndex int) {
	for i := range g.adjacency[from] {
		if g.adjacency[from][i].target == to {
			g.adjacency[from][i].pools = append(g.adjacency[from][i].pools, pairIndex)
			return
		}
	}
	g.adjacency[from] = append(g.adjacency[from], edge{target: to, pools: []int{pairIndex}})
}

// BestTradeExactInput finds the route yielding the most output for the given
// input amount, within maxHops pools, and prices it. The wrapped token stands
// in for the native currency at either endpoint.
func BestTradeExactInput(g *Graph, amount tokens.CurrencyAmount, output tokens.Currency, wrapped tokens.Token, maxHops int) (*uniswapv2.Trade, error) {
	route, err := g.bestRoute(amount.Currency(), output, wrapped, amount.Raw(), maxHops)
	if err != nil {
		return nil, err
	}
	return uniswapv2.NewTrade(route, amount, uniswapv2.ExactInput, wrapped)
}

// searchState carries the per-search working set: best-known amount, path and
// visited tokens for every vertex.
type searchState struct {
	costs   []*big.Int
	paths   [][]int
	known   []bitset.BitSet
	temp    *big.Int
	maxHops int
}

func (g *Graph) bestRoute(input, output tokens.Currency, wrapped tokens.Token, amountIn *big.Int, maxHops int) (*uniswapv2.Route, error) {
	start, err := g.endpoint(input, wrapped)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	end, err := g.endpoint(output, wrapped)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if start == end {
		return nil, ErrSameToken
	}
	if maxHops < 1 {
		maxHops = 1
	}

	numTokens := len(g.tokens)
	state := &searchState{
		costs:   make([]*big.Int, numTokens),
		paths:   make([][]int, numTokens),
		known:   make([]bitset.BitSet, numTokens),
		temp:    bigIntPool.Get().(*big.Int).SetUint64(0),
		maxHops: maxHops,
	}
	defer func() {
		bigIntPool.Put(state.temp.SetUint64(0))
		for _, cost := range state.costs {
			bigIntPool.Put(cost.SetUint64(0))
		}
	}()
	for i := 0; i < numTokens; i++ {
		state.costs[i] = bigIntPool.Get().(*big.Int).SetUint64(0)
		state.known[i] = bitset.NewBitSet(uint64(numTokens))
	}
	state.costs[start].Set(amountIn)

	for hop := 0; hop < maxHops; hop++ {
		for vertex := 0; vertex < numTokens; vertex++ {
			if state.costs[vertex].Sign() == 0 {
				continue
			}
			g.relax(state, vertex)
		}
	}

	if state.paths[end] == nil {
		return nil, ErrNoRouteFound
	}
	routePairs := make([]uniswapv2.Pair, len(state.paths[end]))
	for i, pairIndex := range state.paths[end] {
		routePairs[i] = g.pairs[pairIndex]
	}
	return uniswapv2.NewRoute(routePairs, wrapped, input, output)
}

func (g *Graph) endpoint(currency tokens.Currency, wrapped tokens.Token) (int, error) {
	token, ok := currency.(tokens.Token)
	if !ok {
		token = wrapped
	}
	idx, ok := g.tokenToIndex[token.Address()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTokenNotInGraph, token)
	}
	return idx, nil
}

// relax extends the best-known amount at one vertex across all its edges,
// keeping the most productive pool per edge. Visited-token sets block routes
// from crossing a token twice.
func (g *Graph) relax(state *searchState, vertex int) {
	cost := state.costs[vertex]
	known := state.known[vertex]
	path := state.paths[vertex]
	token := g.tokens[vertex]

	// Every extension adds exactly one pool.
	if len(path)+1 > state.maxHops {
		return
	}

	maxAmountOut := state.temp
	for _, e := range g.adjacency[vertex] {
		if e.target == vertex || known.IsSet(uint64(e.target)) {
			continue
		}

		bestPool := -1
		maxAmountOut.SetUint64(0)
		for _, pairIndex := range e.pools {
			amountOut, err := g.poolAmountOut(pairIndex, token, cost)
			if err != nil {
				continue
			}
			if amountOut.Cmp(maxAmountOut) > 0 {
				maxAmountOut.Set(amountOut)
				bestPool = pairIndex
			}
		}
		if bestPool == -1 {
			continue
		}

		if maxAmountOut.Cmp(state.costs[e.target]) > 0 {
			state.costs[e.target].Set(maxAmountOut)
			newPath := make([]int, len(path)+1)
			copy(newPath, path)
			newPath[len(path)] = bestPool
			state.paths[e.target] = newPath
			state.known[e.target].SetFrom(known)
			state.known[e.target].Set(uint64(vertex))
		}
	}
}

func (g *Graph) poolAmountOut(pairIndex int, tokenIn tokens.Token, amountIn *big.Int) (*big.Int, error) {
	pair := g.pairs[pairIndex]
	reserveIn, reserveOut := pair.Reserve0().Raw(), pair.Reserve1().Raw()
	if !tokenIn.Equal(pair.Token0()) {
		reserveIn, reserveOut = reserveOut, reserveIn
	}
	return calculator.GetAmountOut(amountIn, reserveIn, reserveOut, uniswapv2.FeeBps)
}
