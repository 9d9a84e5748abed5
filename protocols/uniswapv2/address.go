package uniswapv2

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/dexquote/dexquote-go/tokens"
)

// InitCodeHash is the keccak256 of the canonical UniswapV2Pair creation bytecode.
// Factories deployed from the reference contracts all share it; a fork with
// modified pair bytecode needs its own hash for address derivation to line up
// with the chain.
var InitCodeHash = common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f")

// PoolAddress derives the CREATE2 address of the pool the factory would deploy
// for the two tokens. The same factory and token pair always yield the same
// address regardless of argument order.
func PoolAddress(factory common.Address, tokenA, tokenB tokens.Token, initCodeHash common.Hash) common.Address {
	token0, token1 := tokenA, tokenB
	if token1.SortsBefore(token0) {
		token0, token1 = token1, token0
	}
	salt := crypto.Keccak256(token0.Address().Bytes(), token1.Address().Bytes())
	return crypto.CreateAddress2(factory, common.BytesToHash(salt), initCodeHash.Bytes())
}
