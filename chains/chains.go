// Package chains carries the static per-network configuration the quoting core
// needs: the factory deploying the pools and the wrapped-native token that
// stands in for the chain's native asset inside routes. Live chain state is
// never read here; reserve snapshots come from the caller.
package chains

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/dexquote/dexquote-go/tokens"
)

// Chain ids of the known networks.
const (
	Mainnet  uint64 = 1
	Arbitrum uint64 = 42161
	Base     uint64 = 8453
)

// Network bundles a chain's quoting configuration.
type Network struct {
	ChainID       uint64
	Name          string
	Native        tokens.NativeCurrency
	WrappedNative tokens.Token
	Factory       common.Address
}

var (
	ether = tokens.NewNativeCurrency(18, "ETH", "Ether")

	networks = map[uint64]Network{
		Mainnet: {
			ChainID: Mainnet,
			Name:    "mainnet",
			Native:  ether,
			WrappedNative: tokens.NewToken(Mainnet,
				common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
				18, "WETH", "Wrapped Ether"),
			Factory: common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
		},
		Arbitrum: {
			ChainID: Arbitrum,
			Name:    "arbitrum",
			Native:  ether,
			WrappedNative: tokens.NewToken(Arbitrum,
				common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
				18, "WETH", "Wrapped Ether"),
			Factory: common.HexToAddress("0xf1D7CC64Fb4452F05c498126312eBE29f30Fbcf9"),
		},
		Base: {
			ChainID: Base,
			Name:    "base",
			Native:  ether,
			WrappedNative: tokens.NewToken(Base,
				common.HexToAddress("0x4200000000000000000000000000000000000006"),
				18, "WETH", "Wrapped Ether"),
			Factory: common.HexToAddress("0x8909Dc15e40173Ff4699343b6eB8132c65e18eC6"),
		},
	}
)

// ByChainID returns the configuration of a known network.
func ByChainID(id uint64) (Network, bool) {
	n, ok := networks[id]
	return n, ok
}
