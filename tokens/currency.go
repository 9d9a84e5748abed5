// Package tokens defines currency identities and raw on-chain amounts. A Token is
// identified by chain id and contract address only; decimals drive the scaling
// between raw smallest-unit integers and human-readable quantities.
package tokens

// Currency is any asset an amount or price can be denominated in: either a Token
// or the chain-native asset.
type Currency interface {
	Decimals() uint8
	Symbol() string
	Name() string
	IsNative() bool
}

// NativeCurrency marks the chain-native asset (ETH and friends). It has no
// contract address; routes involving it are resolved through the network's
// wrapped-native token.
type NativeCurrency struct {
	decimals uint8
	symbol   string
	name     string
}

// NewNativeCurrency describes a chain's native asset.
func NewNativeCurrency(decimals uint8, symbol, name string) NativeCurrency {
	return NativeCurrency{decimals: decimals, symbol: symbol, name: name}
}

func (n NativeCurrency) Decimals() uint8 { return n.decimals }
func (n NativeCurrency) Symbol() string  { return n.symbol }
func (n NativeCurrency) Name() string    { return n.name }
func (n NativeCurrency) IsNative() bool  { return true }

// CurrencyEqual reports whether two currencies denote the same asset. Tokens
// compare by chain id and address; native currencies compare equal to each other.
func CurrencyEqual(a, b Currency) bool {
	at, aToken := a.(Token)
	bt, bToken := b.(Token)
	if aToken && bToken {
		return at.Equal(bt)
	}
	if aToken || bToken {
		return false
	}
	return a.IsNative() && b.IsNative()
}
