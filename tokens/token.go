package tokens

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// Token is a chain-scoped fungible token identity. Equality is chain id plus
// address; symbol, name and decimals are metadata and never take part in it.
// common.Address is canonical bytes, so hex casing of the source string is
// irrelevant.
type Token struct {
	chainID  uint64
	address  common.Address
	decimals uint8
	symbol   string
	name     string
}

// NewToken builds a token identity. Symbol and name may be empty.
func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) Token {
	return Token{
		chainID:  chainID,
		address:  address,
		decimals: decimals,
		symbol:   symbol,
		name:     name,
	}
}

func (t Token) ChainID() uint64         { return t.chainID }
func (t Token) Address() common.Address { return t.address }
func (t Token) Decimals() uint8         { return t.decimals }
func (t Token) Symbol() string          { return t.symbol }
func (t Token) Name() string            { return t.name }
func (t Token) IsNative() bool          { return false }

// Equal reports whether the two tokens share a chain id and address.
func (t Token) Equal(other Token) bool {
	return t.chainID == other.chainID && t.address == other.address
}

// SortsBefore reports whether t orders before other by address bytes. Pools use
// this to fix their canonical token0/token1 ordering.
func (t Token) SortsBefore(other Token) bool {
	return bytes.Compare(t.address.Bytes(), other.address.Bytes()) < 0
}

func (t Token) String() string {
	if t.symbol != "" {
		return t.symbol
	}
	return t.address.Hex()
}
