// Package config loads and validates the quoter's YAML configuration: the
// target chain, the token set, the pool reserve snapshots and the trade to
// price over them.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Trade types accepted in the configuration.
const (
	TradeTypeExactInput  = "exact_input"
	TradeTypeExactOutput = "exact_output"
)

// NativeSymbol selects the chain's native currency as a trade endpoint.
const NativeSymbol = "native"

var (
	// ErrUnknownToken is returned when a pool or trade references a symbol the
	// tokens section does not declare.
	ErrUnknownToken = errors.New("unknown token symbol")
	// ErrInvalidAmount is returned when a reserve or trade amount is not a
	// base-10 unsigned integer in raw units.
	ErrInvalidAmount = errors.New("invalid raw amount")
)

// TokenConfig declares one token of the quoting universe.
type TokenConfig struct {
	Address  string `yaml:"address"`
	Decimals uint8  `yaml:"decimals"`
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
}

// PoolConfig is a reserve snapshot of one pool, referencing tokens by symbol.
type PoolConfig struct {
	Token0   string `yaml:"token0"`
	Token1   string `yaml:"token1"`
	Reserve0 string `yaml:"reserve0"`
	Reserve1 string `yaml:"reserve1"`
}

// TradeConfig describes the swap to price. Route lists pool indices in hop
// order, Input and Output are token symbols; NativeSymbol stands for the
// chain's native currency at either endpoint. Output is optional and defaults
// to the far end of the route. Amount is in raw units of the fixed side.
type TradeConfig struct {
	Type   string `yaml:"type"`
	Amount string `yaml:"amount"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Route  []int  `yaml:"route"`
}

// QuoterConfig is the root of the configuration file.
type QuoterConfig struct {
	ChainID uint64        `yaml:"chain_id"`
	Factory string        `yaml:"factory"`
	Tokens  []TokenConfig `yaml:"tokens"`
	Pools   []PoolConfig  `yaml:"pools"`
	Trade   TradeConfig   `yaml:"trade"`
}

// LoadConfig reads and validates the configuration at the given path.
func LoadConfig(path string) (*QuoterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg QuoterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *QuoterConfig) validate() error {
	if c.ChainID == 0 {
		return errors.New("chain_id is required")
	}
	if c.Factory != "" && !common.IsHexAddress(c.Factory) {
		return fmt.Errorf("factory is not a hex address: %q", c.Factory)
	}
	if len(c.Tokens) == 0 {
		return errors.New("at least one token is required")
	}

	symbols := make(map[string]struct{}, len(c.Tokens))
	for i, t := range c.Tokens {
		if t.Symbol == "" {
			return fmt.Errorf("tokens[%d]: symbol is required", i)
		}
		if t.Symbol == NativeSymbol {
			return fmt.Errorf("tokens[%d]: symbol %q is reserved", i, NativeSymbol)
		}
		if !common.IsHexAddress(t.Address) {
			return fmt.Errorf("tokens[%d] (%s): address is not a hex address: %q", i, t.Symbol, t.Address)
		}
		if _, dup := symbols[t.Symbol]; dup {
			return fmt.Errorf("tokens[%d]: duplicate symbol %q", i, t.Symbol)
		}
		symbols[t.Symbol] = struct{}{}
	}

	if len(c.Pools) == 0 {
		return errors.New("at least one pool is required")
	}
	for i, p := range c.Pools {
		for _, sym := range []string{p.Token0, p.Token1} {
			if _, ok := symbols[sym]; !ok {
				return fmt.Errorf("pools[%d]: %w: %q", i, ErrUnknownToken, sym)
			}
		}
		for _, r := range []string{p.Reserve0, p.Reserve1} {
			if _, err := parseRawAmount(r); err != nil {
				return fmt.Errorf("pools[%d]: %w", i, err)
			}
		}
	}

	return c.validateTrade(symbols)
}

func (c *QuoterConfig) validateTrade(symbols map[string]struct{}) error {
	tr := c.Trade
	if tr.Type != TradeTypeExactInput && tr.Type != TradeTypeExactOutput {
		return fmt.Errorf("trade.type must be %q or %q, got %q",
			TradeTypeExactInput, TradeTypeExactOutput, tr.Type)
	}
	if _, err := parseRawAmount(tr.Amount); err != nil {
		return fmt.Errorf("trade.amount: %w", err)
	}
	if len(tr.Route) == 0 {
		return errors.New("trade.route needs at least one pool index")
	}
	for _, idx := range tr.Route {
		if idx < 0 || idx >= len(c.Pools) {
			return fmt.Errorf("trade.route: pool index %d out of range", idx)
		}
	}
	if tr.Input == "" {
		return errors.New("trade.input is required")
	}
	for _, sym := range []string{tr.Input, tr.Output} {
		if sym == "" || sym == NativeSymbol {
			continue
		}
		if _, ok := symbols[sym]; !ok {
			return fmt.Errorf("trade: %w: %q", ErrUnknownToken, sym)
		}
	}
	return nil
}

// ParseRawAmount converts a validated raw amount string back to a big.Int.
func ParseRawAmount(s string) (*big.Int, error) {
	return parseRawAmount(s)
}

func parseRawAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return n, nil
}
