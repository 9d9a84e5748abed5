package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dexquote/dexquote-go/chains"
	"github.com/dexquote/dexquote-go/cmd/quoter/config"
	"github.com/dexquote/dexquote-go/fractions"
	"github.com/dexquote/dexquote-go/pricing"
	"github.com/dexquote/dexquote-go/protocols/uniswapv2"
	"github.com/dexquote/dexquote-go/tokens"
)

// displayFormat groups integer digits for every human-facing amount.
var displayFormat = fractions.Format{GroupSeparator: ","}

func main() {
	rootLogHandler := slog.NewJSONHandler(os.Stderr, nil)
	rootLogger := slog.New(rootLogHandler)
	closeApp := func() {
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		rootLogger.Error("Failed to load configuration", "error", err)
		closeApp()
	}

	network, ok := chains.ByChainID(cfg.ChainID)
	if !ok {
		rootLogger.Error("Unknown chain id", "chain_id", cfg.ChainID)
		closeApp()
	}
	factory := network.Factory
	if cfg.Factory != "" {
		factory = common.HexToAddress(cfg.Factory)
	}

	tokenSet := buildTokens(cfg, network)
	pairs, err := buildPairs(cfg, tokenSet, factory)
	if err != nil {
		rootLogger.Error("Failed to build pools", "error", err)
		closeApp()
	}

	trade, err := buildTrade(cfg, network, tokenSet, pairs)
	if err != nil {
		rootLogger.Error("Failed to price trade", "error", err)
		closeApp()
	}

	rootLogger.Info("Trade priced",
		"chain", network.Name,
		"type", trade.Type().String(),
		"hops", len(trade.Route().Pairs()),
		"amount_in", trade.InputAmount().Raw().String(),
		"amount_out", trade.OutputAmount().Raw().String(),
	)
	renderQuote(trade, network)
}

func loadConfig() (*config.QuoterConfig, error) {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file.")
	flag.Parse()
	log.Printf("Loading configuration from: %s", *configPath)
	return config.LoadConfig(*configPath)
}

func buildTokens(cfg *config.QuoterConfig, network chains.Network) map[string]tokens.Token {
	set := make(map[string]tokens.Token, len(cfg.Tokens))
	for _, tc := range cfg.Tokens {
		set[tc.Symbol] = tokens.NewToken(network.ChainID,
			common.HexToAddress(tc.Address), tc.Decimals, tc.Symbol, tc.Name)
	}
	return set
}

func buildPairs(cfg *config.QuoterConfig, tokenSet map[string]tokens.Token, factory common.Address) ([]uniswapv2.Pair, error) {
	pairs := make([]uniswapv2.Pair, 0, len(cfg.Pools))
	for i, pc := range cfg.Pools {
		reserve0, err := reserveAmount(tokenSet[pc.Token0], pc.Reserve0)
		if err != nil {
			return nil, fmt.Errorf("pools[%d]: %w", i, err)
		}
		reserve1, err := reserveAmount(tokenSet[pc.Token1], pc.Reserve1)
		if err != nil {
			return nil, fmt.Errorf("pools[%d]: %w", i, err)
		}
		pair, err := uniswapv2.NewPair(reserve0, reserve1, factory)
		if err != nil {
			return nil, fmt.Errorf("pools[%d] (%s/%s): %w", i, pc.Token0, pc.Token1, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func reserveAmount(token tokens.Token, raw string) (tokens.CurrencyAmount, error) {
	n, err := config.ParseRawAmount(raw)
	if err != nil {
		return tokens.CurrencyAmount{}, err
	}
	return tokens.NewCurrencyAmount(token, n)
}

func buildTrade(cfg *config.QuoterConfig, network chains.Network, tokenSet map[string]tokens.Token, pairs []uniswapv2.Pair) (*uniswapv2.Trade, error) {
	hops := make([]uniswapv2.Pair, len(cfg.Trade.Route))
	for i, idx := range cfg.Trade.Route {
		hops[i] = pairs[idx]
	}

	input := endpointCurrency(cfg.Trade.Input, network, tokenSet)
	var output tokens.Currency
	if cfg.Trade.Output != "" {
		output = endpointCurrency(cfg.Trade.Output, network, tokenSet)
	}

	route, err := uniswapv2.NewRoute(hops, network.WrappedNative, input, output)
	if err != nil {
		return nil, err
	}

	tradeType := uniswapv2.ExactInput
	fixed := route.Input()
	if cfg.Trade.Type == config.TradeTypeExactOutput {
		tradeType = uniswapv2.ExactOutput
		fixed = route.Output()
	}
	raw, err := config.ParseRawAmount(cfg.Trade.Amount)
	if err != nil {
		return nil, err
	}
	amount, err := tokens.NewCurrencyAmount(fixed, raw)
	if err != nil {
		return nil, err
	}

	return uniswapv2.NewTrade(route, amount, tradeType, network.WrappedNative)
}

func endpointCurrency(symbol string, network chains.Network, tokenSet map[string]tokens.Token) tokens.Currency {
	if symbol == config.NativeSymbol {
		return network.Native
	}
	return tokenSet[symbol]
}

func renderQuote(trade *uniswapv2.Trade, network chains.Network) {
	midPrice, err := trade.Route().MidPrice()
	if err != nil {
		// Route construction already validated the pair chain.
		panic(err)
	}

	symbols := make([]string, 0, len(trade.Route().Path()))
	for _, token := range trade.Route().Path() {
		symbols = append(symbols, token.Symbol())
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s quote on %s", trade.Type(), network.Name)
	tw.AppendRows([]table.Row{
		{"Path", strings.Join(symbols, " > ")},
		{"Input", formatAmount(trade.InputAmount())},
		{"Output", formatAmount(trade.OutputAmount())},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Execution price", formatPrice(trade.ExecutionPrice())},
		{"Mid price", formatPrice(midPrice)},
		{"Next mid price", formatPrice(trade.NextMidPrice())},
		{"Price impact", trade.PriceImpact().String()},
	})
	tw.Render()
}

func formatAmount(amount tokens.CurrencyAmount) string {
	return fmt.Sprintf("%s %s", amount.ToExact(displayFormat), amount.Currency().Symbol())
}

func formatPrice(price pricing.Price) string {
	s, err := price.ToSignificant(6, displayFormat, fractions.RoundHalfUp)
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%s %s/%s", s, price.QuoteCurrency().Symbol(), price.BaseCurrency().Symbol())
}
