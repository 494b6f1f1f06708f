// Package ledger aggregates per-token balances for the native multi-token
// chain and renders them for display.
package ledger

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/itani-network/kobswallet/internal/token"
)

// maxFractionDigits caps rendered fractional digits regardless of token
// precision.
const maxFractionDigits = 6

// printer renders grouped decimal numbers (1,234.56 style).
var printer = message.NewPrinter(language.English)

// TokenFetcher is the single per-token balance call the ledger fans out
// over. The native chain adapter implements this.
type TokenFetcher interface {
	GetTokenBalance(ctx context.Context, address, symbol string) (string, error)
}

// TokenBalance pairs a token descriptor with its raw on-chain balance.
// The formatted rendering is derived on read and never persisted.
type TokenBalance struct {
	Symbol     string
	RawBalance string
	Token      token.Token
}

// Formatted renders the balance for display.
func (b TokenBalance) Formatted() string {
	return FormatBalance(b.RawBalance, b.Token.Decimals)
}

// Ledger fetches and aggregates native token balances.
type Ledger struct {
	fetcher TokenFetcher
}

// New creates a ledger over the given fetcher.
func New(fetcher TokenFetcher) *Ledger {
	return &Ledger{fetcher: fetcher}
}

// RefreshAll fetches every token's balance independently, iterating the
// static registry in order. A failure fetching one token is isolated: that
// entry degrades to "0" and every sibling proceeds unaffected. The result
// always has one entry per registered token.
func (l *Ledger) RefreshAll(ctx context.Context, address string) map[string]string {
	balances := make(map[string]string, len(token.Registry()))
	for _, tok := range token.Registry() {
		bal, err := l.fetcher.GetTokenBalance(ctx, address, tok.Symbol)
		if err != nil {
			balances[tok.Symbol] = "0"
			continue
		}
		balances[tok.Symbol] = bal
	}
	return balances
}

// Balances pairs a raw balance map with token descriptors in registry
// order. Symbols missing from the map render as "0".
func Balances(raw map[string]string) []TokenBalance {
	out := make([]TokenBalance, 0, len(token.Registry()))
	for _, tok := range token.Registry() {
		bal, ok := raw[tok.Symbol]
		if !ok {
			bal = "0"
		}
		out = append(out, TokenBalance{
			Symbol:     tok.Symbol,
			RawBalance: bal,
			Token:      tok,
		})
	}
	return out
}

// FormatBalance renders a raw balance for display. A raw value that fails to
// parse as a number is returned unchanged, not treated as an error - legacy
// records carry pre-formatted strings. Zero renders as "0"; anything else is
// divided by 10^decimals and grouped with at most min(decimals, 6) fraction
// digits and no forced minimum.
func FormatBalance(raw string, decimals int) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if f == 0 {
		return "0"
	}

	scaled := f / math.Pow10(decimals)

	maxFrac := decimals
	if maxFrac > maxFractionDigits {
		maxFrac = maxFractionDigits
	}

	return printer.Sprintf("%v", number.Decimal(scaled, number.MaxFractionDigits(maxFrac)))
}
