package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/token"
)

var errFetch = errors.New("rpc unreachable")

// stubFetcher returns canned balances per symbol and fails for symbols in
// the fail set.
type stubFetcher struct {
	balances map[string]string
	fail     map[string]bool
	calls    []string
}

func (s *stubFetcher) GetTokenBalance(_ context.Context, _ string, symbol string) (string, error) {
	s.calls = append(s.calls, symbol)
	if s.fail[symbol] {
		return "", errFetch
	}
	return s.balances[symbol], nil
}

func TestFormatBalance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{"zero", "0", 18, "0"},
		{"not a number passes through", "not-a-number", 18, "not-a-number"},
		{"one whole token", "1000000000000000000", 18, "1"},
		{"fractional", "1500000000000000000", 18, "1.5"},
		{"grouped thousands", "1234500000000000000000", 18, "1,234.5"},
		{"six fraction digit cap", "1234567890000000000", 18, "1.234568"},
		{"small decimals", "1500000", 6, "1.5"},
		{"zero decimals", "42", 0, "42"},
		{"empty string passes through", "", 18, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatBalance(tt.raw, tt.decimals))
		})
	}
}

func TestRefreshAll_AllSucceed(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{balances: map[string]string{
		"ITANI":     "1000000000000000000",
		"HIS":       "2000000000000000000",
		"LOOT":      "0",
		"ART_RINGS": "5",
	}}
	l := New(fetcher)

	got := l.RefreshAll(context.Background(), "iTaADDR")
	require.Len(t, got, len(token.Registry()))
	assert.Equal(t, "1000000000000000000", got["ITANI"])
	assert.Equal(t, "2000000000000000000", got["HIS"])
	assert.Equal(t, "0", got["LOOT"])
	assert.Equal(t, "5", got["ART_RINGS"])
}

func TestRefreshAll_SingleFailureIsolated(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		balances: map[string]string{
			"ITANI":     "111",
			"LOOT":      "333",
			"ART_RINGS": "444",
		},
		fail: map[string]bool{"HIS": true},
	}
	l := New(fetcher)

	got := l.RefreshAll(context.Background(), "iTaADDR")

	// The failing token degrades to "0"; every sibling keeps its value.
	require.Len(t, got, len(token.Registry()))
	assert.Equal(t, "0", got["HIS"])
	assert.Equal(t, "111", got["ITANI"])
	assert.Equal(t, "333", got["LOOT"])
	assert.Equal(t, "444", got["ART_RINGS"])
}

func TestRefreshAll_RegistryOrder(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{balances: map[string]string{}}
	l := New(fetcher)
	l.RefreshAll(context.Background(), "iTaADDR")

	want := make([]string, 0, len(token.Registry()))
	for _, tok := range token.Registry() {
		want = append(want, tok.Symbol)
	}
	assert.Equal(t, want, fetcher.calls)
}

func TestBalances_OrderedWithDefaults(t *testing.T) {
	t.Parallel()

	out := Balances(map[string]string{"HIS": "7"})
	require.Len(t, out, len(token.Registry()))
	assert.Equal(t, "ITANI", out[0].Symbol)
	assert.Equal(t, "0", out[0].RawBalance)
	assert.Equal(t, "HIS", out[1].Symbol)
	assert.Equal(t, "7", out[1].RawBalance)
}

func TestTokenBalance_Formatted(t *testing.T) {
	t.Parallel()

	tok, ok := token.Lookup("ITANI")
	require.True(t, ok)

	b := TokenBalance{Symbol: "ITANI", RawBalance: "2500000000000000000", Token: tok}
	assert.Equal(t, "2.5", b.Formatted())
}
