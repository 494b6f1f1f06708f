package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/chain"
)

func TestAdd_NoUniquenessCheck(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Account{Address: "addr1", OwnerEmail: "alice@example.com", ChainID: chain.Itani})
	r.Add(Account{Address: "addr2", OwnerEmail: "alice@example.com", ChainID: chain.Itani})

	assert.Equal(t, 2, r.Len())

	// First match wins on lookup.
	acc, ok := r.ActiveAccount("alice@example.com", chain.Itani)
	require.True(t, ok)
	assert.Equal(t, "addr1", acc.Address)
}

func TestAccountsOf_InsertionOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Account{Address: "a", OwnerEmail: "alice@example.com", ChainID: chain.Itani})
	r.Add(Account{Address: "b", OwnerEmail: "bob@example.com", ChainID: chain.Itani})
	r.Add(Account{Address: "c", OwnerEmail: "alice@example.com", ChainID: chain.Ethereum})

	accs := r.AccountsOf("alice@example.com")
	require.Len(t, accs, 2)
	assert.Equal(t, "a", accs[0].Address)
	assert.Equal(t, "c", accs[1].Address)

	assert.Empty(t, r.AccountsOf("nobody@example.com"))
}

func TestActiveAccount_NoMatch(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Account{Address: "a", OwnerEmail: "alice@example.com", ChainID: chain.Itani})

	_, ok := r.ActiveAccount("alice@example.com", chain.Ethereum)
	assert.False(t, ok)
}

func TestSetCachedBalance_FirstMatchOnly(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Account{Address: "a", OwnerEmail: "alice@example.com", ChainID: chain.Itani})
	r.Add(Account{Address: "b", OwnerEmail: "alice@example.com", ChainID: chain.Itani})

	r.SetCachedBalance("alice@example.com", chain.Itani, "42")

	accs := r.AccountsOf("alice@example.com")
	assert.Equal(t, "42", accs[0].CachedBalance)
	assert.Empty(t, accs[1].CachedBalance)
}

func TestSetTokenBalances_CopiesMap(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Add(Account{Address: "a", OwnerEmail: "alice@example.com", ChainID: chain.Itani})

	balances := map[string]string{"ITANI": "1"}
	r.SetTokenBalances("alice@example.com", chain.Itani, balances)

	// Mutating the caller's map must not leak into the registry.
	balances["ITANI"] = "999"

	acc, ok := r.ActiveAccount("alice@example.com", chain.Itani)
	require.True(t, ok)
	assert.Equal(t, "1", acc.TokenBalances["ITANI"])
}

func TestRestoreAndAll_RoundTrip(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	in := []Account{
		{Address: "a", OwnerEmail: "alice@example.com", ChainID: chain.Itani, TokenBalances: map[string]string{"HIS": "5"}},
		{Address: "b", OwnerEmail: "bob@example.com", ChainID: chain.Solana},
	}
	r.Restore(in)

	out := r.All()
	assert.Equal(t, in, out)

	// Orphaned owners are tolerated at this layer.
	assert.Len(t, r.AccountsOf("bob@example.com"), 1)
}
