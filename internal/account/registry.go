// Package account owns the set of (user, chain) accounts.
package account

import (
	"sync"

	"github.com/itani-network/kobswallet/internal/chain"
)

// Account is a per-user, per-chain wallet account. The private key is held
// only as key-vault ciphertext.
type Account struct {
	Address       string            `json:"address"`
	EncryptedKey  string            `json:"encryptedKey"`
	OwnerEmail    string            `json:"ownerEmail"`
	ChainID       chain.ID          `json:"chainId"`
	CachedBalance string            `json:"cachedBalance"`
	TokenBalances map[string]string `json:"tokenBalances,omitempty"`
}

// Registry owns the account collection.
//
// Nothing enforces uniqueness per (owner, chain): duplicates are tolerated
// and every lookup takes the first match in insertion order. Orphaned
// accounts (owner no longer registered) are likewise tolerated; ownership
// is checked at read time, not write time.
type Registry struct {
	mu       sync.RWMutex
	accounts []Account
}

// NewRegistry creates an empty account registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends an account. No uniqueness check is performed.
func (r *Registry) Add(acc Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, acc)
}

// AccountsOf returns copies of the accounts owned by the normalized email,
// preserving insertion order.
func (r *Registry) AccountsOf(email string) []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Account
	for _, acc := range r.accounts {
		if acc.OwnerEmail == email {
			out = append(out, cloneAccount(acc))
		}
	}
	return out
}

// ActiveAccount returns the first account matching (owner, chain), if any.
func (r *Registry) ActiveAccount(email string, chainID chain.ID) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, acc := range r.accounts {
		if acc.OwnerEmail == email && acc.ChainID == chainID {
			return cloneAccount(acc), true
		}
	}
	return Account{}, false
}

// SetCachedBalance updates the cached native balance on the first account
// matching (owner, chain). Overlapping refreshes race last-write-wins;
// the overwrite is accepted, not resolved.
func (r *Registry) SetCachedBalance(email string, chainID chain.ID, balance string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].OwnerEmail == email && r.accounts[i].ChainID == chainID {
			r.accounts[i].CachedBalance = balance
			return
		}
	}
}

// SetTokenBalances replaces the token balance map on the first account
// matching (owner, chain). Same last-write-wins behavior as SetCachedBalance.
func (r *Registry) SetTokenBalances(email string, chainID chain.ID, balances map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].OwnerEmail == email && r.accounts[i].ChainID == chainID {
			r.accounts[i].TokenBalances = cloneBalances(balances)
			return
		}
	}
}

// All returns copies of every account in insertion order, for snapshotting.
func (r *Registry) All() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Account, len(r.accounts))
	for i, acc := range r.accounts {
		out[i] = cloneAccount(acc)
	}
	return out
}

// Len returns the number of accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// Restore replaces the collection from a loaded snapshot.
func (r *Registry) Restore(accounts []Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts = make([]Account, len(accounts))
	for i, acc := range accounts {
		r.accounts[i] = cloneAccount(acc)
	}
}

func cloneAccount(acc Account) Account {
	acc.TokenBalances = cloneBalances(acc.TokenBalances)
	return acc
}

func cloneBalances(balances map[string]string) map[string]string {
	if balances == nil {
		return nil
	}
	out := make(map[string]string, len(balances))
	for k, v := range balances {
		out[k] = v
	}
	return out
}
