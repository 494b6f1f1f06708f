// Package chain provides the adapter contract over heterogeneous blockchain
// clients and the registry that dispatches to them.
package chain

import (
	"context"
)

// ID represents a supported blockchain.
type ID string

// Supported blockchain identifiers.
const (
	Itani     ID = "itani"
	Ethereum  ID = "ethereum"
	Solana    ID = "solana"
	Bitcoin   ID = "bitcoin"
	Cosmos    ID = "cosmos"
	Avalanche ID = "avalanche"
)

// NetworkMode selects between test and main network endpoints for the
// native chain.
type NetworkMode string

// Network modes.
const (
	Testnet NetworkMode = "testnet"
	Mainnet NetworkMode = "mainnet"
)

// String returns the chain identifier string.
func (id ID) String() string {
	return string(id)
}

// IsValid returns true if the chain ID is a known chain.
func (id ID) IsValid() bool {
	switch id {
	case Itani, Ethereum, Solana, Bitcoin, Cosmos, Avalanche:
		return true
	default:
		return false
	}
}

// IsNative returns true for the application's own multi-token chain.
func (id ID) IsNative() bool {
	return id == Itani
}

// ParseID parses a string into a chain ID.
func ParseID(s string) (ID, bool) {
	id := ID(s)
	return id, id.IsValid()
}

// AllChains returns all known chain IDs in registry order.
func AllChains() []ID {
	return []ID{Itani, Ethereum, Solana, Bitcoin, Cosmos, Avalanche}
}

// Identifier provides chain identification.
type Identifier interface {
	// ID returns the chain identifier.
	ID() ID
}

// BalanceReader provides balance querying.
type BalanceReader interface {
	// GetBalance retrieves the native balance for an address as the chain
	// reports it (decimal or raw string, chain-dependent).
	GetBalance(ctx context.Context, address string) (string, error)
}

// TransactionSender provides transaction submission.
type TransactionSender interface {
	// SendTransaction submits a transaction and returns its ID.
	SendTransaction(ctx context.Context, tx Transaction) (string, error)
}

// Adapter is the uniform capability surface every chain client implements.
type Adapter interface {
	Identifier
	BalanceReader
	TransactionSender
}

// ExtendedAdapter adds the native chain's administrative, token and contract
// operations. Only the iTani adapter implements this; the registry's
// capability check keeps these operations unreachable on other chains.
type ExtendedAdapter interface {
	Adapter

	// GetTokenBalance retrieves a single token's balance for an address.
	GetTokenBalance(ctx context.Context, address, symbol string) (string, error)

	// GetAllBalances retrieves balances for every native token. A failure
	// fetching one token degrades that entry to "0" and never aborts the
	// batch.
	GetAllBalances(ctx context.Context, address string) (map[string]string, error)

	// DeployContract deploys a contract from base64-encoded WASM.
	DeployContract(ctx context.Context, name, wasmBase64 string) (string, error)

	// MintTokens mints a new token through the token factory.
	MintTokens(ctx context.Context, req MintRequest) (string, error)

	// ForceTransfer moves tokens between addresses with operator authority.
	ForceTransfer(ctx context.Context, from, to, symbol, amount string) (string, error)

	// CreateCustomToken creates a user-defined ITANI20 token.
	CreateCustomToken(ctx context.Context, req CustomTokenRequest) (string, error)

	// CallContract invokes a method on a deployed contract.
	CallContract(ctx context.Context, contract, method string, args []any) (string, error)
}

// Transaction is a generic transaction envelope passed through to adapters.
type Transaction struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Token string `json:"token,omitempty"`
	Data  string `json:"data,omitempty"`
	Memo  string `json:"memo,omitempty"`
}

// MintRequest describes a token mint through the factory contract.
type MintRequest struct {
	TokenName   string
	Symbol      string
	TotalSupply string
	Description string
}

// CustomTokenRequest describes a user-created ITANI20 token.
type CustomTokenRequest struct {
	Name        string
	Symbol      string
	TotalSupply string
	Creator     string
}
