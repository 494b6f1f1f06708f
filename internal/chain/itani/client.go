// Package itani implements the adapter for the iTani Network Chain, the
// only chain with the extended administrative, token and contract
// operations.
package itani

import (
	"context"
	"encoding/json"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/chain/rpc"
	"github.com/itani-network/kobswallet/internal/token"
)

// OperatorAddress is the official wallet's operator identity, authorized for
// deploy, mint and force-transfer on the native chain.
const OperatorAddress = "iTaKOBSWALLET0000000000000000000000"

// tokenFactoryContract is the on-chain factory that owns native token mints.
const tokenFactoryContract = "KobsTokenFactory"

// Config holds the endpoints for one iTani network.
type Config struct {
	RPCURL  string
	APIURL  string
	ChainID string
}

// TestnetConfig returns the local/demo network endpoints.
func TestnetConfig() Config {
	return Config{
		RPCURL:  "http://localhost:8545",
		APIURL:  "http://localhost:3000",
		ChainID: "itani-testnet",
	}
}

// MainnetConfig returns the production network endpoints.
func MainnetConfig() Config {
	return Config{
		RPCURL:  "https://rpc.itani.network",
		APIURL:  "https://api.itani.network",
		ChainID: "itani-mainnet",
	}
}

// ConfigFor returns the endpoint set for a network mode.
func ConfigFor(mode chain.NetworkMode) Config {
	if mode == chain.Mainnet {
		return MainnetConfig()
	}
	return TestnetConfig()
}

// Client is the native chain adapter.
type Client struct {
	cfg     Config
	rpc     *rpc.Client
	limiter *chain.RateLimiter
}

// NewClient creates an iTani adapter for the given network config.
func NewClient(cfg Config, limiter *chain.RateLimiter) *Client {
	if limiter == nil {
		limiter = chain.DefaultRateLimiter()
	}
	return &Client{
		cfg:     cfg,
		rpc:     rpc.NewClient(cfg.RPCURL),
		limiter: limiter,
	}
}

// ID returns the chain identifier.
func (c *Client) ID() chain.ID {
	return chain.Itani
}

// ChainID returns the network identifier (itani-testnet or itani-mainnet).
func (c *Client) ChainID() string {
	return c.cfg.ChainID
}

// GetBalance retrieves the native ITANI balance for an address.
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	result, err := c.call(ctx, "eth_getBalance", []any{address, "latest"})
	if err != nil {
		return "", err
	}
	return rpc.BalanceString(result), nil
}

// GetTokenBalance retrieves one token's balance for an address.
func (c *Client) GetTokenBalance(ctx context.Context, address, symbol string) (string, error) {
	result, err := c.call(ctx, "get_token_balance", map[string]any{
		"address": address,
		"token":   symbol,
	})
	if err != nil {
		return "", err
	}
	return rpc.BalanceField(result, "balance"), nil
}

// GetAllBalances retrieves balances for every native token in registry
// order. A failure fetching one token degrades that entry to "0"; siblings
// proceed unaffected.
func (c *Client) GetAllBalances(ctx context.Context, address string) (map[string]string, error) {
	balances := make(map[string]string, len(token.Registry()))
	for _, tok := range token.Registry() {
		bal, err := c.GetTokenBalance(ctx, address, tok.Symbol)
		if err != nil {
			balances[tok.Symbol] = "0"
			continue
		}
		balances[tok.Symbol] = bal
	}
	return balances, nil
}

// SendTransaction submits a transaction envelope.
func (c *Client) SendTransaction(ctx context.Context, tx chain.Transaction) (string, error) {
	result, err := c.call(ctx, "eth_sendTransaction", []any{tx})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// DeployContract deploys a contract from base64-encoded WASM under the
// operator identity.
func (c *Client) DeployContract(ctx context.Context, name, wasmBase64 string) (string, error) {
	result, err := c.call(ctx, "kobs_deploy_contract", map[string]any{
		"name":     name,
		"wasm":     wasmBase64,
		"deployer": OperatorAddress,
	})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// MintTokens mints a new token through the token factory.
func (c *Client) MintTokens(ctx context.Context, req chain.MintRequest) (string, error) {
	result, err := c.call(ctx, "kobs_mint_tokens", map[string]any{
		"contract":     tokenFactoryContract,
		"token_name":   req.TokenName,
		"symbol":       req.Symbol,
		"decimals":     18,
		"total_supply": req.TotalSupply,
		"description":  req.Description,
		"minter":       OperatorAddress,
	})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// ForceTransfer moves tokens between addresses with operator authority.
func (c *Client) ForceTransfer(ctx context.Context, from, to, symbol, amount string) (string, error) {
	result, err := c.call(ctx, "kobs_force_transfer", map[string]any{
		"from":     from,
		"to":       to,
		"token":    symbol,
		"amount":   amount,
		"executor": OperatorAddress,
	})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// CreateCustomToken creates a user-defined ITANI20 token.
func (c *Client) CreateCustomToken(ctx context.Context, req chain.CustomTokenRequest) (string, error) {
	result, err := c.call(ctx, "token_factory_create", map[string]any{
		"name":         req.Name,
		"symbol":       req.Symbol,
		"kind":         "ITANI20",
		"decimals":     18,
		"total_supply": req.TotalSupply,
		"creator":      req.Creator,
		"require_btc":  false,
	})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// CallContract invokes a method on a deployed contract (DEX, governance,
// oracle).
func (c *Client) CallContract(ctx context.Context, contract, method string, args []any) (string, error) {
	if args == nil {
		args = []any{}
	}
	result, err := c.call(ctx, "kobs_call_contract", map[string]any{
		"contract": contract,
		"method":   method,
		"args":     args,
	})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// call rate-limits and dispatches one envelope round trip.
func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx, c.cfg.RPCURL); err != nil {
		return nil, err
	}
	return c.rpc.Call(ctx, method, params)
}

// Compile-time interface check
var _ chain.ExtendedAdapter = (*Client)(nil)
