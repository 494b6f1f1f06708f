// Package solana implements the balance adapter for Solana.
package solana

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/chain/rpc"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// lamportsPerSOL is the native unit precision.
const lamportsPerSOL = 9

// DefaultRPCURL is the public mainnet endpoint.
const DefaultRPCURL = "https://api.mainnet-beta.solana.com"

// Client is the Solana adapter.
type Client struct {
	rpcURL  string
	rpc     *rpc.Client
	limiter *chain.RateLimiter
}

// NewClient creates a Solana adapter.
func NewClient(rpcURL string, limiter *chain.RateLimiter) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	if limiter == nil {
		limiter = chain.DefaultRateLimiter()
	}
	return &Client{
		rpcURL:  rpcURL,
		rpc:     rpc.NewClient(rpcURL),
		limiter: limiter,
	}
}

// ID returns the chain identifier.
func (c *Client) ID() chain.ID {
	return chain.Solana
}

// GetBalance retrieves the SOL balance for an address, rendered in whole SOL.
// The node reports lamports inside a context-wrapped result.
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	if err := c.limiter.Wait(ctx, c.rpcURL); err != nil {
		return "", err
	}

	result, err := c.rpc.Call(ctx, "getBalance", []any{address})
	if err != nil {
		return "", err
	}

	var wrapped struct {
		Value json.Number `json:"value"`
	}
	if err := json.Unmarshal(result, &wrapped); err != nil {
		// Some RPC providers return the lamport count bare.
		var bare json.Number
		if err := json.Unmarshal(result, &bare); err != nil {
			return "0", nil
		}
		wrapped.Value = bare
	}

	lamports, ok := new(big.Int).SetString(wrapped.Value.String(), 10)
	if !ok {
		return "0", nil
	}
	return chain.FormatDecimalAmount(lamports, lamportsPerSOL), nil
}

// SendTransaction is not yet wired for Solana; the wallet tracks balances
// only on this chain.
func (c *Client) SendTransaction(_ context.Context, _ chain.Transaction) (string, error) {
	return "", walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
		"chain":     chain.Solana.String(),
		"operation": "sendTransaction",
	})
}

// Compile-time interface check
var _ chain.Adapter = (*Client)(nil)
