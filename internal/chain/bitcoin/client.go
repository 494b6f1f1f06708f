// Package bitcoin implements the Bitcoin balance adapter.
//
// The wallet does not yet speak to a Bitcoin backend; balances are the fixed
// placeholder the application has always shown for BTC accounts. A real
// implementation would sit behind the same BalanceReader surface.
package bitcoin

import (
	"context"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// placeholderBalance is the fixed demo balance for BTC accounts.
const placeholderBalance = "0.001"

// Client is the Bitcoin adapter.
type Client struct{}

// NewClient creates a Bitcoin adapter.
func NewClient() *Client {
	return &Client{}
}

// ID returns the chain identifier.
func (c *Client) ID() chain.ID {
	return chain.Bitcoin
}

// GetBalance returns the placeholder BTC balance.
func (c *Client) GetBalance(_ context.Context, _ string) (string, error) {
	return placeholderBalance, nil
}

// SendTransaction is not supported for Bitcoin.
func (c *Client) SendTransaction(_ context.Context, _ chain.Transaction) (string, error) {
	return "", walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
		"chain":     chain.Bitcoin.String(),
		"operation": "sendTransaction",
	})
}

// Compile-time interface check
var _ chain.Adapter = (*Client)(nil)
