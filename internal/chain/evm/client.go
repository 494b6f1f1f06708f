// Package evm implements the adapter for EVM-compatible chains (Ethereum
// and Avalanche C-Chain). Both speak the same wire protocol and differ only
// in endpoint and numeric chain ID.
package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/chain/rpc"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// weiDecimals is the native coin precision on EVM chains.
const weiDecimals = 18

// Config holds the endpoint settings for one EVM network.
type Config struct {
	Chain   chain.ID
	RPCURL  string
	ChainID int
}

// EthereumConfig returns mainnet Ethereum settings.
func EthereumConfig(rpcURL string) Config {
	return Config{Chain: chain.Ethereum, RPCURL: rpcURL, ChainID: 1}
}

// AvalancheConfig returns Avalanche C-Chain settings.
func AvalancheConfig(rpcURL string) Config {
	return Config{Chain: chain.Avalanche, RPCURL: rpcURL, ChainID: 43114}
}

// Client is an EVM chain adapter.
type Client struct {
	cfg     Config
	rpc     *rpc.Client
	limiter *chain.RateLimiter
}

// NewClient creates an EVM adapter.
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
	return c.cfg.Chain
}

// GetBalance retrieves the native coin balance, rendered in whole coins
// (ether-style division by 10^18).
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{
			"address": address,
			"chain":   c.cfg.Chain.String(),
		})
	}

	if err := c.limiter.Wait(ctx, c.cfg.RPCURL); err != nil {
		return "", err
	}

	result, err := c.rpc.Call(ctx, "eth_getBalance", []any{address, "latest"})
	if err != nil {
		return "", err
	}

	wei, ok := chain.ParseHexAmount(rpc.BalanceString(result))
	if !ok {
		return "0", nil
	}
	return chain.FormatDecimalAmount(wei, weiDecimals), nil
}

// SendTransaction submits a transaction envelope to the node. Signing is the
// node collaborator's concern at this boundary.
func (c *Client) SendTransaction(ctx context.Context, tx chain.Transaction) (string, error) {
	if err := c.limiter.Wait(ctx, c.cfg.RPCURL); err != nil {
		return "", err
	}

	result, err := c.rpc.Call(ctx, "eth_sendTransaction", []any{tx})
	if err != nil {
		return "", err
	}
	return rpc.ResultString(result)
}

// Compile-time interface check
var _ chain.Adapter = (*Client)(nil)
