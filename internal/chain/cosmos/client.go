// Package cosmos implements the Cosmos Hub balance adapter over the bank
// REST API.
package cosmos

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// uatomDecimals is the ATOM precision (micro-atom base unit).
const uatomDecimals = 6

// atomDenom is the base denomination tracked by the wallet.
const atomDenom = "uatom"

// DefaultAPIURL is the public Cosmos Hub REST endpoint.
const DefaultAPIURL = "https://rest.cosmos.network"

// requestTimeout bounds one REST round trip.
const requestTimeout = 30 * time.Second

// Client is the Cosmos adapter.
type Client struct {
	apiURL     string
	httpClient *http.Client
	limiter    *chain.RateLimiter
}

// NewClient creates a Cosmos adapter.
func NewClient(apiURL string, limiter *chain.RateLimiter) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if limiter == nil {
		limiter = chain.DefaultRateLimiter()
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    limiter,
	}
}

// ID returns the chain identifier.
func (c *Client) ID() chain.ID {
	return chain.Cosmos
}

// balancesResponse is the consumed subset of the bank balances reply.
type balancesResponse struct {
	Balances []struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"balances"`
}

// GetBalance retrieves the ATOM balance for an address, rendered in whole
// ATOM. Addresses with no uatom entry report "0".
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	if err := c.limiter.Wait(ctx, c.apiURL); err != nil {
		return "", err
	}

	url := c.apiURL + "/cosmos/bank/v1beta1/balances/" + address
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", walleterr.Wrap(err, "creating balance request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", walleterr.Wrap(walleterr.ErrNetworkFailure, "querying cosmos balances")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", walleterr.Wrap(walleterr.ErrNetworkFailure, "reading cosmos balances")
	}

	var parsed balancesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", walleterr.Wrap(walleterr.ErrNetworkFailure, "decoding cosmos balances")
	}

	for _, bal := range parsed.Balances {
		if bal.Denom != atomDenom {
			continue
		}
		amount, ok := new(big.Int).SetString(bal.Amount, 10)
		if !ok {
			return "0", nil
		}
		return chain.FormatDecimalAmount(amount, uatomDecimals), nil
	}
	return "0", nil
}

// SendTransaction is not supported for Cosmos.
func (c *Client) SendTransaction(_ context.Context, _ chain.Transaction) (string, error) {
	return "", walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
		"chain":     chain.Cosmos.String(),
		"operation": "sendTransaction",
	})
}

// Compile-time interface check
var _ chain.Adapter = (*Client)(nil)
