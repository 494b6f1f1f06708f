// Package rpc provides the JSON-RPC style request/response envelope used by
// chain adapters. Every call is a single POST of
// {jsonrpc, id, method, params}; params may be positional or an object.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/itani-network/kobswallet/internal/metrics"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// Version is the protocol version marker sent with every request.
const Version = "2.0"

// defaultTimeout bounds a single RPC round trip.
const defaultTimeout = 30 * time.Second

// Client posts envelope requests to a single endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// URL returns the endpoint this client posts to.
func (c *Client) URL() string {
	return c.url
}

// request is the wire envelope. Request IDs are timestamps; they need not be
// sequential or unique across calls and no invariant relies on them.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// response is the consumed subset of the reply envelope.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

// rpcError represents a node-side error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Call performs a single envelope round trip. Transport failures surface as
// NETWORK_FAILURE; the core never retries them.
func (c *Client) Call(ctx context.Context, method string, params any) (result json.RawMessage, err error) {
	start := time.Now()
	defer func() { metrics.Global.RecordCall(method, time.Since(start), err) }()

	if params == nil {
		params = []any{}
	}

	req := request{
		JSONRPC: Version,
		ID:      time.Now().UnixMilli(),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrNetworkFailure, "calling %s", method)
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrNetworkFailure, "reading %s response", method)
	}

	var resp response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, walleterr.Wrap(walleterr.ErrNetworkFailure, "decoding %s response", method)
	}

	if resp.Error != nil {
		return nil, walleterr.Wrap(resp.Error, "%s rejected", method)
	}

	return resp.Result, nil
}

// BalanceString extracts a string result, defaulting to "0" when the field
// is absent or malformed. Balance calls never fail on a bad result shape.
func BalanceString(result json.RawMessage) string {
	if len(result) == 0 {
		return "0"
	}

	var s string
	if err := json.Unmarshal(result, &s); err != nil || s == "" {
		return "0"
	}
	return s
}

// BalanceField extracts a named string field from an object result,
// defaulting to "0" on any missing or malformed shape.
func BalanceField(result json.RawMessage, field string) string {
	if len(result) == 0 {
		return "0"
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(result, &obj); err != nil {
		return "0"
	}
	return BalanceString(obj[field])
}

// ResultString extracts a plain string result, or an error when the result
// cannot be decoded. Used for non-balance calls where "0" is not a safe
// default.
func ResultString(result json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(result, &s); err != nil {
		// Some methods return structured results; surface them verbatim.
		return string(result), nil
	}
	return s, nil
}
