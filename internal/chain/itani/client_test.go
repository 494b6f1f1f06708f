package itani

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/chain"
)

type capturedCall struct {
	Method string
	Params json.RawMessage
}

// fakeNode answers envelope calls with canned per-method results and records
// everything it sees.
type fakeNode struct {
	mu      sync.Mutex
	results map[string]string
	fail    map[string]bool
	calls   []capturedCall
}

func (n *fakeNode) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		_ = json.Unmarshal(body, &req)

		n.mu.Lock()
		n.calls = append(n.calls, capturedCall{Method: req.Method, Params: req.Params})
		fail := n.fail[req.Method]
		result, ok := n.results[req.Method]
		n.mu.Unlock()

		if fail {
			_, _ = w.Write([]byte(`{"error":{"code":-1,"message":"boom"}}`))
			return
		}
		if !ok {
			result = `null`
		}
		_, _ = w.Write([]byte(`{"result":` + result + `}`))
	}
}

func (n *fakeNode) lastCall(t *testing.T) capturedCall {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.calls)
	return n.calls[len(n.calls)-1]
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	srv := httptest.NewServer(node.handler())
	t.Cleanup(srv.Close)
	return NewClient(Config{RPCURL: srv.URL, ChainID: "itani-testnet"}, nil)
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"eth_getBalance": `"123450000"`}}
	c := newTestClient(t, node)

	bal, err := c.GetBalance(context.Background(), "iTaADDR")
	require.NoError(t, err)
	assert.Equal(t, "123450000", bal)

	call := node.lastCall(t)
	assert.Equal(t, "eth_getBalance", call.Method)
	assert.Equal(t, `["iTaADDR","latest"]`, string(call.Params))
}

func TestGetTokenBalance(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"get_token_balance": `{"balance":"777"}`}}
	c := newTestClient(t, node)

	bal, err := c.GetTokenBalance(context.Background(), "iTaADDR", "HIS")
	require.NoError(t, err)
	assert.Equal(t, "777", bal)

	var params map[string]string
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, "iTaADDR", params["address"])
	assert.Equal(t, "HIS", params["token"])
}

func TestGetTokenBalance_MalformedResultDefaultsToZero(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"get_token_balance": `{"unexpected":true}`}}
	c := newTestClient(t, node)

	bal, err := c.GetTokenBalance(context.Background(), "iTaADDR", "HIS")
	require.NoError(t, err)
	assert.Equal(t, "0", bal)
}

func TestGetAllBalances_CoversEveryToken(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"get_token_balance": `{"balance":"9"}`}}
	c := newTestClient(t, node)

	balances, err := c.GetAllBalances(context.Background(), "iTaADDR")
	require.NoError(t, err)

	require.Len(t, balances, 4)
	for _, sym := range []string{"ITANI", "HIS", "LOOT", "ART_RINGS"} {
		assert.Equal(t, "9", balances[sym])
	}
}

func TestGetAllBalances_NodeErrorDegradesToZero(t *testing.T) {
	t.Parallel()

	node := &fakeNode{fail: map[string]bool{"get_token_balance": true}}
	c := newTestClient(t, node)

	balances, err := c.GetAllBalances(context.Background(), "iTaADDR")
	require.NoError(t, err)

	require.Len(t, balances, 4)
	for sym, bal := range balances {
		assert.Equal(t, "0", bal, sym)
	}
}

func TestSendTransaction(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"eth_sendTransaction": `"0xhash"`}}
	c := newTestClient(t, node)

	txID, err := c.SendTransaction(context.Background(), chain.Transaction{
		From: "iTaA", To: "iTaB", Value: "10", Token: "LOOT",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xhash", txID)

	var params []chain.Transaction
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	require.Len(t, params, 1)
	assert.Equal(t, "iTaA", params[0].From)
	assert.Equal(t, "LOOT", params[0].Token)
}

func TestDeployContract_UsesOperatorIdentity(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"kobs_deploy_contract": `"contract-7"`}}
	c := newTestClient(t, node)

	addr, err := c.DeployContract(context.Background(), "dex", "QUFBQQ==")
	require.NoError(t, err)
	assert.Equal(t, "contract-7", addr)

	var params map[string]any
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, OperatorAddress, params["deployer"])
	assert.Equal(t, "dex", params["name"])
}

func TestMintTokens_FactoryDefaults(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"kobs_mint_tokens": `"0xmint"`}}
	c := newTestClient(t, node)

	_, err := c.MintTokens(context.Background(), chain.MintRequest{
		TokenName: "New Coin", Symbol: "NEW", TotalSupply: "1000",
	})
	require.NoError(t, err)

	var params map[string]any
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, "KobsTokenFactory", params["contract"])
	assert.Equal(t, OperatorAddress, params["minter"])
	assert.Equal(t, float64(18), params["decimals"])
}

func TestForceTransfer_OperatorExecutor(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"kobs_force_transfer": `"0xforce"`}}
	c := newTestClient(t, node)

	_, err := c.ForceTransfer(context.Background(), "iTaA", "iTaB", "HIS", "5")
	require.NoError(t, err)

	var params map[string]any
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, OperatorAddress, params["executor"])
	assert.Equal(t, "HIS", params["token"])
}

func TestCreateCustomToken_WireShape(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"token_factory_create": `"0xcustom"`}}
	c := newTestClient(t, node)

	_, err := c.CreateCustomToken(context.Background(), chain.CustomTokenRequest{
		Name: "Mine", Symbol: "MINE", TotalSupply: "10", Creator: "iTaC",
	})
	require.NoError(t, err)

	var params map[string]any
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, "ITANI20", params["kind"])
	assert.Equal(t, false, params["require_btc"])
	assert.Equal(t, "iTaC", params["creator"])
}

func TestCallContract_NilArgs(t *testing.T) {
	t.Parallel()

	node := &fakeNode{results: map[string]string{"kobs_call_contract": `"ok"`}}
	c := newTestClient(t, node)

	out, err := c.CallContract(context.Background(), "dex", "quote", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	var params map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(node.lastCall(t).Params, &params))
	assert.Equal(t, `[]`, string(params["args"]))
}

func TestConfigFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "itani-testnet", ConfigFor(chain.Testnet).ChainID)
	assert.Equal(t, "itani-mainnet", ConfigFor(chain.Mainnet).ChainID)
}
