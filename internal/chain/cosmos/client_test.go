package cosmos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

func TestGetBalance_FindsAtomDenom(t *testing.T) {
	t.Parallel()

	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"balances":[
			{"denom":"ibc/27394","amount":"999"},
			{"denom":"uatom","amount":"3500000"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	bal, err := c.GetBalance(context.Background(), "cosmos1abcdef")
	require.NoError(t, err)
	assert.Equal(t, "3.5", bal)
	assert.Equal(t, "/cosmos/bank/v1beta1/balances/cosmos1abcdef", path)
}

func TestGetBalance_NoAtomEntry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"balances":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	bal, err := c.GetBalance(context.Background(), "cosmos1abcdef")
	require.NoError(t, err)
	assert.Equal(t, "0", bal)
}

func TestGetBalance_TransportFailure(t *testing.T) {
	t.Parallel()

	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.GetBalance(context.Background(), "cosmos1abcdef")
	assert.ErrorIs(t, err, walleterr.ErrNetworkFailure)
}

func TestSendTransaction_Unsupported(t *testing.T) {
	t.Parallel()

	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.SendTransaction(context.Background(), chain.Transaction{})
	assert.ErrorIs(t, err, walleterr.ErrUnsupportedOperation)
}
