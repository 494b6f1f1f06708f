package wallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/common"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

func TestGenerateKey_Ethereum(t *testing.T) {
	t.Parallel()

	gen, err := GenerateKey(chain.Ethereum)
	require.NoError(t, err)

	assert.True(t, common.IsHexAddress(gen.Address))
	assert.Len(t, strings.Fields(gen.Mnemonic), 12)

	raw, err := hex.DecodeString(gen.PrivateKey)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestGenerateKey_Itani(t *testing.T) {
	t.Parallel()

	gen, err := GenerateKey(chain.Itani)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gen.Address, itaniAddressPrefix))
	assert.Len(t, gen.Address, len(itaniAddressPrefix)+32)
}

func TestRecoverKey_IsDeterministic(t *testing.T) {
	t.Parallel()

	gen, err := GenerateKey(chain.Ethereum)
	require.NoError(t, err)

	recovered, err := RecoverKey(chain.Ethereum, gen.Mnemonic)
	require.NoError(t, err)

	assert.Equal(t, gen.Address, recovered.Address)
	assert.Equal(t, gen.PrivateKey, recovered.PrivateKey)
}

func TestRecoverKey_RejectsBadMnemonic(t *testing.T) {
	t.Parallel()

	_, err := RecoverKey(chain.Ethereum, "not a valid mnemonic at all")
	assert.ErrorIs(t, err, walleterr.ErrInvalidInput)
}

func TestDeriveAddress_SameKeySameAddress(t *testing.T) {
	t.Parallel()

	priv := "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

	a, err := DeriveAddress(chain.Ethereum, priv)
	require.NoError(t, err)
	b, err := DeriveAddress(chain.Ethereum, "0x"+priv)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Different chains derive different address schemes from the same key.
	native, err := DeriveAddress(chain.Itani, priv)
	require.NoError(t, err)
	assert.NotEqual(t, a, native)
	assert.True(t, strings.HasPrefix(native, itaniAddressPrefix))
}

func TestDeriveAddress_UnsupportedChain(t *testing.T) {
	t.Parallel()

	_, err := DeriveAddress(chain.Bitcoin, "aa")
	assert.ErrorIs(t, err, walleterr.ErrUnsupportedOperation)
}

func TestDeriveAddress_InvalidKey(t *testing.T) {
	t.Parallel()

	_, err := DeriveAddress(chain.Ethereum, "zz")
	require.Error(t, err)
}
