package backup

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/account"
	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/identity"
	"github.com/itani-network/kobswallet/internal/store"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

func seededGateway(t *testing.T) *store.Gateway {
	t.Helper()

	gw := store.New(t.TempDir(), nil)
	require.NoError(t, gw.Save(&store.Snapshot{
		Accounts: []account.Account{
			{Address: "iTa1", EncryptedKey: "aa", OwnerEmail: "alice@example.com", ChainID: chain.Itani},
			{Address: "0xB", EncryptedKey: "bb", OwnerEmail: "alice@example.com", ChainID: chain.Ethereum},
		},
		Users:         []identity.User{{Email: "alice@example.com", PasswordDigest: "d"}},
		ActiveChainID: chain.Itani,
	}))
	return gw
}

func TestCreateVerifyRestore_RoundTrip(t *testing.T) {
	t.Parallel()

	gw := seededGateway(t)
	svc := NewService(t.TempDir(), gw)

	archive, path, err := svc.Create("passphrase")
	require.NoError(t, err)
	assert.Equal(t, 1, archive.Manifest.UserCount)
	assert.Equal(t, 2, archive.Manifest.AccountCount)
	assert.ElementsMatch(t, []string{"itani", "ethereum"}, archive.Manifest.Chains)

	manifest, err := svc.Verify(path)
	require.NoError(t, err)
	assert.Equal(t, "age-scrypt", manifest.EncryptionMethod)

	// Restore into a fresh gateway.
	fresh := store.New(t.TempDir(), nil)
	restored := NewService(t.TempDir(), fresh)
	require.NoError(t, restored.Restore(path, "passphrase"))

	snap := fresh.Load()
	assert.Len(t, snap.Accounts, 2)
	assert.Len(t, snap.Users, 1)
	assert.Equal(t, "iTa1", snap.Accounts[0].Address)
}

func TestRestore_WrongPassphrase(t *testing.T) {
	t.Parallel()

	gw := seededGateway(t)
	svc := NewService(t.TempDir(), gw)

	_, path, err := svc.Create("right")
	require.NoError(t, err)

	err = svc.Restore(path, "wrong")
	assert.ErrorIs(t, err, walleterr.ErrDecryptionFailed)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	gw := seededGateway(t)
	svc := NewService(t.TempDir(), gw)

	_, path, err := svc.Create("pw")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var archive Archive
	require.NoError(t, json.Unmarshal(data, &archive))
	archive.EncryptedData[0] ^= 0xFF
	tampered, err := json.Marshal(&archive)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, tampered, 0o600))

	_, err = svc.Verify(path)
	assert.ErrorIs(t, err, walleterr.ErrBackupCorrupted)
}

func TestVerify_MissingFile(t *testing.T) {
	t.Parallel()

	svc := NewService(t.TempDir(), store.New(t.TempDir(), nil))
	_, err := svc.Verify("/nonexistent/archive.kobs")
	assert.ErrorIs(t, err, walleterr.ErrBackupNotFound)
}

func TestList_FiltersByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := NewService(dir, seededGateway(t))

	_, _, err := svc.Create("pw")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dir+"/notes.txt", []byte("x"), 0o600))

	names, err := svc.List()
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], Extension)
}
