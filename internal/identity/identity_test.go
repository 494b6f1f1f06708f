package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/chain"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"carol@example.com", "carol@example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register("Alice@Example.com", "hunter2"))

	require.NoError(t, m.Login("alice@example.com", "hunter2"))
	assert.True(t, m.IsAuthenticated())

	email, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)
}

func TestRegister_DuplicateAnyCase(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register("alice@example.com", "hunter2"))

	err := m.Register("ALICE@example.com", "different")
	require.ErrorIs(t, err, walleterr.ErrDuplicateUser)

	err = m.Register("  alice@example.com ", "another")
	require.ErrorIs(t, err, walleterr.ErrDuplicateUser)
}

func TestRegister_EmptyInput(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.ErrorIs(t, m.Register("", "pw"), walleterr.ErrInvalidInput)
	require.ErrorIs(t, m.Register("a@b.c", ""), walleterr.ErrInvalidInput)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register("alice@example.com", "hunter2"))

	// Unknown user and wrong password are indistinguishable.
	require.ErrorIs(t, m.Login("nobody@example.com", "hunter2"), walleterr.ErrInvalidCredentials)
	require.ErrorIs(t, m.Login("alice@example.com", "wrong"), walleterr.ErrInvalidCredentials)
	assert.False(t, m.IsAuthenticated())
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register("alice@example.com", "hunter2"))
	require.NoError(t, m.Login("alice@example.com", "hunter2"))

	m.SetActiveChain(chain.Ethereum)
	m.Logout()
	m.Logout()

	assert.False(t, m.IsAuthenticated())
	_, ok := m.CurrentUser()
	assert.False(t, ok)

	// Chain selection survives logout.
	assert.Equal(t, chain.Ethereum, m.ActiveChain())
}

func TestDigestOf(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register("alice@example.com", "hunter2"))

	d, ok := m.DigestOf("ALICE@example.com")
	require.True(t, ok)
	assert.Len(t, d, 64)

	_, ok = m.DigestOf("nobody@example.com")
	assert.False(t, ok)
}

func TestRestore_DefaultsForEmptySession(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.Restore([]User{{Email: "alice@example.com", PasswordDigest: "d"}}, Session{})

	s := m.Session()
	assert.Equal(t, chain.Itani, s.ActiveChainID)
	assert.Equal(t, chain.Testnet, s.NetworkMode)
	assert.False(t, s.IsAuthenticated)
	assert.True(t, m.UserExists("alice@example.com"))
}

func TestSessionDefaults(t *testing.T) {
	t.Parallel()

	m := NewManager()
	s := m.Session()
	assert.Equal(t, chain.Itani, s.ActiveChainID)
	assert.Equal(t, chain.Testnet, s.NetworkMode)
	assert.False(t, s.IsAuthenticated)
}
