// Package identity manages local users and the process-wide session.
//
// Credentials are verified against an unsalted SHA-256 digest of the raw
// password. No per-user salt or key stretching is applied: the digest
// doubles as the key-vault encryption key and the stored data format fixes
// both uses. Hardening the scheme is a data-migration project, not a local
// code change.
package identity

import (
	"strings"
	"sync"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/keyvault"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// User is a registered local user. The normalized email is the unique key.
type User struct {
	Email          string `json:"email"`
	PasswordDigest string `json:"passwordDigest"`
}

// Session is the process-wide authentication and chain-selection state.
// It is created at startup from the persisted snapshot and cleared, not
// deleted, on logout.
type Session struct {
	CurrentUserEmail string            `json:"currentUserEmail,omitempty"`
	IsAuthenticated  bool              `json:"isAuthenticated"`
	ActiveChainID    chain.ID          `json:"activeChainId"`
	NetworkMode      chain.NetworkMode `json:"networkMode"`
}

// Manager owns the user collection and the session.
type Manager struct {
	mu      sync.RWMutex
	users   []User
	session Session
}

// NewManager creates a manager with an empty user set and a default session
// (native chain, testnet, unauthenticated).
func NewManager() *Manager {
	return &Manager{
		session: Session{
			ActiveChainID: chain.Itani,
			NetworkMode:   chain.Testnet,
		},
	}
}

// NormalizeEmail trims surrounding whitespace and case-folds an email.
// Normalized form is the uniqueness key for users.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user. Fails with DUPLICATE_USER if a user with the
// same normalized email exists in any letter case.
func (m *Manager) Register(email, password string) error {
	norm := NormalizeEmail(email)
	if norm == "" || password == "" {
		return walleterr.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == norm {
			return walleterr.WithDetails(walleterr.ErrDuplicateUser, map[string]string{
				"email": norm,
			})
		}
	}

	m.users = append(m.users, User{
		Email:          norm,
		PasswordDigest: keyvault.Digest(password),
	})
	return nil
}

// Login verifies credentials and authenticates the session. Fails with
// INVALID_CREDENTIALS when no user matches or the digest differs; the two
// cases are deliberately indistinguishable to the caller.
func (m *Manager) Login(email, password string) error {
	norm := NormalizeEmail(email)
	digest := keyvault.Digest(password)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == norm && u.PasswordDigest == digest {
			m.session.CurrentUserEmail = norm
			m.session.IsAuthenticated = true
			return nil
		}
	}
	return walleterr.ErrInvalidCredentials
}

// Logout clears the authenticated session fields unconditionally.
// Idempotent; chain selection and network mode survive logout.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session.CurrentUserEmail = ""
	m.session.IsAuthenticated = false
}

// DigestOf resolves a normalized email to the user's credential digest.
// Implements the key vault's DigestSource.
func (m *Manager) DigestOf(email string) (string, bool) {
	norm := NormalizeEmail(email)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == norm {
			return u.PasswordDigest, true
		}
	}
	return "", false
}

// CurrentUser returns the authenticated user's email, if any.
func (m *Manager) CurrentUser() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.session.IsAuthenticated {
		return "", false
	}
	return m.session.CurrentUserEmail, true
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.IsAuthenticated
}

// Session returns a copy of the current session state.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// ActiveChain returns the currently selected chain.
func (m *Manager) ActiveChain() chain.ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveChainID
}

// SetActiveChain selects a chain.
func (m *Manager) SetActiveChain(id chain.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.ActiveChainID = id
}

// NetworkMode returns the current network mode.
func (m *Manager) NetworkMode() chain.NetworkMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.NetworkMode
}

// SetNetworkMode selects the test or main network for the native chain.
func (m *Manager) SetNetworkMode(mode chain.NetworkMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.NetworkMode = mode
}

// Users returns a copy of the user collection in insertion order.
func (m *Manager) Users() []User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]User, len(m.users))
	copy(out, m.users)
	return out
}

// UserExists reports whether a user exists for the normalized email.
func (m *Manager) UserExists(email string) bool {
	_, ok := m.DigestOf(email)
	return ok
}

// Restore replaces users and session from a loaded snapshot. Used once at
// startup before the service becomes ready.
func (m *Manager) Restore(users []User, session Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make([]User, len(users))
	copy(m.users, users)

	if session.ActiveChainID == "" {
		session.ActiveChainID = chain.Itani
	}
	if session.NetworkMode == "" {
		session.NetworkMode = chain.Testnet
	}
	m.session = session
}
