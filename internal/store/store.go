// Package store persists wallet state to disk and migrates legacy records.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/itani-network/kobswallet/internal/account"
	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/config"
	"github.com/itani-network/kobswallet/internal/fileutil"
	"github.com/itani-network/kobswallet/internal/identity"
	"github.com/itani-network/kobswallet/internal/keyvault"
	"github.com/itani-network/kobswallet/pkg/errors"
)

// StorageKey is the logical name of the wallet state record. The record is
// stored as <data dir>/<StorageKey>.json.
const StorageKey = "kobs_wallet_state"

// LegacyOwnerEmail is assigned to accounts migrated from records that predate
// per-account ownership.
const LegacyOwnerEmail = "legacy@itani.local"

// Snapshot is the durable wallet state. NetworkMode is deliberately absent:
// the network mode is session-scoped and resets to testnet on startup.
type Snapshot struct {
	Accounts         []account.Account `json:"accounts"`
	Users            []identity.User   `json:"users"`
	ActiveChainID    chain.ID          `json:"activeChainId"`
	IsAuthenticated  bool              `json:"isAuthenticated"`
	CurrentUserEmail string            `json:"currentUserEmail"`
}

// DefaultSnapshot returns the state used when no record exists or the stored
// record cannot be read.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Accounts:      []account.Account{},
		Users:         []identity.User{},
		ActiveChainID: chain.Itani,
	}
}

// Gateway reads and writes the wallet state record.
type Gateway struct {
	path   string
	logger *config.Logger
}

// New creates a gateway persisting under dir. A nil logger disables
// diagnostics.
func New(dir string, logger *config.Logger) *Gateway {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Gateway{
		path:   filepath.Join(dir, StorageKey+".json"),
		logger: logger,
	}
}

// Path returns the backing file path.
func (g *Gateway) Path() string {
	return g.path
}

// Save atomically writes the snapshot to disk.
func (g *Gateway) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode wallet state")
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o750); err != nil {
		return errors.Wrap(err, "failed to create state directory")
	}

	if err := fileutil.WriteAtomic(g.path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write wallet state")
	}

	return nil
}

// Load reads the wallet state record. Load never fails: a missing or
// unreadable record yields the default snapshot, and legacy records are
// migrated in place. Callers always receive a usable snapshot.
func (g *Gateway) Load() *Snapshot {
	// #nosec G304 -- path is derived from the configured data directory
	data, err := os.ReadFile(g.path)
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Debug("wallet state unreadable, starting fresh: %v", err)
		}
		return DefaultSnapshot()
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		g.logger.Debug("wallet state corrupt, starting fresh: %v", err)
		return DefaultSnapshot()
	}

	snap := migrate(&raw, g.logger)

	// A session claiming authentication for a user that no longer exists is
	// stale; force re-login rather than trust it.
	if snap.IsAuthenticated && !hasUser(snap.Users, snap.CurrentUserEmail) {
		g.logger.Debug("stale session for %q, resetting authentication", snap.CurrentUserEmail)
		snap.IsAuthenticated = false
		snap.CurrentUserEmail = ""
	}

	if snap.ActiveChainID == "" {
		snap.ActiveChainID = chain.Itani
	}

	return snap
}

func hasUser(users []identity.User, email string) bool {
	if email == "" {
		return false
	}
	norm := identity.NormalizeEmail(email)
	for _, u := range users {
		if identity.NormalizeEmail(u.Email) == norm {
			return true
		}
	}
	return false
}

// rawSnapshot tolerates both the current and legacy record shapes.
type rawSnapshot struct {
	Accounts         []rawAccount `json:"accounts"`
	Users            []rawUser    `json:"users"`
	ActiveChainID    chain.ID     `json:"activeChainId"`
	IsAuthenticated  bool         `json:"isAuthenticated"`
	CurrentUserEmail string       `json:"currentUserEmail"`
}

type rawUser struct {
	Email          string `json:"email"`
	PasswordDigest string `json:"passwordDigest"`

	// Legacy field: plaintext password from records written before
	// credential hashing.
	Password string `json:"password"`
}

type rawAccount struct {
	Address       string            `json:"address"`
	EncryptedKey  string            `json:"encryptedKey"`
	OwnerEmail    string            `json:"ownerEmail"`
	ChainID       chain.ID          `json:"chainId"`
	CachedBalance string            `json:"cachedBalance"`
	TokenBalances map[string]string `json:"tokenBalances"`

	// Legacy fields from records written before key encryption and
	// per-account ownership.
	PrivateKey string `json:"privateKey"`
	Balance    string `json:"balance"`
}

// migrate upgrades legacy records to the current shape. Legacy plaintext
// passwords are replaced with their digest. Legacy key material is carried
// over verbatim into the encrypted slot; it only becomes recoverable once the
// owner re-imports it, so migration never touches key bytes.
func migrate(raw *rawSnapshot, logger *config.Logger) *Snapshot {
	snap := &Snapshot{
		Accounts:         make([]account.Account, 0, len(raw.Accounts)),
		Users:            make([]identity.User, 0, len(raw.Users)),
		ActiveChainID:    raw.ActiveChainID,
		IsAuthenticated:  raw.IsAuthenticated,
		CurrentUserEmail: raw.CurrentUserEmail,
	}

	for _, u := range raw.Users {
		user := identity.User{
			Email:          u.Email,
			PasswordDigest: u.PasswordDigest,
		}
		if user.PasswordDigest == "" && u.Password != "" {
			logger.Debug("migrating legacy credential for %q", u.Email)
			user.PasswordDigest = keyvault.Digest(u.Password)
		}
		snap.Users = append(snap.Users, user)
	}

	for _, a := range raw.Accounts {
		acct := account.Account{
			Address:       a.Address,
			EncryptedKey:  a.EncryptedKey,
			OwnerEmail:    a.OwnerEmail,
			ChainID:       a.ChainID,
			CachedBalance: a.CachedBalance,
			TokenBalances: a.TokenBalances,
		}
		if acct.EncryptedKey == "" && a.PrivateKey != "" {
			logger.Debug("migrating legacy key slot for account %s", a.Address)
			acct.EncryptedKey = a.PrivateKey
			if acct.OwnerEmail == "" {
				acct.OwnerEmail = LegacyOwnerEmail
			}
		}
		if acct.CachedBalance == "" && a.Balance != "" {
			acct.CachedBalance = a.Balance
		}
		if acct.ChainID == "" {
			acct.ChainID = chain.Itani
		}
		snap.Accounts = append(snap.Accounts, acct)
	}

	return snap
}
