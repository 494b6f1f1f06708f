// Package wallet orchestrates identity, custody, chain access and
// persistence behind a single service facade.
package wallet

import (
	"context"

	"github.com/itani-network/kobswallet/internal/account"
	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/chain/itani"
	"github.com/itani-network/kobswallet/internal/config"
	"github.com/itani-network/kobswallet/internal/identity"
	"github.com/itani-network/kobswallet/internal/keyvault"
	"github.com/itani-network/kobswallet/internal/ledger"
	"github.com/itani-network/kobswallet/internal/store"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// NativeAdapterFactory builds the native chain adapter for a network mode.
// Injected so endpoint overrides from configuration survive mode switches.
type NativeAdapterFactory func(mode chain.NetworkMode) chain.Adapter

// Service is the wallet facade. Construct one per process; every operation
// that mutates state persists the snapshot before returning.
type Service struct {
	identity *identity.Manager
	accounts *account.Registry
	vault    *keyvault.Vault
	chains   *chain.Registry
	store    *store.Gateway
	logger   *config.Logger

	nativeFor NativeAdapterFactory
}

// Options configures a Service.
type Options struct {
	Chains *chain.Registry
	Store  *store.Gateway
	Logger *config.Logger

	// NativeFor rebuilds the native adapter on network mode switches.
	// Defaults to the stock iTani endpoints.
	NativeFor NativeAdapterFactory
}

// New creates a service and restores state from the persistence gateway.
// Load never fails; a missing or corrupt record starts the wallet fresh.
func New(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = config.NullLogger()
	}
	if opts.NativeFor == nil {
		opts.NativeFor = func(mode chain.NetworkMode) chain.Adapter {
			return itani.NewClient(itani.ConfigFor(mode), nil)
		}
	}

	im := identity.NewManager()
	svc := &Service{
		identity:  im,
		accounts:  account.NewRegistry(),
		vault:     keyvault.New(im),
		chains:    opts.Chains,
		store:     opts.Store,
		logger:    opts.Logger,
		nativeFor: opts.NativeFor,
	}

	snap := opts.Store.Load()
	im.Restore(snap.Users, identity.Session{
		CurrentUserEmail: snap.CurrentUserEmail,
		IsAuthenticated:  snap.IsAuthenticated,
		ActiveChainID:    snap.ActiveChainID,
	})
	svc.accounts.Restore(snap.Accounts)

	return svc
}

// persist writes the current state through the gateway. Network mode is
// session-scoped and deliberately not part of the snapshot.
func (s *Service) persist() error {
	session := s.identity.Session()
	return s.store.Save(&store.Snapshot{
		Accounts:         s.accounts.All(),
		Users:            s.identity.Users(),
		ActiveChainID:    session.ActiveChainID,
		IsAuthenticated:  session.IsAuthenticated,
		CurrentUserEmail: session.CurrentUserEmail,
	})
}

// requireAuth returns the authenticated user's email.
func (s *Service) requireAuth() (string, error) {
	email, ok := s.identity.CurrentUser()
	if !ok {
		return "", walleterr.ErrNotAuthenticated
	}
	return email, nil
}

// Register creates a new user account.
func (s *Service) Register(email, password string) error {
	if err := s.identity.Register(email, password); err != nil {
		return err
	}
	return s.persist()
}

// Login authenticates a user.
func (s *Service) Login(email, password string) error {
	if err := s.identity.Login(email, password); err != nil {
		return err
	}
	return s.persist()
}

// Logout clears the authenticated session. Idempotent.
func (s *Service) Logout() error {
	s.identity.Logout()
	return s.persist()
}

// IsAuthenticated reports whether a user is logged in.
func (s *Service) IsAuthenticated() bool {
	return s.identity.IsAuthenticated()
}

// CurrentUser returns the authenticated user's email, if any.
func (s *Service) CurrentUser() (string, bool) {
	return s.identity.CurrentUser()
}

// ActiveChain returns the currently selected chain.
func (s *Service) ActiveChain() chain.ID {
	return s.identity.ActiveChain()
}

// NetworkMode returns the current native network mode.
func (s *Service) NetworkMode() chain.NetworkMode {
	return s.identity.NetworkMode()
}

// Chains returns the registered chain IDs.
func (s *Service) Chains() []chain.ID {
	return s.chains.Chains()
}

// CreateAccount generates a new key for the given chain and stores it
// encrypted under the authenticated user. The returned mnemonic is the only
// copy; it is never persisted.
func (s *Service) CreateAccount(chainID chain.ID) (account.Account, string, error) {
	email, err := s.requireAuth()
	if err != nil {
		return account.Account{}, "", err
	}

	if _, err := s.chains.Resolve(chainID); err != nil {
		return account.Account{}, "", err
	}

	gen, err := GenerateKey(chainID)
	if err != nil {
		return account.Account{}, "", err
	}

	encrypted, err := s.vault.Encrypt(gen.PrivateKey, email)
	if err != nil {
		return account.Account{}, "", err
	}

	acct := account.Account{
		Address:      gen.Address,
		EncryptedKey: encrypted,
		OwnerEmail:   email,
		ChainID:      chainID,
	}
	s.accounts.Add(acct)

	if err := s.persist(); err != nil {
		return account.Account{}, "", err
	}
	return acct, gen.Mnemonic, nil
}

// ImportAccount stores an existing private key for the given chain,
// encrypted under the authenticated user. The address is derived from the
// key.
func (s *Service) ImportAccount(chainID chain.ID, privateKey string) (account.Account, error) {
	email, err := s.requireAuth()
	if err != nil {
		return account.Account{}, err
	}

	if _, err := s.chains.Resolve(chainID); err != nil {
		return account.Account{}, err
	}

	address, err := DeriveAddress(chainID, privateKey)
	if err != nil {
		return account.Account{}, err
	}

	encrypted, err := s.vault.Encrypt(privateKey, email)
	if err != nil {
		return account.Account{}, err
	}

	acct := account.Account{
		Address:      address,
		EncryptedKey: encrypted,
		OwnerEmail:   email,
		ChainID:      chainID,
	}
	s.accounts.Add(acct)

	if err := s.persist(); err != nil {
		return account.Account{}, err
	}
	return acct, nil
}

// RecoverAccount re-derives a key from a mnemonic and stores it encrypted
// under the authenticated user.
func (s *Service) RecoverAccount(chainID chain.ID, mnemonic string) (account.Account, error) {
	email, err := s.requireAuth()
	if err != nil {
		return account.Account{}, err
	}

	gen, err := RecoverKey(chainID, mnemonic)
	if err != nil {
		return account.Account{}, err
	}

	encrypted, err := s.vault.Encrypt(gen.PrivateKey, email)
	if err != nil {
		return account.Account{}, err
	}

	acct := account.Account{
		Address:      gen.Address,
		EncryptedKey: encrypted,
		OwnerEmail:   email,
		ChainID:      chainID,
	}
	s.accounts.Add(acct)

	if err := s.persist(); err != nil {
		return account.Account{}, err
	}
	return acct, nil
}

// Accounts lists the authenticated user's accounts in creation order.
func (s *Service) Accounts() ([]account.Account, error) {
	email, err := s.requireAuth()
	if err != nil {
		return nil, err
	}
	return s.accounts.AccountsOf(email), nil
}

// ActiveAccount returns the authenticated user's account on the active
// chain: the first match in creation order.
func (s *Service) ActiveAccount() (account.Account, error) {
	email, err := s.requireAuth()
	if err != nil {
		return account.Account{}, err
	}

	acct, ok := s.accounts.ActiveAccount(email, s.identity.ActiveChain())
	if !ok {
		return account.Account{}, walleterr.WithDetails(walleterr.ErrAccountNotFound, map[string]string{
			"chain": s.identity.ActiveChain().String(),
		})
	}
	return acct, nil
}

// RefreshBalance fetches the native balance for the active account and
// caches it in memory. A fetch failure propagates without retry; the cached
// value is left as-is. Balance-only updates are not persisted; the cache
// reaches disk with the next snapshot-triggering mutation.
func (s *Service) RefreshBalance(ctx context.Context) (string, error) {
	email, err := s.requireAuth()
	if err != nil {
		return "", err
	}

	chainID := s.identity.ActiveChain()
	acct, ok := s.accounts.ActiveAccount(email, chainID)
	if !ok {
		return "", walleterr.WithDetails(walleterr.ErrAccountNotFound, map[string]string{
			"chain": chainID.String(),
		})
	}

	adapter, err := s.chains.Resolve(chainID)
	if err != nil {
		return "", err
	}

	balance, err := adapter.GetBalance(ctx, acct.Address)
	if err != nil {
		return "", err
	}

	s.accounts.SetCachedBalance(email, chainID, balance)
	return balance, nil
}

// RefreshTokenBalances fetches every native token balance for the active
// account and caches the map. Only meaningful on the native chain; a
// per-token failure degrades that entry to "0" without aborting the batch.
func (s *Service) RefreshTokenBalances(ctx context.Context) (map[string]string, error) {
	email, err := s.requireAuth()
	if err != nil {
		return nil, err
	}

	chainID := s.identity.ActiveChain()
	acct, ok := s.accounts.ActiveAccount(email, chainID)
	if !ok {
		return nil, walleterr.WithDetails(walleterr.ErrAccountNotFound, map[string]string{
			"chain": chainID.String(),
		})
	}

	ext, err := s.chains.Extended(chainID)
	if err != nil {
		return nil, err
	}

	balances := ledger.New(ext).RefreshAll(ctx, acct.Address)
	s.accounts.SetTokenBalances(email, chainID, balances)
	return balances, nil
}

// TokenBalances returns the active account's cached token balances paired
// with token descriptors in registry order, for display.
func (s *Service) TokenBalances() ([]ledger.TokenBalance, error) {
	acct, err := s.ActiveAccount()
	if err != nil {
		return nil, err
	}
	return ledger.Balances(acct.TokenBalances), nil
}

// SwitchChain selects a chain. The returned channel reports the completion
// of the follow-up balance refresh: on the native chain the refresh runs in
// the background and its outcome is delivered on the channel; elsewhere the
// channel completes immediately. The chain selection itself is effective
// before SwitchChain returns.
func (s *Service) SwitchChain(ctx context.Context, id chain.ID) (<-chan error, error) {
	if _, err := s.requireAuth(); err != nil {
		return nil, err
	}
	if _, err := s.chains.Resolve(id); err != nil {
		return nil, err
	}

	s.identity.SetActiveChain(id)
	if err := s.persist(); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	if !id.IsNative() {
		done <- nil
		close(done)
		return done, nil
	}

	go func() {
		defer close(done)
		if _, err := s.RefreshTokenBalances(ctx); err != nil {
			done <- err
			return
		}
		done <- nil
	}()
	return done, nil
}

// SetNetworkMode flips the native chain between testnet and mainnet by
// replacing its adapter in the registry. Other chains are untouched. The
// mode is session state and resets to testnet on restart.
func (s *Service) SetNetworkMode(mode chain.NetworkMode) {
	s.identity.SetNetworkMode(mode)
	s.chains.Replace(chain.Itani, s.nativeFor(mode))
}

// SendTransaction submits a transfer from the active account on the active
// chain and returns the transaction ID. No retry on failure.
func (s *Service) SendTransaction(ctx context.Context, to, value, tokenSymbol, memo string) (string, error) {
	acct, err := s.ActiveAccount()
	if err != nil {
		return "", err
	}

	adapter, err := s.chains.Resolve(acct.ChainID)
	if err != nil {
		return "", err
	}

	return adapter.SendTransaction(ctx, chain.Transaction{
		From:  acct.Address,
		To:    to,
		Value: value,
		Token: tokenSymbol,
		Memo:  memo,
	})
}

// DeployContract deploys a contract on the active chain. Fails with
// UNSUPPORTED_OPERATION off the native chain.
func (s *Service) DeployContract(ctx context.Context, name, wasmBase64 string) (string, error) {
	ext, err := s.extended()
	if err != nil {
		return "", err
	}
	return ext.DeployContract(ctx, name, wasmBase64)
}

// MintTokens mints a new token through the native token factory.
func (s *Service) MintTokens(ctx context.Context, req chain.MintRequest) (string, error) {
	ext, err := s.extended()
	if err != nil {
		return "", err
	}
	return ext.MintTokens(ctx, req)
}

// ForceTransfer moves tokens between addresses with operator authority.
func (s *Service) ForceTransfer(ctx context.Context, from, to, symbol, amount string) (string, error) {
	ext, err := s.extended()
	if err != nil {
		return "", err
	}
	return ext.ForceTransfer(ctx, from, to, symbol, amount)
}

// CreateCustomToken creates a user-defined token on the native chain. The
// authenticated user's native address is recorded as the creator.
func (s *Service) CreateCustomToken(ctx context.Context, req chain.CustomTokenRequest) (string, error) {
	ext, err := s.extended()
	if err != nil {
		return "", err
	}

	if req.Creator == "" {
		email, _ := s.identity.CurrentUser()
		if acct, ok := s.accounts.ActiveAccount(email, chain.Itani); ok {
			req.Creator = acct.Address
		}
	}
	return ext.CreateCustomToken(ctx, req)
}

// CallContract invokes a method on a deployed native chain contract.
func (s *Service) CallContract(ctx context.Context, contract, method string, args []any) (string, error) {
	ext, err := s.extended()
	if err != nil {
		return "", err
	}
	return ext.CallContract(ctx, contract, method, args)
}

// extended resolves the active chain's extended adapter, requiring an
// authenticated session.
func (s *Service) extended() (chain.ExtendedAdapter, error) {
	if _, err := s.requireAuth(); err != nil {
		return nil, err
	}
	return s.chains.Extended(s.identity.ActiveChain())
}

// RevealKey decrypts the active account's private key after re-verifying
// the user's password. A wrong password fails the digest check here; the
// vault itself cannot detect a wrong key.
func (s *Service) RevealKey(password string) (string, error) {
	email, err := s.requireAuth()
	if err != nil {
		return "", err
	}

	digest, ok := s.identity.DigestOf(email)
	if !ok || digest != keyvault.Digest(password) {
		return "", walleterr.ErrInvalidCredentials
	}

	acct, err := s.ActiveAccount()
	if err != nil {
		return "", err
	}

	return s.vault.Decrypt(acct.EncryptedKey, email)
}
