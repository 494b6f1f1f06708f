// Package keyvault encrypts private key material at rest.
//
// The symmetric key for a user is their credential digest reused directly:
// there is no independent key-derivation step and no salt. This mirrors the
// legacy wallet data format and cannot change without breaking every stored
// ciphertext. The cipher is AES-256-CTR, so decrypting under the wrong
// user's key yields garbled plaintext rather than an error; callers must not
// treat a non-empty result as proof of correctness.
package keyvault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// ErrUnknownUser indicates no digest exists for the given email.
var ErrUnknownUser = &walleterr.WalletError{
	Code:     "UNKNOWN_USER",
	Message:  "no registered user for email",
	ExitCode: walleterr.ExitNotFound,
}

// ErrMalformedCiphertext indicates the ciphertext is not valid vault output.
var ErrMalformedCiphertext = &walleterr.WalletError{
	Code:     "MALFORMED_CIPHERTEXT",
	Message:  "ciphertext is not valid vault output",
	ExitCode: walleterr.ExitInput,
}

// DigestSource resolves a normalized email to the user's credential digest.
// The identity manager implements this.
type DigestSource interface {
	DigestOf(email string) (string, bool)
}

// Vault performs symmetric encryption of key material keyed per user.
type Vault struct {
	users DigestSource
}

// New creates a vault backed by the given digest source.
func New(users DigestSource) *Vault {
	return &Vault{users: users}
}

// Digest computes the credential digest: hex(SHA-256(password)).
// Unsalted and unstretched by design of the stored data format.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DeriveUserKey returns the user's 32-byte symmetric key. The key is the raw
// bytes of the credential digest; the digest doubles as the encryption key.
func (v *Vault) DeriveUserKey(email string) ([]byte, error) {
	digest, ok := v.users.DigestOf(email)
	if !ok {
		return nil, walleterr.WithDetails(ErrUnknownUser, map[string]string{"email": email})
	}

	key, err := hex.DecodeString(digest)
	if err != nil || len(key) != sha256.Size {
		return nil, fmt.Errorf("decoding user digest: %w", walleterr.ErrStorageCorrupt)
	}

	return key, nil
}

// Encrypt encrypts plainKey under the user's key. The output is
// hex(iv || ciphertext) with a random 16-byte IV per call.
func (v *Vault) Encrypt(plainKey, email string) (string, error) {
	key, err := v.DeriveUserKey(email)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	out := make([]byte, len(plainKey))
	cipher.NewCTR(block, iv).XORKeyStream(out, []byte(plainKey))

	return hex.EncodeToString(iv) + hex.EncodeToString(out), nil
}

// Decrypt decrypts ciphertext under the user's key. Decrypting under the
// wrong user's key does not fail; it returns whatever bytes the stream
// cipher produces.
func (v *Vault) Decrypt(ciphertext, email string) (string, error) {
	key, err := v.DeriveUserKey(email)
	if err != nil {
		return "", err
	}

	raw, err := hex.DecodeString(ciphertext)
	if err != nil || len(raw) < aes.BlockSize {
		return "", ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	iv := raw[:aes.BlockSize]
	body := raw[aes.BlockSize:]

	out := make([]byte, len(body))
	cipher.NewCTR(block, iv).XORKeyStream(out, body)

	return string(out), nil
}
