// Package backup exports and restores encrypted wallet state archives.
package backup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"filippo.io/age"

	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// Version is the current archive format version.
const Version = 1

// Archive is a complete wallet state backup. The payload is the age-encrypted
// state snapshot; the checksum covers the ciphertext so integrity can be
// verified without the passphrase.
type Archive struct {
	Version       int      `json:"version"`
	Manifest      Manifest `json:"manifest"`
	EncryptedData []byte   `json:"encrypted_data"`
	Checksum      string   `json:"checksum"`
}

// Manifest is the cleartext metadata of an archive.
type Manifest struct {
	CreatedAt        time.Time `json:"created_at"`
	UserCount        int       `json:"user_count"`
	AccountCount     int       `json:"account_count"`
	Chains           []string  `json:"chains"`
	EncryptionMethod string    `json:"encryption_method"`
}

// NewManifest creates a manifest for the given snapshot shape.
func NewManifest(userCount, accountCount int, chains []string) Manifest {
	return Manifest{
		CreatedAt:        time.Now().UTC(),
		UserCount:        userCount,
		AccountCount:     accountCount,
		Chains:           chains,
		EncryptionMethod: "age-scrypt",
	}
}

// NewArchive assembles an archive over already-encrypted data.
func NewArchive(manifest Manifest, encryptedData []byte) *Archive {
	return &Archive{
		Version:       Version,
		Manifest:      manifest,
		EncryptedData: encryptedData,
		Checksum:      Checksum(encryptedData),
	}
}

// Validate checks archive structure and payload integrity.
func (a *Archive) Validate() error {
	if a.Version != Version {
		return walleterr.WithDetails(walleterr.ErrBackupCorrupted, map[string]string{
			"version": fmt.Sprintf("%d", a.Version),
		})
	}
	if len(a.EncryptedData) == 0 {
		return walleterr.ErrBackupCorrupted
	}
	if Checksum(a.EncryptedData) != a.Checksum {
		return walleterr.ErrBackupCorrupted
	}
	return nil
}

// Checksum computes the SHA-256 checksum of data as hex.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// encrypt seals plaintext under a passphrase with an age scrypt recipient.
func encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// decrypt opens ciphertext sealed by encrypt. A wrong passphrase fails here,
// unlike the key vault's stream cipher.
func decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, walleterr.ErrDecryptionFailed
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, walleterr.ErrDecryptionFailed
	}

	return plaintext, nil
}
