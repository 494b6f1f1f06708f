package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/fileutil"
	"github.com/itani-network/kobswallet/internal/store"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

const (
	// Extension is the archive file extension.
	Extension = ".kobs"

	dirPermissions  = 0o750
	filePermissions = 0o600
)

// Service creates and restores wallet state archives.
type Service struct {
	backupDir string
	gateway   *store.Gateway
}

// NewService creates a backup service over the persistence gateway.
func NewService(backupDir string, gateway *store.Gateway) *Service {
	return &Service{
		backupDir: backupDir,
		gateway:   gateway,
	}
}

// Create exports the current wallet state as an encrypted archive and
// returns the archive and the path it was written to.
func (s *Service) Create(passphrase string) (*Archive, string, error) {
	snap := s.gateway.Load()

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, "", walleterr.Wrap(err, "serializing wallet state")
	}

	encrypted, err := encrypt(payload, passphrase)
	if err != nil {
		return nil, "", walleterr.Wrap(err, "encrypting backup")
	}

	archive := NewArchive(newSnapshotManifest(snap), encrypted)

	path, err := s.write(archive)
	if err != nil {
		return nil, "", err
	}
	return archive, path, nil
}

// Verify checks an archive's structure and payload checksum without
// decrypting it.
func (s *Service) Verify(path string) (*Manifest, error) {
	archive, err := s.read(path)
	if err != nil {
		return nil, err
	}
	if err := archive.Validate(); err != nil {
		return nil, err
	}
	return &archive.Manifest, nil
}

// Restore replaces the wallet state with the archive's snapshot. The
// current state is overwritten; callers confirm before invoking this.
func (s *Service) Restore(path, passphrase string) error {
	archive, err := s.read(path)
	if err != nil {
		return err
	}
	if err := archive.Validate(); err != nil {
		return err
	}

	payload, err := decrypt(archive.EncryptedData, passphrase)
	if err != nil {
		return err
	}

	var snap store.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return walleterr.Wrap(err, "decoding backup payload")
	}

	return s.gateway.Save(&snap)
}

// List returns the archive filenames in the backup directory.
func (s *Service) List() ([]string, error) {
	if err := os.MkdirAll(s.backupDir, dirPermissions); err != nil {
		return nil, walleterr.Wrap(err, "creating backup directory")
	}

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, walleterr.Wrap(err, "reading backup directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == Extension {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func newSnapshotManifest(snap *store.Snapshot) Manifest {
	seen := make(map[chain.ID]bool)
	var chains []string
	for _, acct := range snap.Accounts {
		if !seen[acct.ChainID] {
			seen[acct.ChainID] = true
			chains = append(chains, acct.ChainID.String())
		}
	}
	return NewManifest(len(snap.Users), len(snap.Accounts), chains)
}

func (s *Service) write(archive *Archive) (string, error) {
	if err := os.MkdirAll(s.backupDir, dirPermissions); err != nil {
		return "", walleterr.Wrap(err, "creating backup directory")
	}

	name := "kobswallet-" + time.Now().Format("2006-01-02-150405") + Extension
	path := filepath.Join(s.backupDir, name)

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", walleterr.Wrap(err, "serializing archive")
	}

	if err := fileutil.WriteAtomic(path, data, filePermissions); err != nil {
		return "", walleterr.Wrap(err, "writing archive")
	}
	return path, nil
}

func (s *Service) read(path string) (*Archive, error) {
	// #nosec G304 -- archive path is user-provided by design
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, walleterr.WithDetails(walleterr.ErrBackupNotFound, map[string]string{
				"path": path,
			})
		}
		return nil, walleterr.Wrap(err, "reading archive")
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, walleterr.ErrBackupCorrupted
	}
	return &archive, nil
}
