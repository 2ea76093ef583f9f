package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

// FileVaultService is a SecretVault over any 99designs keyring backend.
// OpenFileVault gives the encrypted-file flavour used when no OS keychain exists.
type FileVaultService struct {
	ring keyring.Keyring
}

func NewFileVaultService(ring keyring.Keyring) *FileVaultService {
	return &FileVaultService{ring: ring}
}

// OpenFileVault opens (or creates) an encrypted file keyring in dir.
func OpenFileVault(dir, password string) (*FileVaultService, error) {
	if dir == "" {
		return nil, errors.New("vault dir is required")
	}
	if password == "" {
		return nil, errors.New("vault password is required")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:      serviceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(password),
	})
	if err != nil {
		return nil, fmt.Errorf("open file vault: %w", err)
	}
	return NewFileVaultService(ring), nil
}

func (s *FileVaultService) Get(owner string) (string, error) {
	if owner == "" {
		return "", errors.New("owner is required")
	}
	item, err := s.ring.Get(owner)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func (s *FileVaultService) Set(owner, secret string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	return s.ring.Set(keyring.Item{
		Key:   owner,
		Data:  []byte(secret),
		Label: owner,
	})
}

func (s *FileVaultService) Delete(owner string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	err := s.ring.Remove(owner)
	if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
