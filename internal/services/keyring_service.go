package services

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

const serviceName = "glossa"

// KeyringService is a SecretVault backed by the OS keychain.
type KeyringService struct {
	service string
}

func NewKeyringService() *KeyringService {
	return &KeyringService{service: serviceName}
}

func (s *KeyringService) Get(owner string) (string, error) {
	if owner == "" {
		return "", errors.New("owner is required")
	}
	secret, err := keyring.Get(s.service, owner)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return secret, nil
}

func (s *KeyringService) Set(owner, secret string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	return keyring.Set(s.service, owner, secret)
}

func (s *KeyringService) Delete(owner string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	err := keyring.Delete(s.service, owner)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Available returns true if the OS keychain answers a lookup.
// GLOSSA_KEYRING_DISABLED=1 turns it off for headless and CI machines.
// The probe only reads, so it never creates entries or asks to unlock for a write.
func (s *KeyringService) Available() bool {
	if os.Getenv("GLOSSA_KEYRING_DISABLED") == "1" {
		return false
	}
	_, err := keyring.Get(s.service+"-keyring-probe", "probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
