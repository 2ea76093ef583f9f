package services

import "fmt"

// SecretVault stores sensitive strings outside the settings file.
// A missing entry reads as "" with a nil error.
type SecretVault interface {
	Get(owner string) (string, error)
	Set(owner, secret string) error
	Delete(owner string) error
}

// VaultError reports a failed vault operation for a given key.
type VaultError struct {
	Op  string
	Key string
	Err error
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("vault %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *VaultError) Unwrap() error {
	return e.Err
}
