package config

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "jirascope"

	// KeyringPasswordItem is the key for the Jira password/API token
	KeyringPasswordItem = "jira-password"
)

// KeyringManager handles secure credential storage in the OS keychain.
// macOS: Keychain Access, Windows: Credential Manager, Linux: Secret
// Service (requires libsecret).
type KeyringManager struct{}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{}
}

// SavePassword stores the Jira password or API token in the OS keychain
func (km *KeyringManager) SavePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if err := keyring.Set(KeyringService, KeyringPasswordItem, password); err != nil {
		return fmt.Errorf("save to OS keychain: %w", err)
	}
	return nil
}

// GetPassword retrieves the stored credential. An unset credential is
// returned as an empty string, not an error.
func (km *KeyringManager) GetPassword() (string, error) {
	password, err := keyring.Get(KeyringService, KeyringPasswordItem)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read from OS keychain: %w", err)
	}
	return password, nil
}

// DeletePassword removes the stored credential. Deleting an unset
// credential is not an error.
func (km *KeyringManager) DeletePassword() error {
	err := keyring.Delete(KeyringService, KeyringPasswordItem)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete from OS keychain: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keychain is usable. Returns false on
// headless systems (CI) without a keychain service.
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
