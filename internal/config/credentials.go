package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// EnvPassword is the environment variable checked before the keychain.
const EnvPassword = "JIRASCOPE_PASSWORD"

// CredentialSource tells where a resolved credential came from.
type CredentialSource string

const (
	SourceEnv      CredentialSource = "environment"
	SourceKeychain CredentialSource = "keychain"
	SourcePrompt   CredentialSource = "prompt"
	SourceNone     CredentialSource = "none"
)

// CredentialManager resolves the Jira password or API token.
// Resolution order: environment variable, OS keychain, interactive prompt.
type CredentialManager struct {
	keyring *KeyringManager
}

// NewCredentialManager creates a credential manager backed by the OS keychain
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{keyring: NewKeyringManager()}
}

// Keyring exposes the underlying keychain manager
func (cm *CredentialManager) Keyring() *KeyringManager {
	return cm.keyring
}

// Resolve returns the credential and where it was found. Only falls back
// to the interactive prompt when env and keychain are both empty.
func (cm *CredentialManager) Resolve(username string) (string, CredentialSource, error) {
	if password := os.Getenv(EnvPassword); password != "" {
		return password, SourceEnv, nil
	}

	if cm.keyring.IsAvailable() {
		password, err := cm.keyring.GetPassword()
		if err != nil {
			return "", SourceNone, err
		}
		if password != "" {
			return password, SourceKeychain, nil
		}
	}

	password, err := cm.Prompt(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		return "", SourceNone, err
	}
	return password, SourcePrompt, nil
}

// Peek reports where Resolve would find a credential without prompting.
func (cm *CredentialManager) Peek() CredentialSource {
	if os.Getenv(EnvPassword) != "" {
		return SourceEnv
	}
	if cm.keyring.IsAvailable() {
		if password, err := cm.keyring.GetPassword(); err == nil && password != "" {
			return SourceKeychain
		}
	}
	return SourceNone
}

// Prompt reads a password from stdin without echoing. The prompt goes to
// stderr so stdout stays clean for graph output.
func (cm *CredentialManager) Prompt(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		bytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	// Piped input
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
