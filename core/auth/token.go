// Package auth manages the optional Socorro API token. The token only
// raises rate limits; it must have no permissions attached, so it can
// never unlock protected fields. Storage is the system keychain, with a
// token-file fallback for CI and headless environments.
package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "socorro-cli"
	tokenKey    = "api-token"
)

// TokenPathEnvVar names a file containing the API token, for environments
// without a keychain. The file should live outside the project directory
// with restricted permissions.
const TokenPathEnvVar = "SOCORRO_API_TOKEN_PATH"

// Token returns the stored API token, or "" when none is available.
// Sources are checked in order: system keychain, then the token file.
func Token() string {
	if token, err := keyring.Get(serviceName, tokenKey); err == nil && token != "" {
		return token
	}
	return tokenFromFile()
}

// HasToken reports whether a token is available from any source.
func HasToken() bool {
	return Token() != ""
}

// Store writes the token to the system keychain and verifies it can be
// read back.
func Store(token string) error {
	if err := keyring.Set(serviceName, tokenKey, token); err != nil {
		return fmt.Errorf("storing token in keychain: %w", err)
	}
	stored, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		return fmt.Errorf("token stored but verification failed: %w", err)
	}
	if stored != token {
		return fmt.Errorf("token mismatch after storage")
	}
	return nil
}

// Delete removes the token from the system keychain. A missing entry is
// not an error.
func Delete() error {
	err := keyring.Delete(serviceName, tokenKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("removing token from keychain: %w", err)
	}
	return nil
}

// KeychainStatus describes the keychain state for 'auth status'.
type KeychainStatus struct {
	HasToken bool
	Err      error
}

// Status returns the keychain state, surfacing backend errors for
// debugging instead of hiding them behind "no token".
func Status() KeychainStatus {
	_, err := keyring.Get(serviceName, tokenKey)
	switch {
	case err == nil:
		return KeychainStatus{HasToken: true}
	case err == keyring.ErrNotFound:
		return KeychainStatus{}
	default:
		return KeychainStatus{Err: err}
	}
}

// tokenFromFile reads the token file named by TokenPathEnvVar. Missing,
// unreadable, or empty files all mean "no token".
func tokenFromFile() string {
	path := os.Getenv(TokenPathEnvVar)
	if path == "" {
		return ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
