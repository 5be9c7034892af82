package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lifetrack/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Users lists every keyring entry the application reads, keyed by a short name for the CLI.
var Users = map[string]string{
	"remote":  constants.DefaultKeyringUser,
	"openai":  constants.KeyringOpenAIKey,
	"gemini":  constants.KeyringGeminiKey,
	"jwt":     constants.KeyringJWTSecret,
	"api":     constants.KeyringAPIPassword,
	"webhook": constants.KeyringWebhook,
}

// Get returns the secret stored for user under the application's service name.
func Get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for user.
func Set(user, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", user)
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored for user.
func Delete(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Lookup is Get that treats a missing or unavailable keyring as an empty secret.
func Lookup(user string) string {
	secret, err := Get(user)
	if err != nil {
		return ""
	}
	return secret
}

// GetConnectionString retrieves the remote mirror connection string.
func GetConnectionString() (string, error) {
	return Get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the remote mirror connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return Set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the remote mirror connection string.
func DeleteConnectionString() error {
	return Delete(constants.DefaultKeyringUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
