package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

var errNotLoggedIn = errors.New("not logged in, run `finctl login` first")

// Credentials is the session persisted between invocations.
type Credentials struct {
	API       string    `toml:"api"`
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at"`
	User      Profile   `toml:"user"`
}

// Profile is the signed-in user as shown by the CLI.
type Profile struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// defaultCredentialsPath returns finboard/credentials.toml under the user
// config directory.
func defaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "finboard", "credentials.toml"), nil
}

// loadCredentials reads the stored session. A missing or expired session is
// errNotLoggedIn.
func loadCredentials(path string, now time.Time) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials %s: %w", path, err)
	}

	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	if creds.Token == "" || (!creds.ExpiresAt.IsZero() && !now.Before(creds.ExpiresAt)) {
		return nil, errNotLoggedIn
	}
	return &creds, nil
}

func saveCredentials(path string, creds *Credentials) error {
	data, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials %s: %w", path, err)
	}
	return nil
}

func removeCredentials(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials %s: %w", path, err)
	}
	return nil
}
