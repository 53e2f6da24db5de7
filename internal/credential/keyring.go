// Package credential remembers the login password in the system keyring.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "fleet"

// ErrNotFound is returned when no password is remembered for an email.
var ErrNotFound = errors.New("credential not found")

// Ring stores and retrieves passwords keyed by login email.
type Ring struct {
	ring keyring.Keyring
}

// Open returns a Ring backed by the first available system keyring,
// falling back to an encrypted file under dir.
func Open(dir string) (*Ring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("fleet-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

// New wraps an existing keyring, e.g. keyring.NewArrayKeyring in tests.
func New(ring keyring.Keyring) *Ring {
	return &Ring{ring: ring}
}

func passwordKey(email string) string {
	return "password:" + email
}

// Password returns the remembered password for email.
func (r *Ring) Password(email string) (string, error) {
	item, err := r.ring.Get(passwordKey(email))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting password for %q: %w", email, err)
	}
	return string(item.Data), nil
}

// Remember stores password for email.
func (r *Ring) Remember(email, password string) error {
	err := r.ring.Set(keyring.Item{
		Key:   passwordKey(email),
		Data:  []byte(password),
		Label: "fleet login " + email,
	})
	if err != nil {
		return fmt.Errorf("remembering password for %q: %w", email, err)
	}
	return nil
}

// Forget removes the remembered password for email. Forgetting an unknown
// email is not an error.
func (r *Ring) Forget(email string) error {
	err := r.ring.Remove(passwordKey(email))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("forgetting password for %q: %w", email, err)
	}
	return nil
}
