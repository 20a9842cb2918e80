// Package keychain wraps the OS credential store for HTTPS tokens.
// Tokens are stored per host under a gitp-specific service name with the
// username as the account.
package keychain

import (
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"
)

// servicePrefix namespaces gitp entries per host.
const servicePrefix = "gitp_https_token_for_"

// timeout bounds each keyring call; some desktop backends hang when the
// agent is unavailable.
const timeout = 5 * time.Second

// ErrNotFound is returned when no token is stored for the given host and
// account.
var ErrNotFound = errors.New("keychain entry not found")

// Keychain is the secret-store interface the credential resolver
// consumes. The zero-value client talks to the real OS keychain; tests
// substitute a fake.
type Keychain interface {
	Store(host, account, secret string) error
	Retrieve(host, account string) (string, error)
	Delete(host, account string) error
}

// Client implements Keychain against the system keyring.
type Client struct{}

// New returns a keychain client backed by the OS credential store.
func New() *Client {
	return &Client{}
}

func service(host string) string {
	return servicePrefix + host
}

// Store saves a token for (host, account).
func (c *Client) Store(host, account, secret string) error {
	err := withTimeout(func() error {
		return keyring.Set(service(host), account, secret)
	})
	if err != nil {
		return fmt.Errorf("store token for %s@%s in keychain: %w", account, host, err)
	}
	return nil
}

// Retrieve looks up the token for (host, account). Returns ErrNotFound
// when no entry exists.
func (c *Client) Retrieve(host, account string) (string, error) {
	var secret string
	err := withTimeout(func() error {
		var err error
		secret, err = keyring.Get(service(host), account)
		return err
	})
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s@%s", ErrNotFound, account, host)
		}
		return "", fmt.Errorf("retrieve token for %s@%s from keychain: %w", account, host, err)
	}
	return secret, nil
}

// Delete removes the token for (host, account). Returns ErrNotFound when
// no entry exists, so callers can treat it as a distinct outcome.
func (c *Client) Delete(host, account string) error {
	err := withTimeout(func() error {
		return keyring.Delete(service(host), account)
	})
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s@%s", ErrNotFound, account, host)
		}
		return fmt.Errorf("delete token for %s@%s from keychain: %w", account, host, err)
	}
	return nil
}

// withTimeout runs fn in a goroutine and gives up after the package
// timeout. The abandoned call may still complete in the background; the
// keyring API offers no cancellation.
func withTimeout(fn func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()

	select {
	case err := <-errCh:
		return err
	case <-time.After(timeout):
		return errors.New("keychain operation timed out")
	}
}
