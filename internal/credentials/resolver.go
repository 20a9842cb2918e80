// Package credentials resolves HTTPS credential secrets and manages the
// lifecycle of their keychain entries.
package credentials

import (
	"errors"
	"fmt"

	"github.com/gitp-cli/gitp/internal/keychain"
	"github.com/gitp-cli/gitp/internal/profile"
)

// Resolver turns a stored HTTPS credential into a usable secret. Storage
// policy (keychain vs. plaintext) is decided by the caller at the time a
// token is supplied, never by the resolver.
type Resolver struct {
	kc keychain.Keychain
}

// NewResolver returns a resolver backed by the given keychain.
func NewResolver(kc keychain.Keychain) *Resolver {
	return &Resolver{kc: kc}
}

// Resolve returns the usable secret for a credential: the embedded token
// for a plaintext secret, or a keychain lookup keyed by the credential
// host and the stored account name for a keychain reference.
func (r *Resolver) Resolve(cred profile.HTTPSCredential) (string, error) {
	switch cred.Secret.Kind {
	case profile.SecretPlaintext:
		return cred.Secret.Value, nil
	case profile.SecretKeychain:
		return r.kc.Retrieve(cred.Host, cred.Secret.Value)
	default:
		return "", fmt.Errorf("unknown secret kind %q", cred.Secret.Kind)
	}
}

// StoreSecret places a newly supplied token and returns the Secret to
// embed in the profile. With useKeychain the token goes into the OS
// keychain under (host, username) and only a reference is embedded; if
// the keychain write fails the token is embedded as plaintext instead so
// it is not lost, and the failure is returned as a non-fatal warning
// alongside the fallback secret.
func (r *Resolver) StoreSecret(host, username, token string, useKeychain bool) (profile.Secret, error) {
	if !useKeychain {
		return profile.PlaintextToken(token), nil
	}
	if err := r.kc.Store(host, username, token); err != nil {
		return profile.PlaintextToken(token), fmt.Errorf("keychain store failed, falling back to plaintext: %w", err)
	}
	return profile.KeychainReference(username), nil
}

// CleanupSuperseded deletes the keychain entry behind old when it is no
// longer referenced by updated: the host changed, the stored account
// changed, or the credential switched to plaintext or was removed. The
// returned error is advisory only; the configuration change it follows
// has already succeeded. A missing entry is not an error.
func (r *Resolver) CleanupSuperseded(old, updated *profile.HTTPSCredential) error {
	if old == nil || old.Secret.Kind != profile.SecretKeychain {
		return nil
	}
	if updated != nil &&
		updated.Secret.Kind == profile.SecretKeychain &&
		updated.Host == old.Host &&
		updated.Secret.Value == old.Secret.Value {
		return nil
	}
	if err := r.kc.Delete(old.Host, old.Secret.Value); err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete superseded keychain entry: %w", err)
	}
	return nil
}
