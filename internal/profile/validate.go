package profile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// Validation errors, one per rule. Validate returns the first rule
// violated, so callers can match with errors.Is.
var (
	ErrEmptyName          = errors.New("profile name cannot be empty")
	ErrEmptyUserName      = errors.New("user name cannot be empty")
	ErrEmptyEmail         = errors.New("user email cannot be empty")
	ErrEmptySSHKeyHost    = errors.New("ssh key host cannot be empty when an ssh key is set")
	ErrSSHHostWithoutKey  = errors.New("ssh key host is set but no ssh key path is configured")
	ErrEmptyHTTPSHost     = errors.New("https credential host cannot be empty")
	ErrEmptyHTTPSUsername = errors.New("https credential username cannot be empty")
	ErrEmptyHTTPSSecret   = errors.New("https credential secret cannot be empty")
)

// InvalidEmailError reports an email that does not look like an address.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format: %q", e.Email)
}

// SSHKeyNotFoundError reports a configured SSH key path that does not
// exist on disk.
type SSHKeyNotFoundError struct {
	Path string
}

func (e *SSHKeyNotFoundError) Error() string {
	return fmt.Sprintf("ssh key not found: %s", e.Path)
}

// InvalidGPGKeyError reports a GPG key id that is not 8, 16 or 40 hex
// characters.
type InvalidGPGKeyError struct {
	KeyID string
}

func (e *InvalidGPGKeyError) Error() string {
	return fmt.Sprintf("invalid gpg key %q: expected 8, 16 or 40 hex characters", e.KeyID)
}

// Not strictly RFC 5322, but good enough to catch missing @ or a domain
// without a dot.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var gpgKeyRe = regexp.MustCompile(`^(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{16}|[0-9A-Fa-f]{40})$`)

// Validate checks the profile against all invariants in a fixed order and
// returns the first violated rule, or nil. The only side effect is the
// existence check on the SSH key path (racy by nature: the key can vanish
// between validation and use).
func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Identity.UserName == "" {
		return ErrEmptyUserName
	}
	if p.Identity.UserEmail == "" {
		return ErrEmptyEmail
	}
	if !emailRe.MatchString(p.Identity.UserEmail) {
		return &InvalidEmailError{Email: p.Identity.UserEmail}
	}
	if p.SSHKeyPath != "" {
		if _, err := os.Stat(p.SSHKeyPath); err != nil {
			return &SSHKeyNotFoundError{Path: p.SSHKeyPath}
		}
		if p.SSHKeyHost == "" {
			return ErrEmptySSHKeyHost
		}
	} else if p.SSHKeyHost != "" {
		return ErrSSHHostWithoutKey
	}
	if p.GPGKeyID != "" && !gpgKeyRe.MatchString(p.GPGKeyID) {
		return &InvalidGPGKeyError{KeyID: p.GPGKeyID}
	}
	if cred := p.HTTPSCredential; cred != nil {
		if cred.Host == "" {
			return ErrEmptyHTTPSHost
		}
		if cred.Username == "" {
			return ErrEmptyHTTPSUsername
		}
		if cred.Secret.Value == "" {
			return ErrEmptyHTTPSSecret
		}
	}
	return nil
}
