package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeKey creates a throwaway key file and returns its path.
func writeKey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(path, []byte("key"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func validProfile() Profile {
	return New("work", "Jane Doe", "jane@company.com")
}

func TestValidateMinimalProfile(t *testing.T) {
	p := validProfile()
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
		want   error
	}{
		{"empty name", func(p *Profile) { p.Name = "" }, ErrEmptyName},
		{"empty user name", func(p *Profile) { p.Identity.UserName = "" }, ErrEmptyUserName},
		{"empty email", func(p *Profile) { p.Identity.UserEmail = "" }, ErrEmptyEmail},
		{"host without key", func(p *Profile) { p.SSHKeyHost = "github.com" }, ErrSSHHostWithoutKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateEmailFormat(t *testing.T) {
	valid := []string{
		"jane@company.com",
		"jane.doe+git@sub.example.org",
		"j_d%x-1@example.co",
	}
	invalid := []string{
		"no-at-sign",
		"jane@nodot",
		"@example.com",
		"jane@.com",
	}

	for _, email := range valid {
		p := validProfile()
		p.Identity.UserEmail = email
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() with email %q = %v, want nil", email, err)
		}
	}
	for _, email := range invalid {
		p := validProfile()
		p.Identity.UserEmail = email
		var invalidErr *InvalidEmailError
		if err := p.Validate(); !errors.As(err, &invalidErr) {
			t.Errorf("Validate() with email %q = %v, want InvalidEmailError", email, err)
		}
	}
}

func TestValidateSSHKey(t *testing.T) {
	key := writeKey(t)

	t.Run("key and host", func(t *testing.T) {
		p := validProfile()
		p.SSHKeyPath = key
		p.SSHKeyHost = "github.com"
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("key without host", func(t *testing.T) {
		p := validProfile()
		p.SSHKeyPath = key
		if err := p.Validate(); !errors.Is(err, ErrEmptySSHKeyHost) {
			t.Errorf("Validate() = %v, want ErrEmptySSHKeyHost", err)
		}
	})

	t.Run("missing key file", func(t *testing.T) {
		p := validProfile()
		p.SSHKeyPath = filepath.Join(t.TempDir(), "nope")
		p.SSHKeyHost = "github.com"
		var notFound *SSHKeyNotFoundError
		if err := p.Validate(); !errors.As(err, &notFound) {
			t.Errorf("Validate() = %v, want SSHKeyNotFoundError", err)
		}
	})
}

func TestValidateGPGKey(t *testing.T) {
	valid := []string{
		"DEADBEEF",
		"0123456789abcdef",
		"0123456789ABCDEF0123456789ABCDEF01234567",
	}
	invalid := []string{
		"XYZ12345",                          // not hex
		"DEADBEE",                           // 7 chars
		"0123456789abcdef0123456789abcdef",  // 32 chars
		"0123456789ABCDEF0123456789ABCDEF0", // 33 chars
	}

	for _, id := range valid {
		p := validProfile()
		p.GPGKeyID = id
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() with gpg key %q = %v, want nil", id, err)
		}
	}
	for _, id := range invalid {
		p := validProfile()
		p.GPGKeyID = id
		var invalidErr *InvalidGPGKeyError
		if err := p.Validate(); !errors.As(err, &invalidErr) {
			t.Errorf("Validate() with gpg key %q = %v, want InvalidGPGKeyError", id, err)
		}
	}
}

func TestValidateHTTPSCredential(t *testing.T) {
	tests := []struct {
		name string
		cred HTTPSCredential
		want error
	}{
		{
			"valid token",
			HTTPSCredential{Host: "github.com", Username: "jane", Secret: PlaintextToken("tok")},
			nil,
		},
		{
			"valid keychain reference",
			HTTPSCredential{Host: "gitlab.com", Username: "jane", Secret: KeychainReference("jane")},
			nil,
		},
		{
			"empty host",
			HTTPSCredential{Username: "jane", Secret: PlaintextToken("tok")},
			ErrEmptyHTTPSHost,
		},
		{
			"empty username",
			HTTPSCredential{Host: "github.com", Secret: PlaintextToken("tok")},
			ErrEmptyHTTPSUsername,
		},
		{
			"empty token",
			HTTPSCredential{Host: "github.com", Username: "jane", Secret: PlaintextToken("")},
			ErrEmptyHTTPSSecret,
		},
		{
			"empty keychain reference",
			HTTPSCredential{Host: "github.com", Username: "jane", Secret: KeychainReference("")},
			ErrEmptyHTTPSSecret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			cred := tt.cred
			p.HTTPSCredential = &cred
			err := p.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
			} else if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateOrderShortCircuits(t *testing.T) {
	// Several rules violated at once: the name rule comes first.
	p := Profile{SSHKeyHost: "github.com"}
	if err := p.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Validate() = %v, want ErrEmptyName", err)
	}
}
