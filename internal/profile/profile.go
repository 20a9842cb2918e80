// Package profile defines the identity profile entity and its validation
// rules. A profile bundles a git author identity with optional SSH, GPG
// and HTTPS credential settings.
package profile

// GitIdentity holds the git author configuration applied when a profile
// is activated.
type GitIdentity struct {
	UserName   string `toml:"name"`
	UserEmail  string `toml:"email"`
	SigningKey string `toml:"signingkey,omitempty"`
}

// SecretKind discriminates how an HTTPS secret is stored.
type SecretKind string

const (
	// SecretPlaintext embeds the token directly in the profile store.
	SecretPlaintext SecretKind = "token"
	// SecretKeychain stores only a lookup reference; the token itself
	// lives in the OS keychain under (host, reference).
	SecretKeychain SecretKind = "keychain"
)

// Secret is the tagged payload of an HTTPS credential. Exactly one kind
// is active; the payload of a keychain secret is the account name the
// token is stored under, not the token itself.
type Secret struct {
	Kind  SecretKind `toml:"type"`
	Value string     `toml:"value"`
}

// PlaintextToken returns a Secret embedding the token directly.
func PlaintextToken(token string) Secret {
	return Secret{Kind: SecretPlaintext, Value: token}
}

// KeychainReference returns a Secret referencing a keychain entry stored
// under the given account name.
func KeychainReference(account string) Secret {
	return Secret{Kind: SecretKeychain, Value: account}
}

// HTTPSCredential associates a host and username with a stored secret.
type HTTPSCredential struct {
	Host     string `toml:"host"`
	Username string `toml:"username"`
	Secret   Secret `toml:"secret"`
}

// Profile is a named identity: git author settings plus optional SSH key,
// GPG key and HTTPS credential. The name is duplicated inside the entity
// so single-profile export/import stays self-contained.
type Profile struct {
	Name            string            `toml:"name"`
	Identity        GitIdentity       `toml:"git_config"`
	SSHKeyPath      string            `toml:"ssh_key,omitempty"`
	SSHKeyHost      string            `toml:"ssh_key_host,omitempty"`
	GPGKeyID        string            `toml:"gpg_key,omitempty"`
	HTTPSCredential *HTTPSCredential  `toml:"https_credentials,omitempty"`
	CustomConfig    map[string]string `toml:"custom_config,omitempty"`
}

// New creates a profile with the minimal required fields.
func New(name, userName, userEmail string) Profile {
	return Profile{
		Name: name,
		Identity: GitIdentity{
			UserName:  userName,
			UserEmail: userEmail,
		},
	}
}

// HasSSHKey reports whether the profile has both an SSH key and a host
// configured, i.e. whether it contributes an entry to the managed SSH
// config block.
func (p *Profile) HasSSHKey() bool {
	return p.SSHKeyPath != "" && p.SSHKeyHost != ""
}
