package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitp-cli/gitp/internal/credentials"
	"github.com/gitp-cli/gitp/internal/git"
	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/profile"
	"github.com/gitp-cli/gitp/internal/sshconfig"
	"github.com/gitp-cli/gitp/internal/store"
)

// configScope maps the --local/--global flag pair to a git config scope.
// Global is the default when neither is given.
func configScope(local, global bool) git.Scope {
	if local && !global {
		return git.ScopeLocal
	}
	return git.ScopeGlobal
}

// finalizeProfile validates p and, on success, moves a plaintext HTTPS
// token into the OS keychain when requested, replacing the embedded
// secret with a reference. Validation runs first so a rejected profile
// never leaves an orphaned keychain entry behind. The warning is
// non-fatal: the keychain store failed and the token stayed embedded as
// plaintext.
func finalizeProfile(r *credentials.Resolver, p *profile.Profile, useKeychain bool) (warning, err error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if useKeychain && p.HTTPSCredential != nil && p.HTTPSCredential.Secret.Kind == profile.SecretPlaintext {
		cred := p.HTTPSCredential
		secret, werr := r.StoreSecret(cred.Host, cred.Username, cred.Secret.Value, true)
		cred.Secret = secret
		return werr, nil
	}
	return nil, nil
}

// syncSSH regenerates the managed block in ~/.ssh/config from all
// profiles in the store.
func syncSSH(ctx context.Context, s *store.Store) error {
	l := log.FromContext(ctx)

	path, err := sshconfig.DefaultPath()
	if err != nil {
		return fmt.Errorf("locate ssh config: %w", err)
	}

	entries := sshconfig.Entries(s.Profiles)
	wrote, err := sshconfig.Sync(path, entries)
	if err != nil {
		return err
	}
	if wrote {
		l.Printf("Updated %s\n", path)
	} else {
		l.Debug("ssh config unchanged", "path", path, "entries", len(entries))
	}
	return nil
}

// applyGitConfig writes the profile's identity into git configuration at
// the given scope. The signing key is unset when the profile has none, so
// switching away from a signing profile does not leave a stale key.
func applyGitConfig(ctx context.Context, p profile.Profile, scope git.Scope) error {
	if err := git.SetConfig(ctx, "user.name", p.Identity.UserName, scope); err != nil {
		return err
	}
	if err := git.SetConfig(ctx, "user.email", p.Identity.UserEmail, scope); err != nil {
		return err
	}

	signing := p.Identity.SigningKey
	if p.GPGKeyID != "" {
		signing = p.GPGKeyID
	}
	if signing != "" {
		if err := git.SetConfig(ctx, "user.signingkey", signing, scope); err != nil {
			return err
		}
	} else if err := git.UnsetConfig(ctx, "user.signingkey", scope); err != nil {
		return err
	}

	for _, key := range sortedKeys(p.CustomConfig) {
		if err := git.SetConfig(ctx, key, p.CustomConfig[key], scope); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// secretDisplay renders an HTTPS credential secret for display without
// revealing the token.
func secretDisplay(s profile.Secret) string {
	switch s.Kind {
	case profile.SecretKeychain:
		return fmt.Sprintf("(stored in keychain as %q)", s.Value)
	default:
		return "********"
	}
}

// printProfile writes a detailed view of a profile. Secrets are masked.
func printProfile(out *output.Printer, p profile.Profile, active bool) {
	marker := ""
	if active {
		marker = " (active)"
	}
	out.Printf("%s%s\n", p.Name, marker)
	out.Printf("  user.name:  %s\n", p.Identity.UserName)
	out.Printf("  user.email: %s\n", p.Identity.UserEmail)
	if p.GPGKeyID != "" {
		out.Printf("  gpg key:    %s\n", p.GPGKeyID)
	}
	if p.SSHKeyPath != "" {
		out.Printf("  ssh key:    %s\n", p.SSHKeyPath)
	}
	if p.SSHKeyHost != "" {
		out.Printf("  ssh host:   %s\n", p.SSHKeyHost)
	}
	if cred := p.HTTPSCredential; cred != nil {
		out.Printf("  https:      %s@%s %s\n", cred.Username, cred.Host, secretDisplay(cred.Secret))
	}
	for _, key := range sortedKeys(p.CustomConfig) {
		out.Printf("  %s: %s\n", key, p.CustomConfig[key])
	}
}
