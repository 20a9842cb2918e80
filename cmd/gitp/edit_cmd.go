package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/credentials"
	"github.com/gitp-cli/gitp/internal/keychain"
	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/profile"
	"github.com/gitp-cli/gitp/internal/store"
	"github.com/gitp-cli/gitp/internal/ui/prompt"
)

func newEditCmd() *cobra.Command {
	var (
		userName      string
		userEmail     string
		gpgKey        string
		sshKey        string
		sshHost       string
		httpsHost     string
		httpsUsername string
		httpsToken    string
		useKeychain   bool
		clearHTTPS    bool
		custom        map[string]string
	)

	cmd := &cobra.Command{
		Use:               "edit <name>",
		Short:             "Edit a profile",
		GroupID:           GroupProfile,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Long: `Edit a profile.

With flags, only the given fields change; an empty value clears an
optional field (e.g. --gpg-key ""). Without flags the command walks
through the fields interactively, offering the current value as the
default, including the HTTPS credential.

When a keychain-stored credential is replaced or cleared, the
superseded keychain entry is deleted.`,
		Example: `  gitp edit work --user-email jane@newcorp.example
  gitp edit work --gpg-key ""        # clear the signing key
  gitp edit work --clear-https       # drop the HTTPS credential
  gitp edit work                     # interactive walk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			name := args[0]

			s, err := store.Load()
			if err != nil {
				return err
			}
			p, err := s.Get(name)
			if err != nil {
				return err
			}

			// Snapshot for keychain cleanup and ssh re-sync decisions.
			var oldCred *profile.HTTPSCredential
			if p.HTTPSCredential != nil {
				c := *p.HTTPSCredential
				oldCred = &c
			}
			oldSSHKey, oldSSHHost := p.SSHKeyPath, p.SSHKeyHost

			flags := cmd.Flags()
			anyFlag := false
			for _, f := range []string{
				"user-name", "user-email", "gpg-key", "ssh-key", "ssh-host",
				"https-host", "https-username", "https-token", "keychain",
				"clear-https", "custom",
			} {
				if flags.Changed(f) {
					anyFlag = true
					break
				}
			}

			// Set when a plaintext token should move into the keychain
			// after validation.
			pendingKeychain := false

			switch {
			case anyFlag:
				if flags.Changed("user-name") {
					p.Identity.UserName = userName
				}
				if flags.Changed("user-email") {
					p.Identity.UserEmail = userEmail
				}
				if flags.Changed("gpg-key") {
					p.GPGKeyID = gpgKey
				}
				if flags.Changed("ssh-key") {
					p.SSHKeyPath = sshKey
				}
				if flags.Changed("ssh-host") {
					p.SSHKeyHost = sshHost
				}
				if flags.Changed("custom") {
					p.CustomConfig = custom
				}

				if clearHTTPS {
					p.HTTPSCredential = nil
				} else if flags.Changed("https-host") || flags.Changed("https-username") ||
					flags.Changed("https-token") || flags.Changed("keychain") {
					host, username := httpsHost, httpsUsername
					if !flags.Changed("https-host") && oldCred != nil {
						host = oldCred.Host
					}
					if !flags.Changed("https-username") && oldCred != nil {
						username = oldCred.Username
					}

					if flags.Changed("https-token") {
						// Plaintext until validation passes; the keychain
						// write happens in finalizeProfile.
						p.HTTPSCredential = &profile.HTTPSCredential{
							Host:     host,
							Username: username,
							Secret:   profile.PlaintextToken(httpsToken),
						}
						pendingKeychain = useKeychain
					} else {
						if oldCred == nil {
							return fmt.Errorf("profile %q has no HTTPS credential; supply --https-token to add one", name)
						}
						if oldCred.Secret.Kind == profile.SecretKeychain &&
							(host != oldCred.Host || username != oldCred.Username) {
							// The token lives in the keychain under the old
							// (host, account) pair and cannot be moved
							// without re-reading it.
							return fmt.Errorf("changing host or username of a keychain-stored credential requires --https-token")
						}
						p.HTTPSCredential = &profile.HTTPSCredential{
							Host:     host,
							Username: username,
							Secret:   oldCred.Secret,
						}
						// --keychain alone moves an embedded token; its
						// value is still at hand in the plaintext secret.
						if useKeychain && oldCred.Secret.Kind == profile.SecretPlaintext {
							pendingKeychain = true
						}
					}
				}

			case isatty.IsTerminal(os.Stdin.Fd()):
				edited, wantKeychain, cancelled, err := editInteractive(p)
				if err != nil {
					return err
				}
				if cancelled {
					fmt.Println("Cancelled")
					return nil
				}
				p = edited
				pendingKeychain = wantKeychain

			default:
				return fmt.Errorf("no changes specified; pass flags or run interactively")
			}

			resolver := credentials.NewResolver(keychain.New())
			warning, err := finalizeProfile(resolver, &p, pendingKeychain)
			if err != nil {
				return err
			}
			if warning != nil {
				l.Warnf("%v\n", warning)
			}

			if err := resolver.CleanupSuperseded(oldCred, p.HTTPSCredential); err != nil {
				l.Warnf("%v\n", err)
			}

			if err := s.Update(p); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			if p.SSHKeyPath != oldSSHKey || p.SSHKeyHost != oldSSHHost {
				if err := syncSSH(ctx, s); err != nil {
					return err
				}
			}

			fmt.Printf("Updated profile %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user-name", "", "Git user.name for this profile")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "Git user.email for this profile")
	cmd.Flags().StringVar(&gpgKey, "gpg-key", "", "GPG signing key id (empty clears)")
	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "Path to the SSH private key (empty clears)")
	cmd.Flags().StringVar(&sshHost, "ssh-host", "", "Host the SSH key applies to (empty clears)")
	cmd.Flags().StringVar(&httpsHost, "https-host", "", "Host for the HTTPS credential")
	cmd.Flags().StringVar(&httpsUsername, "https-username", "", "Username for the HTTPS credential")
	cmd.Flags().StringVar(&httpsToken, "https-token", "", "New token for the HTTPS credential")
	cmd.Flags().BoolVar(&useKeychain, "keychain", false, "Store the new HTTPS token in the OS keychain")
	cmd.Flags().BoolVar(&clearHTTPS, "clear-https", false, "Remove the HTTPS credential")
	cmd.Flags().StringToStringVar(&custom, "custom", nil, "Replace the custom git config keys (key=value)")

	return cmd
}

// editInteractive walks through the editable fields, pre-filling each
// prompt with the current value, then offers the HTTPS credential walk.
// It reports whether a newly entered token should move into the keychain
// once the profile validates.
func editInteractive(p profile.Profile) (edited profile.Profile, wantKeychain, cancelled bool, err error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Git user name", &p.Identity.UserName},
		{"Git user email", &p.Identity.UserEmail},
		{"GPG signing key (empty for none)", &p.GPGKeyID},
		{"SSH key path (empty for none)", &p.SSHKeyPath},
		{"SSH host (empty for none)", &p.SSHKeyHost},
	}

	for _, f := range fields {
		res, err := prompt.TextInput(f.label, "", *f.value)
		if err != nil {
			return profile.Profile{}, false, false, err
		}
		if res.Cancelled {
			return profile.Profile{}, false, true, nil
		}
		*f.value = res.Value
	}

	res, err := prompt.Confirm("Update the HTTPS credential?", false)
	if err != nil {
		return profile.Profile{}, false, false, err
	}
	if res.Cancelled {
		return profile.Profile{}, false, true, nil
	}
	if !res.Confirmed {
		return p, false, false, nil
	}

	var initialHost, initialUsername string
	if p.HTTPSCredential != nil {
		initialHost = p.HTTPSCredential.Host
		initialUsername = p.HTTPSCredential.Username

		choice, err := prompt.Select("HTTPS credential", []string{"Replace it", "Remove it"})
		if err != nil {
			return profile.Profile{}, false, false, err
		}
		if choice.Cancelled {
			return profile.Profile{}, false, true, nil
		}
		if choice.Index == 1 {
			p.HTTPSCredential = nil
			return p, false, false, nil
		}
	}

	in, err := promptHTTPSCredential(initialHost, initialUsername)
	if err != nil {
		return profile.Profile{}, false, false, err
	}
	if in.cancelled {
		return profile.Profile{}, false, true, nil
	}

	p.HTTPSCredential = &profile.HTTPSCredential{
		Host:     in.host,
		Username: in.username,
		Secret:   profile.PlaintextToken(in.token),
	}
	return p, in.useKeychain, false, nil
}
