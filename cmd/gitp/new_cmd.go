package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/credentials"
	"github.com/gitp-cli/gitp/internal/git"
	"github.com/gitp-cli/gitp/internal/keychain"
	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/profile"
	"github.com/gitp-cli/gitp/internal/store"
	"github.com/gitp-cli/gitp/internal/ui/prompt"
)

func newNewCmd() *cobra.Command {
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
		custom        map[string]string
	)

	cmd := &cobra.Command{
		Use:     "new <name>",
		Short:   "Create a new profile",
		GroupID: GroupProfile,
		Args:    cobra.ExactArgs(1),
		Long: `Create a new identity profile.

Without --user-name and --user-email the command walks through all
fields interactively, including the optional SSH key, GPG key and HTTPS
credential. An HTTPS token is embedded in the profile store unless the
OS keychain is chosen (--keychain, or the storage prompt).`,
		Example: `  gitp new work --user-name "Jane Doe" --user-email jane@corp.example
  gitp new oss --user-name jane --user-email jane@example.org \
      --ssh-key ~/.ssh/id_oss --ssh-host github.com
  gitp new work --user-name jane --user-email jane@corp.example \
      --https-host github.com --https-username jane --https-token ghp_xxx --keychain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			name := args[0]

			s, err := store.Load()
			if err != nil {
				return err
			}
			if _, ok := s.Profiles[name]; ok {
				return fmt.Errorf("%w: %q", store.ErrProfileExists, name)
			}

			interactive := isatty.IsTerminal(os.Stdin.Fd())

			// Entering wizard mode: prompt for the identity and then walk
			// the optional fields too.
			wizard := userName == "" || userEmail == ""
			if wizard && !interactive {
				return fmt.Errorf("--user-name and --user-email are required in non-interactive mode")
			}

			if wizard {
				if userName == "" {
					res, err := prompt.TextInput("Git user name", "Jane Doe", "")
					if err != nil {
						return err
					}
					if res.Cancelled {
						fmt.Println("Cancelled")
						return nil
					}
					userName = res.Value
				}
				if userEmail == "" {
					res, err := prompt.TextInput("Git user email", "jane@example.org", "")
					if err != nil {
						return err
					}
					if res.Cancelled {
						fmt.Println("Cancelled")
						return nil
					}
					userEmail = res.Value
				}

				optional := []struct {
					label string
					value *string
				}{
					{"GPG signing key (empty to skip)", &gpgKey},
					{"SSH key path (empty to skip)", &sshKey},
				}
				for _, f := range optional {
					res, err := prompt.TextInput(f.label, "", "")
					if err != nil {
						return err
					}
					if res.Cancelled {
						fmt.Println("Cancelled")
						return nil
					}
					*f.value = res.Value
				}
				if sshKey != "" {
					res, err := prompt.TextInput("SSH host for the key", "github.com", "")
					if err != nil {
						return err
					}
					if res.Cancelled {
						fmt.Println("Cancelled")
						return nil
					}
					sshHost = res.Value
				}

				res, err := prompt.Confirm("Add an HTTPS credential?", false)
				if err != nil {
					return err
				}
				if res.Cancelled {
					fmt.Println("Cancelled")
					return nil
				}
				if res.Confirmed {
					in, err := promptHTTPSCredential("", "")
					if err != nil {
						return err
					}
					if in.cancelled {
						fmt.Println("Cancelled")
						return nil
					}
					httpsHost = in.host
					httpsUsername = in.username
					httpsToken = in.token
					useKeychain = in.useKeychain
				}
			}

			p := profile.New(name, userName, userEmail)
			p.GPGKeyID = gpgKey
			p.SSHKeyPath = sshKey
			p.SSHKeyHost = sshHost
			p.CustomConfig = custom

			// The token stays plaintext until the profile has passed
			// validation; the keychain write happens in finalizeProfile.
			if httpsToken != "" || httpsHost != "" || httpsUsername != "" {
				p.HTTPSCredential = &profile.HTTPSCredential{
					Host:     httpsHost,
					Username: httpsUsername,
					Secret:   profile.PlaintextToken(httpsToken),
				}
			}

			resolver := credentials.NewResolver(keychain.New())
			warning, err := finalizeProfile(resolver, &p, useKeychain)
			if err != nil {
				return err
			}
			if warning != nil {
				l.Warnf("%v\n", warning)
			}

			if err := s.Insert(p, false); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Created profile %q\n", name)

			// Offer activation right away, interactive runs only.
			if interactive {
				res, err := prompt.Confirm(fmt.Sprintf("Activate %q now (global git config)?", name), false)
				if err != nil {
					return err
				}
				if res.Confirmed && !res.Cancelled {
					if err := s.SetActive(name); err != nil {
						return err
					}
					if err := s.Save(); err != nil {
						return err
					}
					if err := applyGitConfig(ctx, p, git.ScopeGlobal); err != nil {
						return err
					}
					fmt.Printf("Switched to profile %q (global)\n", name)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user-name", "", "Git user.name for this profile")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "Git user.email for this profile")
	cmd.Flags().StringVar(&gpgKey, "gpg-key", "", "GPG signing key id (8, 16 or 40 hex chars)")
	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "Path to the SSH private key")
	cmd.Flags().StringVar(&sshHost, "ssh-host", "", "Host the SSH key applies to (e.g. github.com)")
	cmd.Flags().StringVar(&httpsHost, "https-host", "", "Host for the HTTPS credential")
	cmd.Flags().StringVar(&httpsUsername, "https-username", "", "Username for the HTTPS credential")
	cmd.Flags().StringVar(&httpsToken, "https-token", "", "Token for the HTTPS credential")
	cmd.Flags().BoolVar(&useKeychain, "keychain", false, "Store the HTTPS token in the OS keychain")
	cmd.Flags().StringToStringVar(&custom, "custom", nil, "Additional git config keys (key=value)")

	return cmd
}
