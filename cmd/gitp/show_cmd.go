package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/credentials"
	"github.com/gitp-cli/gitp/internal/keychain"
	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/store"
)

func newShowCmd() *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             "Show a profile's details",
		GroupID:           GroupProfile,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Long: `Show all settings of a profile. HTTPS secrets are masked by
default; --token resolves and prints only the token itself, including a
keychain lookup when the profile stores a reference.`,
		Example: `  gitp show work
  gitp show work --token | some-credential-helper`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := store.Load()
			if err != nil {
				return err
			}
			p, err := s.Get(args[0])
			if err != nil {
				return err
			}

			if showToken {
				if p.HTTPSCredential == nil {
					return fmt.Errorf("profile %q has no HTTPS credential", p.Name)
				}
				resolver := credentials.NewResolver(keychain.New())
				token, err := resolver.Resolve(*p.HTTPSCredential)
				if err != nil {
					return err
				}
				out.Println(token)
				return nil
			}

			printProfile(out, p, p.Name == s.ActiveProfile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showToken, "token", false, "Print the resolved HTTPS token instead of the profile")

	return cmd
}
