package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/store"
)

func newUseCmd() *cobra.Command {
	var (
		local  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:               "use <name>",
		Short:             "Switch to a profile",
		Aliases:           []string{"switch"},
		GroupID:           GroupIdentity,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Long: `Switch to a profile.

Marks the profile as active, applies its git configuration (user.name,
user.email, user.signingkey and any custom keys) and regenerates the
managed block in ~/.ssh/config from all profiles.

By default the global git config is updated. With --local the current
repository's config is updated instead.`,
		Example: `  gitp use work            # apply to global git config
  gitp use work --local    # apply to the current repository only`,
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

			scope := configScope(local, global)

			l.Debug("switching profile", "name", name, "scope", scope)

			if err := s.SetActive(name); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			if err := applyGitConfig(ctx, p, scope); err != nil {
				return err
			}
			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Switched to profile %q (%s)\n", name, scope)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&local, "local", "l", false, "Apply to the current repository's git config")
	cmd.Flags().BoolVarP(&global, "global", "g", false, "Apply to the global git config (default)")
	cmd.MarkFlagsMutuallyExclusive("local", "global")

	return cmd
}
