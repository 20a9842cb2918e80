package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/credentials"
	"github.com/gitp-cli/gitp/internal/keychain"
	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/store"
	"github.com/gitp-cli/gitp/internal/ui/prompt"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "remove <name>",
		Short:             "Remove a profile",
		Aliases:           []string{"rm"},
		GroupID:           GroupProfile,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Long: `Remove a profile.

If the profile stored its HTTPS token in the OS keychain, the keychain
entry is deleted too; a failure there is reported as a warning but does
not keep the profile around. The managed block in ~/.ssh/config is
regenerated afterwards.`,
		Example: `  gitp remove old-job
  gitp remove old-job -f   # skip confirmation`,
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

			if !force && isatty.IsTerminal(os.Stdin.Fd()) {
				res, err := prompt.Confirm(fmt.Sprintf("Remove profile %q?", name), false)
				if err != nil {
					return err
				}
				if res.Cancelled || !res.Confirmed {
					fmt.Println("Cancelled")
					return nil
				}
			}

			resolver := credentials.NewResolver(keychain.New())
			if err := resolver.CleanupSuperseded(p.HTTPSCredential, nil); err != nil {
				l.Warnf("%v\n", err)
			}

			if err := s.Remove(name); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Removed profile %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")

	return cmd
}
