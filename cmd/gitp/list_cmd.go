package main

import (
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/store"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List profiles",
		Aliases: []string{"ls"},
		GroupID: GroupProfile,
		Args:    cobra.NoArgs,
		Long: `List all profiles, sorted by name. The active profile is marked
with an asterisk. With --verbose each profile's details are shown.`,
		Example: `  gitp list
  gitp list -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			s, err := store.Load()
			if err != nil {
				return err
			}

			names := s.Names()
			if len(names) == 0 {
				out.Println("No profiles yet. Create one with 'gitp new <name>'.")
				return nil
			}

			for _, name := range names {
				active := name == s.ActiveProfile
				if l.Verbose() {
					printProfile(out, s.Profiles[name], active)
					continue
				}
				marker := "  "
				if active {
					marker = "* "
				}
				out.Printf("%s%s\n", marker, name)
			}
			return nil
		},
	}

	return cmd
}
