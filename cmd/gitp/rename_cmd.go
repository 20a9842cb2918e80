package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/store"
)

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rename <old> <new>",
		Short:             "Rename a profile",
		Aliases:           []string{"mv"},
		GroupID:           GroupProfile,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProfileNames,
		Long: `Rename a profile. The active profile pointer follows the rename.
Renaming onto an existing profile name is refused.`,
		Example: `  gitp rename work corp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			oldName, newName := args[0], args[1]

			s, err := store.Load()
			if err != nil {
				return err
			}
			if err := s.Rename(oldName, newName); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			// Entry order in the managed block ties by profile name, so a
			// rename can reorder it.
			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Renamed profile %q to %q\n", oldName, newName)
			return nil
		},
	}

	return cmd
}
