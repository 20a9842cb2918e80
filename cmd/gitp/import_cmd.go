package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/profile"
	"github.com/gitp-cli/gitp/internal/store"
)

func newImportCmd() *cobra.Command {
	var (
		nameOverride string
		force        bool
	)

	cmd := &cobra.Command{
		Use:     "import [path|-]",
		Short:   "Import a profile from TOML",
		GroupID: GroupTransfer,
		Args:    cobra.MaximumNArgs(1),
		Long: `Import a profile from a TOML file, or from stdin with "-" (the
default). The imported profile is validated before it is saved.
Importing over an existing profile requires --force.`,
		Example: `  gitp import work.toml
  gitp import work.toml --name work-backup
  cat work.toml | gitp import -
  gitp import work.toml --force    # overwrite existing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}

			var data []byte
			var err error
			if source == "-" {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				data, err = os.ReadFile(source)
				if err != nil {
					return fmt.Errorf("read %s: %w", source, err)
				}
			}

			p, err := profile.Decode(data)
			if err != nil {
				return err
			}
			if nameOverride != "" {
				p.Name = nameOverride
			}

			if err := p.Validate(); err != nil {
				return err
			}

			s, err := store.Load()
			if err != nil {
				return err
			}
			if err := s.Insert(p, force); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}

			l.Debug("imported profile", "name", p.Name, "source", source)

			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Imported profile %q\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameOverride, "name", "", "Import under a different profile name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing profile")

	return cmd
}
