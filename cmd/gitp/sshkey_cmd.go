package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/store"
)

func newSSHKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sshkey",
		Short:   "Manage a profile's SSH key",
		GroupID: GroupIdentity,
		Long: `Manage the SSH key associated with a profile. Setting or removing
a key regenerates the managed block in ~/.ssh/config.`,
	}

	cmd.AddCommand(newSSHKeySetCmd())
	cmd.AddCommand(newSSHKeyRemoveCmd())
	cmd.AddCommand(newSSHKeyShowCmd())

	return cmd
}

func newSSHKeySetCmd() *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:               "set <profile> <key-path>",
		Short:             "Set the SSH key for a profile",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProfileNames,
		Example: `  gitp sshkey set work ~/.ssh/id_work --host github.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name, keyPath := args[0], args[1]

			s, err := store.Load()
			if err != nil {
				return err
			}
			p, err := s.Get(name)
			if err != nil {
				return err
			}

			p.SSHKeyPath = keyPath
			if host != "" {
				p.SSHKeyHost = host
			}

			// Validation covers key existence and the key/host pairing.
			if err := p.Validate(); err != nil {
				return err
			}

			if err := s.Update(p); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Set SSH key for %q: %s (%s)\n", name, p.SSHKeyPath, p.SSHKeyHost)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host the key applies to (e.g. github.com)")

	return cmd
}

func newSSHKeyRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <profile>",
		Short:             "Remove the SSH key from a profile",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := args[0]

			s, err := store.Load()
			if err != nil {
				return err
			}
			p, err := s.Get(name)
			if err != nil {
				return err
			}
			if p.SSHKeyPath == "" {
				fmt.Printf("Profile %q has no SSH key\n", name)
				return nil
			}

			p.SSHKeyPath = ""
			p.SSHKeyHost = ""

			if err := s.Update(p); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return err
			}
			if err := syncSSH(ctx, s); err != nil {
				return err
			}

			fmt.Printf("Removed SSH key from %q\n", name)
			return nil
		},
	}

	return cmd
}

func newSSHKeyShowCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:               "show <profile>",
		Short:             "Show the SSH key of a profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Example: `  gitp sshkey show work
  gitp sshkey show work --copy   # copy the key path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			name := args[0]

			s, err := store.Load()
			if err != nil {
				return err
			}
			p, err := s.Get(name)
			if err != nil {
				return err
			}
			if p.SSHKeyPath == "" {
				return fmt.Errorf("profile %q has no SSH key", name)
			}

			if copyPath {
				if err := clipboard.WriteAll(p.SSHKeyPath); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Println("Copied SSH key path to clipboard")
				return nil
			}

			out.Printf("%s\n", p.SSHKeyPath)
			if p.SSHKeyHost != "" {
				out.Printf("host: %s\n", p.SSHKeyHost)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the key path to the clipboard")

	return cmd
}
