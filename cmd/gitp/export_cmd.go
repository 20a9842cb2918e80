package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/store"
)

func newExportCmd() *cobra.Command {
	var (
		outPath string
		toClip  bool
	)

	cmd := &cobra.Command{
		Use:               "export <name>",
		Short:             "Export a profile as TOML",
		GroupID:           GroupTransfer,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		Long: `Export a profile as TOML to stdout, a file or the clipboard.

Plaintext HTTPS tokens are exported as-is; keychain references export
only the reference, not the token.`,
		Example: `  gitp export work                 # to stdout
  gitp export work -o work.toml    # to a file
  gitp export work --copy          # to the clipboard
  gitp export work | ssh other-machine gitp import -`,
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

			data, err := p.Encode()
			if err != nil {
				return err
			}

			switch {
			case outPath != "":
				// May hold a plaintext token, so keep it private.
				if err := os.WriteFile(outPath, data, 0o600); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Printf("Exported %q to %s\n", p.Name, outPath)
			case toClip:
				if err := clipboard.WriteAll(string(data)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Printf("Exported %q to clipboard\n", p.Name)
			default:
				// No trailing newline when piped, so redirected output is
				// byte-exact TOML.
				text := strings.TrimRight(string(data), "\n")
				if isatty.IsTerminal(os.Stdout.Fd()) {
					out.Println(text)
				} else {
					out.Print(text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVarP(&toClip, "copy", "c", false, "Copy to the clipboard instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("output", "copy")

	return cmd
}
