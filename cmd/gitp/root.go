package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/git"
	"github.com/gitp-cli/gitp/internal/log"
	"github.com/gitp-cli/gitp/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupProfile  = "profile"
	GroupIdentity = "identity"
	GroupTransfer = "transfer"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitp",
	Short: "A fast git profile switcher with SSH and HTTPS support",
	Long: `gitp manages named git identity profiles.

A profile bundles your git author settings with an optional SSH key,
GPG signing key and HTTPS credential. Switching profiles applies the
git configuration and keeps a managed block in ~/.ssh/config in sync.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now, so the logger can honor them.
		ctx := cmd.Context()
		ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)
		cmd.SetContext(ctx)

		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Create context with signal handling. Logger and printer are
	// attached in PersistentPreRunE once flags are parsed.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'gitp -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupProfile, Title: "Profile Commands:"},
		&cobra.Group{ID: GroupIdentity, Title: "Identity Commands:"},
		&cobra.Group{ID: GroupTransfer, Title: "Transfer Commands:"},
	)

	// Profile commands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newRenameCmd())

	// Identity commands
	rootCmd.AddCommand(newUseCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newSSHKeyCmd())

	// Transfer commands
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	rootCmd.AddCommand(newCompletionCmd())
}
