package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gitp-cli/gitp/internal/git"
	"github.com/gitp-cli/gitp/internal/output"
	"github.com/gitp-cli/gitp/internal/store"
)

func newCurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "current",
		Short:   "Show the active profile and effective git identity",
		GroupID: GroupIdentity,
		Args:    cobra.NoArgs,
		Long: `Show the active profile along with the git identity that is
actually in effect: local repository config where set, global config
otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := store.Load()
			if err != nil {
				return err
			}

			if s.ActiveProfile != "" {
				out.Printf("Active profile: %s\n", s.ActiveProfile)
			} else {
				out.Println("Active profile: (none)")
			}
			out.Println()

			for _, key := range []string{"user.name", "user.email", "user.signingkey"} {
				value, scope, err := effectiveConfig(ctx, key)
				if err != nil {
					return err
				}
				if value == "" {
					out.Printf("%-16s (not set)\n", key+":")
					continue
				}
				out.Printf("%-16s %s (%s)\n", key+":", value, scope)
			}
			return nil
		},
	}

	return cmd
}

// effectiveConfig reads a git config key the way git resolves it: local
// value wins, global is the fallback. Outside a repository the local read
// fails, which just means there is no local value.
func effectiveConfig(ctx context.Context, key string) (value string, scope git.Scope, err error) {
	if v, err := git.GetConfig(ctx, key, git.ScopeLocal); err == nil && v != "" {
		return v, git.ScopeLocal, nil
	}
	v, err := git.GetConfig(ctx, key, git.ScopeGlobal)
	if err != nil {
		return "", git.ScopeGlobal, err
	}
	return v, git.ScopeGlobal, nil
}
