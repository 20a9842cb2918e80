// Package git shells out to the git CLI to read and write configuration.
// Using the real binary keeps gitp consistent with whatever config
// machinery (includes, conditional sections) the user has set up.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitp-cli/gitp/internal/cmd"
	"github.com/gitp-cli/gitp/internal/log"
)

// ErrGitNotFound indicates git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// Scope selects which git configuration file an operation targets.
type Scope int

const (
	// ScopeLocal targets the current repository's .git/config.
	ScopeLocal Scope = iota
	// ScopeGlobal targets the user's global git config.
	ScopeGlobal
)

func (s Scope) arg() string {
	if s == ScopeLocal {
		return "--local"
	}
	return "--global"
}

func (s Scope) String() string {
	if s == ScopeLocal {
		return "local"
	}
	return "global"
}

// CheckGit verifies that git is available in PATH.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// SetConfig sets a git configuration value at the given scope.
func SetConfig(ctx context.Context, key, value string, scope Scope) error {
	if err := cmd.RunContext(ctx, "", "git", "config", scope.arg(), key, value); err != nil {
		return fmt.Errorf("set git config %s (%s): %w", key, scope, err)
	}
	return nil
}

// UnsetConfig removes a git configuration key at the given scope.
// A key that was not set is treated as success: git signals that case
// with exit code 5.
func UnsetConfig(ctx context.Context, key string, scope Scope) error {
	code, stderr, err := runConfig(ctx, "config", scope.arg(), "--unset", key)
	if err == nil || code == 5 {
		return nil
	}
	if stderr != "" {
		return fmt.Errorf("unset git config %s (%s): %s", key, scope, stderr)
	}
	return fmt.Errorf("unset git config %s (%s): %w", key, scope, err)
}

// GetConfig reads a git configuration value at the given scope. A key
// that is not set yields ("", nil): git exits 1 with no stderr output.
func GetConfig(ctx context.Context, key string, scope Scope) (string, error) {
	log.FromContext(ctx).Command("git", "config", scope.arg(), "--get", key)

	c := exec.CommandContext(ctx, "git", "config", scope.arg(), "--get", key)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	out, err := c.Output()
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stderr.Len() == 0 {
		return "", nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", fmt.Errorf("get git config %s (%s): %s", key, scope, msg)
	}
	return "", fmt.Errorf("get git config %s (%s): %w", key, scope, err)
}

// runConfig runs a git subcommand and reports exit code and stderr.
func runConfig(ctx context.Context, args ...string) (int, string, error) {
	log.FromContext(ctx).Command("git", args...)

	c := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	err := c.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return code, strings.TrimSpace(stderr.String()), err
}
