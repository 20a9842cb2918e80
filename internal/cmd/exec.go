// Package cmd provides helpers for executing external commands with
// proper error handling. Stderr is captured and folded into the returned
// error so command failures read like messages, not exit codes.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitp-cli/gitp/internal/log"
)

// RunContext executes a command in dir (or the working directory when
// empty), logging it in verbose mode.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	log.FromContext(ctx).Command(name, args...)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	return Run(c)
}

// OutputContext executes a command and returns stdout, logging it in
// verbose mode.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	log.FromContext(ctx).Command(name, args...)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	return Output(c)
}

// Run executes a command and returns stderr in the error message if it fails.
func Run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return fmt.Errorf("%s", errMsg)
		}
		return err
	}
	return nil
}

// Output executes a command and returns stdout, with stderr in error if it fails.
func Output(cmd *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}
