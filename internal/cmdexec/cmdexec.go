// Package cmdexec abstracts external command execution for testability.
// Production code uses Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Commander abstracts external command execution. Commands always run with an
// explicit working directory, since package managers resolve their environment
// relative to the project root.
type Commander interface {
	// Run executes an external command in dir and returns its combined output.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)

	// Output executes an external command in dir and returns stdout only,
	// with additional environment variables merged on top of the current
	// process environment. Used for queries whose stdout is parsed.
	Output(ctx context.Context, dir string, env map[string]string, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Output executes the command and captures stdout only. Stderr is discarded
// so package manager diagnostics cannot leak into parsed output.
func (c *RealCommander) Output(ctx context.Context, dir string, env map[string]string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), mapToEnvSlice(env)...)
	return cmd.Output()
}

// mapToEnvSlice converts a map of environment variables to a slice of "KEY=VALUE" strings.
func mapToEnvSlice(env map[string]string) []string {
	if env == nil {
		return nil
	}
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
