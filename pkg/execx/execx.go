// Package execx builds measurement targets from external commands, so that
// subprocess invocations can be benchmarked like any other callable.
package execx

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/shivanshkc/abench/pkg/bench"
)

// Command describes an external command to measure. The argv is executed
// directly, never through a shell, so no quoting or expansion applies.
type Command struct {
	// Name is the binary to run, resolved against PATH unless it contains a
	// path separator.
	Name string
	// Args are the arguments passed to the binary on every invocation.
	Args []string
	// Stdout and Stderr receive the command's output. A nil writer discards
	// the output, the right default when the command runs many times and
	// terminal I/O would pollute the timings.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command roughly as it would be typed in a shell.
// It is meant for display, not for re-parsing.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Lookup resolves the binary against PATH. Calling it before measurement
// turns a misspelled command into an immediate configuration failure instead
// of an error on the first warmup run.
func (c Command) Lookup() error {
	if c.Name == "" {
		return fmt.Errorf("command name is empty")
	}
	if _, err := exec.LookPath(c.Name); err != nil {
		return fmt.Errorf("failed to resolve command: %w", err)
	}
	return nil
}

// Target returns a bench.TargetFunc that runs the command once per
// invocation. The command reads no stdin.
//
// The context is captured by the closure: canceling it kills the running
// process, which fails the invocation and thereby aborts the measurement.
func (c Command) Target(ctx context.Context) bench.TargetFunc {
	return func() error {
		cmd := exec.CommandContext(ctx, c.Name, c.Args...)
		cmd.Stdout = c.Stdout
		cmd.Stderr = c.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("command %q failed: %w", c.Name, err)
		}
		return nil
	}
}
