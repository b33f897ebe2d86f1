// Package command runs the external host utilities hostcheckr depends on.
package command

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Runner starts a program and waits for it. Output is discarded; only the
// exit status matters.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs programs found on PATH.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", name, ctxErr)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RunWithTimeout runs name through r, giving up after timeout.
func RunWithTimeout(ctx context.Context, r Runner, timeout time.Duration, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return r.Run(ctx, name, args...)
}
