package remediation

import (
	"context"
	"fmt"
	"time"
)

// Step is one best-effort cleanup action.
type Step struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type StepResult struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Execute runs the step under its own timeout. Errors and panics are folded
// into the returned result.
func (s Step) Execute(ctx context.Context) (res StepResult) {
	res.Name = s.Name
	start := time.Now()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Outcome = OutcomeError
			res.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	err := s.Run(ctx)
	res.Outcome = Classify(err)
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// blocking runs fn, which cannot be interrupted, and stops waiting for it
// once ctx is done.
func blocking(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
