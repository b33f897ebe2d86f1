package remediation

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
)

// Outcome tags how a remediation step ended.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomePermissionDenied Outcome = "permission-denied"
	OutcomeMissingTool      Outcome = "missing-tool"
	OutcomeTimeout          Outcome = "timeout"
	OutcomeError            Outcome = "error"
)

// Classify maps a step error onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, fs.ErrPermission):
		return OutcomePermissionDenied
	case errors.Is(err, exec.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, errors.ErrUnsupported):
		return OutcomeMissingTool
	default:
		return OutcomeError
	}
}
