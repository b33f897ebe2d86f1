package command

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_MissingBinary(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "hostcheckr-no-such-tool")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunner_ExitStatus(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	require.NoError(t, ExecRunner{}.Run(context.Background(), "true"))

	err := ExecRunner{}.Run(context.Background(), "false")
	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestRunWithTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	start := time.Now()
	err := RunWithTimeout(context.Background(), ExecRunner{}, 50*time.Millisecond, "sleep", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 3*time.Second)
}
