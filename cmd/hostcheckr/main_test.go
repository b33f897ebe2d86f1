package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janyksteenbeek/hostcheckr/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: error\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hostcheckr v"+config.Version+"\n", out)
}

func TestFix_RequiresConfirmation(t *testing.T) {
	_, err := execute(t, "fix")
	assert.ErrorIs(t, err, errNotConfirmed)
}

func TestRejectsInvalidOutput(t *testing.T) {
	_, err := execute(t, "--output", "xml", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestRejectsUnknownPenaltyTable(t *testing.T) {
	_, err := execute(t, "--penalty-table", "strict", "check")
	assert.Error(t, err)
}

func TestBuildLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := buildLogger(config.Config{LogLevel: "warn", LogJSON: true}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"msg":"shown"`)
}
