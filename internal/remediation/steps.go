package remediation

import (
	"context"
	"os"

	"github.com/janyksteenbeek/hostcheckr/internal/command"
	"github.com/janyksteenbeek/hostcheckr/internal/config"
)

const (
	StepSync             = "sync"
	StepDropCaches       = "drop-caches"
	StepAnalyzeDatabases = "analyze-databases"
	StepRecyclePHP       = "recycle-php-workers"
	StepFlushCache       = "flush-cache"
)

// DefaultSteps returns the cleanup sequence in execution order. runner
// spawns the external tools; nil means the real PATH lookup.
func DefaultSteps(runner command.Runner) []Step {
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return []Step{
		{
			Name:    StepSync,
			Timeout: config.SyncTimeout,
			Run: func(ctx context.Context) error {
				return blocking(ctx, syncFilesystems)
			},
		},
		{
			Name:    StepDropCaches,
			Timeout: config.DropCachesTimeout,
			Run: func(ctx context.Context) error {
				return blocking(ctx, func() error {
					return writeControlFile(config.DropCachesPath, config.DropCachesValue)
				})
			},
		},
		{
			// ANALYZE refreshes index statistics without the long table
			// locks OPTIMIZE would take.
			Name:    StepAnalyzeDatabases,
			Timeout: config.DatabaseTimeout,
			Run: func(ctx context.Context) error {
				return runner.Run(ctx, config.DatabaseMaintenanceBin, "-a", "--all-databases")
			},
		},
		{
			// The process manager respawns fresh workers, dropping opcode
			// caches and leaked memory.
			Name:    StepRecyclePHP,
			Timeout: config.AppServerTimeout,
			Run: func(ctx context.Context) error {
				return runner.Run(ctx, config.ProcessKillBin, config.AppServerProcess)
			},
		},
		{
			Name:    StepFlushCache,
			Timeout: config.CacheFlushTimeout,
			Run: func(ctx context.Context) error {
				return runner.Run(ctx, config.CacheCLIBin, "flushall")
			},
		},
	}
}

// writeControlFile writes value to an existing kernel control file. It never
// creates path.
func writeControlFile(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
