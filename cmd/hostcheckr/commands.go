package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janyksteenbeek/hostcheckr/internal/config"
	"github.com/janyksteenbeek/hostcheckr/internal/remediation"
	"github.com/janyksteenbeek/hostcheckr/internal/reporter"
)

var errNotConfirmed = errors.New("remediation changes the host; rerun with --yes to confirm")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Collect metrics and print the optimization score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.checker.GetMetrics(cmd.Context())
			if a.cfg.TextfilePath != "" {
				if err := reporter.WriteTextfile(a.cfg.TextfilePath, snap, nil); err != nil {
					a.log.Warn("textfile export failed", "error", err)
				}
			}
			return reporter.WriteSnapshot(cmd.OutOrStdout(), snap, a.renderOptions())
		},
	}
}

func newFixCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Run the cleanup sequence and score the host again",
		Long: `Runs, in order and regardless of individual failures: sync, drop the kernel
page/dentry/inode caches, ANALYZE all MySQL/MariaDB databases, recycle lsphp
workers and flush Redis. Without root the cache drop is skipped and the
result says so.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}

			o := remediation.New(a.checker, remediation.DefaultSteps(a.runner), a.log)
			res := o.Remediate(cmd.Context())

			if a.cfg.TextfilePath != "" {
				if err := reporter.WriteTextfile(a.cfg.TextfilePath, res.Metrics, &res); err != nil {
					a.log.Warn("textfile export failed", "error", err)
				}
			}
			return reporter.WriteResult(cmd.OutOrStdout(), res, a.renderOptions())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm running the cleanup sequence")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a fresh score every interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Duration("interval", config.DefaultInterval, "time between checks")
	return cmd
}

func (a *app) watch(ctx context.Context, w io.Writer) error {
	a.log.Info("watching host", "interval", a.cfg.Interval, "penalty_table", a.cfg.PenaltyTable)

	if err := a.watchTick(ctx, w); err != nil {
		return err
	}

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("watch stopped")
			return nil
		case <-ticker.C:
			if err := a.watchTick(ctx, w); err != nil {
				return err
			}
		}
	}
}

func (a *app) watchTick(ctx context.Context, w io.Writer) error {
	snap := a.checker.GetMetrics(ctx)
	a.log.Info("host checked", "score", snap.Score, "band", snap.Band)

	if a.cfg.TextfilePath != "" {
		if err := reporter.WriteTextfile(a.cfg.TextfilePath, snap, nil); err != nil {
			a.log.Warn("textfile export failed", "error", err)
		}
	}
	if err := reporter.WriteSnapshot(w, snap, a.renderOptions()); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hostcheckr v%s\n", config.Version)
		},
	}
}
