package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
	"github.com/janyksteenbeek/hostcheckr/internal/command"
	"github.com/janyksteenbeek/hostcheckr/internal/config"
	"github.com/janyksteenbeek/hostcheckr/internal/health"
	"github.com/janyksteenbeek/hostcheckr/internal/reporter"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags and config are parsed.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	runner  command.Runner
	checker *health.Checker
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"output":        "output",
	"no-color":      "no_color",
	"log-level":     "log_level",
	"log-json":      "log_json",
	"penalty-table": "penalty_table",
	"textfile":      "textfile",
	"interval":      "interval",
}

func newRootCmd() *cobra.Command {
	a := &app{runner: command.ExecRunner{}}

	rootCmd := &cobra.Command{
		Use:   "hostcheckr",
		Short: "Host optimization score and cleanup",
		Long: `Scores this host from memory, load and disk pressure and, on request,
runs a best-effort cleanup (sync, cache drop, database ANALYZE, PHP worker
recycle, Redis flush) before scoring it again.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default /etc/hostcheckr/config.yaml or ~/.hostcheckr/config.yaml)")
	flags.String("output", config.OutputTable, "output format (table, json)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("penalty-table", score.Detailed.Name, "penalty table (detailed, simplified)")
	flags.String("textfile", "", "also export results to this node_exporter textfile")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newFixCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = buildLogger(cfg, cmd.ErrOrStderr())

	table, err := score.TableByName(cfg.PenaltyTable)
	if err != nil {
		return err
	}
	a.checker = health.NewChecker(
		collector.New(a.runner, a.log),
		score.NewEngine(table),
		a.log,
	)
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func buildLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) renderOptions() reporter.Options {
	return reporter.Options{Format: a.cfg.Output, NoColor: a.cfg.NoColor || os.Getenv("NO_COLOR") != ""}
}
