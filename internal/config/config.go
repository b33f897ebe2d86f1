package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	Version         = "1.0.0"
	EnvPrefix       = "HOSTCHECKR"
	DefaultInterval = 60 * time.Second
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type Config struct {
	LogLevel     string        `mapstructure:"log_level"`
	LogJSON      bool          `mapstructure:"log_json"`
	Output       string        `mapstructure:"output"`
	NoColor      bool          `mapstructure:"no_color"`
	PenaltyTable string        `mapstructure:"penalty_table"`
	Interval     time.Duration `mapstructure:"interval"`
	TextfilePath string        `mapstructure:"textfile"`
}

// Default returns the settings used when neither a config file nor the
// environment override anything.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Output:       OutputTable,
		PenaltyTable: "detailed",
		Interval:     DefaultInterval,
	}
}

// NewViper prepares a viper instance reading from cfgFile when set, otherwise
// from the first config.yaml found in /etc/hostcheckr or ~/.hostcheckr.
// Environment variables use the HOSTCHECKR_ prefix.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_json", def.LogJSON)
	v.SetDefault("output", def.Output)
	v.SetDefault("no_color", def.NoColor)
	v.SetDefault("penalty_table", def.PenaltyTable)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("textfile", def.TextfilePath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/hostcheckr")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".hostcheckr"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.PenaltyTable = strings.ToLower(strings.TrimSpace(cfg.PenaltyTable))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("unsupported output format %q", c.Output)
	}
	switch c.PenaltyTable {
	case "detailed", "simplified":
	default:
		return fmt.Errorf("unsupported penalty table %q", c.PenaltyTable)
	}
	if c.Interval <= 0 {
		return errors.New("interval must be > 0")
	}
	return nil
}
