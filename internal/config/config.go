// Package config loads the Coordinator's configuration record (spec.md
// §6.4), mapstructure-tagged the way the reference pack's viper-backed
// config packages are, with the same option names and defaults the spec
// enumerates.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration record a Coordinator process consumes.
type Config struct {
	Session   SessionConfig   `mapstructure:"session"`
	Heartbeat HeartbeatConfig `mapstructure:"heartbeat"`
	Listen    ListenConfig    `mapstructure:"listen"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// SessionConfig is the training-session shape: round count, selection
// fraction, and the local-training parameters handed to participants.
type SessionConfig struct {
	NumRounds  uint64  `mapstructure:"num_rounds"`
	MinInRound uint64  `mapstructure:"min_in_round"`
	Fraction   float64 `mapstructure:"fraction"`
	Epochs     uint64  `mapstructure:"epochs"`
	EpochBase  uint64  `mapstructure:"epoch_base"`
}

// HeartbeatConfig controls the registry's eviction clock (C1, C6).
type HeartbeatConfig struct {
	Period  time.Duration `mapstructure:"period"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListenConfig is the RPC surface's bind address (C7).
type ListenConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig points at the badger-backed storage collaborator (§6.3).
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AggregatorConfig optionally selects an out-of-process aggregator plugin
// (package aggregation/plugin) instead of the built-in FedAvg.
type AggregatorConfig struct {
	PluginPath string `mapstructure:"plugin_path"`
}

// LoggerConfig mirrors common/logging's level/format knobs.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Addr returns the host:port the RPC server should bind.
func (l ListenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.num_rounds", 10)
	v.SetDefault("session.min_in_round", 1)
	v.SetDefault("session.fraction", 1.0)
	v.SetDefault("session.epochs", 0)
	v.SetDefault("session.epoch_base", 0)

	v.SetDefault("heartbeat.period", 10*time.Second)
	v.SetDefault("heartbeat.timeout", 5*time.Second)

	v.SetDefault("listen.host", "[::]")
	v.SetDefault("listen.port", 50051)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.path", "./coordinator-data")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "logfmt")
}

// Load reads configuration from path (if non-empty) plus environment
// variables prefixed XAIN_ (e.g. XAIN_SESSION_NUM_ROUNDS), falling back to
// the defaults in spec.md §6.4's table.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("xain")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.NumRounds < 1 {
		return fmt.Errorf("config: session.num_rounds must be >= 1")
	}
	if c.Session.MinInRound < 1 {
		return fmt.Errorf("config: session.min_in_round must be >= 1")
	}
	if c.Session.Fraction <= 0 || c.Session.Fraction > 1 {
		return fmt.Errorf("config: session.fraction must be in (0, 1]")
	}
	return nil
}
