// Package config loads tool settings from an optional YAML file, with
// BOXVM_* environment variables and explicitly-set command-line flags
// layered on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultFile is the config file consulted when --config is not given.
const DefaultFile = "boxvm.yaml"

// Config is the tool configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`   // logrus level name
	Trace     bool   `mapstructure:"trace" yaml:"trace"`           // stream conversion events to the log
	ScriptDir string `mapstructure:"script_dir" yaml:"script_dir"` // search path for user .jbx programs
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured logrus level. Validate must have passed.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// envBindings maps config keys to the environment variables that can
// provide their values.
var envBindings = map[string][]string{
	"log_level":  {"BOXVM_LOG_LEVEL"},
	"trace":      {"BOXVM_TRACE"},
	"script_dir": {"BOXVM_SCRIPT_DIR"},
}

// flagBindings maps config keys to the command-line flags that override
// them. A flag only takes effect when it was explicitly set.
var flagBindings = map[string]string{
	"log_level":  "log-level",
	"trace":      "trace",
	"script_dir": "script-dir",
}

// Load reads the config file when it exists, falling back to environment
// variables and defaults. Explicitly-set flags override environment
// variables, which override file values. flags may be nil.
func Load(filePath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("trace", false)
	v.SetDefault("script_dir", ".")

	if err := bindEnvs(v); err != nil {
		return nil, err
	}
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// bindEnvs binds the environment variable mappings to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

// bindFlags binds the flag mappings to the viper instance. Flags missing
// from the set are skipped.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	return nil
}
