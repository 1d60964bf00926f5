// Package config loads the settings of the mgfs command.
//
// Values are resolved in order: built-in defaults, a YAML file, then MGFS_*
// environment variables (optionally read from a .env file). Command-line flags
// are applied last by the caller.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mgfs/centrality"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
	"github.com/YuminosukeSato/mgfs/sklearn/feature_selection"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the MGFS hyperparameters and CLI settings.
type Config struct {
	Beta       float64 `yaml:"beta"`
	Epsilon    float64 `yaml:"epsilon"`
	Bias       bool    `yaml:"bias"`
	MaxIter    int     `yaml:"max_iter"`
	Strict     bool    `yaml:"strict"`
	ZeroDegree string  `yaml:"zero_degree"`
	K          int     `yaml:"k"`
	LogLevel   string  `yaml:"log_level"`
}

// Default returns the library defaults.
func Default() Config {
	return Config{
		Beta:       centrality.DefaultBeta,
		Epsilon:    centrality.DefaultEpsilon,
		ZeroDegree: centrality.ZeroDegreePropagate.String(),
		LogLevel:   "warn",
	}
}

// Load resolves the configuration from defaults, the YAML file at path and the
// environment. envFile, when non-empty, is loaded into the process environment
// first; variables already set are not overridden. required controls whether a
// missing config file is an error.
func Load(path string, required bool, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, required, &cfg); err != nil {
			return cfg, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	if v, ok := lookup("MGFS_BETA"); ok {
		if cfg.Beta, err = strconv.ParseFloat(v, 64); err != nil {
			return errors.NewValidationError("MGFS_BETA", "not a number", v)
		}
	}
	if v, ok := lookup("MGFS_EPSILON"); ok {
		if cfg.Epsilon, err = strconv.ParseFloat(v, 64); err != nil {
			return errors.NewValidationError("MGFS_EPSILON", "not a number", v)
		}
	}
	if v, ok := lookup("MGFS_BIAS"); ok {
		if cfg.Bias, err = strconv.ParseBool(v); err != nil {
			return errors.NewValidationError("MGFS_BIAS", "not a boolean", v)
		}
	}
	if v, ok := lookup("MGFS_MAX_ITER"); ok {
		if cfg.MaxIter, err = strconv.Atoi(v); err != nil {
			return errors.NewValidationError("MGFS_MAX_ITER", "not an integer", v)
		}
	}
	if v, ok := lookup("MGFS_STRICT"); ok {
		if cfg.Strict, err = strconv.ParseBool(v); err != nil {
			return errors.NewValidationError("MGFS_STRICT", "not a boolean", v)
		}
	}
	if v, ok := lookup("MGFS_ZERO_DEGREE"); ok {
		cfg.ZeroDegree = v
	}
	if v, ok := lookup("MGFS_K"); ok {
		if cfg.K, err = strconv.Atoi(v); err != nil {
			return errors.NewValidationError("MGFS_K", "not an integer", v)
		}
	}
	if v, ok := lookup("MGFS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return nil
}

// lookup returns the trimmed value of a non-empty environment variable.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks every field with the same rules as the selector.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	return feature_selection.NewMGFSSelector(opts...).Validate()
}

// Options converts the configuration into selector options.
func (c Config) Options() ([]feature_selection.Option, error) {
	policy, err := centrality.ParseZeroDegreePolicy(c.ZeroDegree)
	if err != nil {
		return nil, err
	}
	return []feature_selection.Option{
		feature_selection.WithBeta(c.Beta),
		feature_selection.WithEpsilon(c.Epsilon),
		feature_selection.WithBias(c.Bias),
		feature_selection.WithMaxIter(c.MaxIter),
		feature_selection.WithStrict(c.Strict),
		feature_selection.WithZeroDegree(policy),
		feature_selection.WithK(c.K),
	}, nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelWarn
	}
	return level
}
