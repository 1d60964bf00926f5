package main

import (
	"github.com/YuminosukeSato/mgfs/centrality"
	"github.com/YuminosukeSato/mgfs/internal/config"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
	"github.com/YuminosukeSato/mgfs/sklearn/feature_selection"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "mgfs.yaml"

// app carries the state shared by every subcommand after PersistentPreRunE.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	debug      bool

	cfg    config.Config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "mgfs",
		Short:        "Rank and select features with the MGFS graph score",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath, "YAML configuration file")
	flags.StringVar(&a.envFile, "env-file", "", "load MGFS_* variables from this .env file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "console", "log format: console (zerolog) or json (slog, Cloud Logging fields)")
	flags.BoolVarP(&a.debug, "debug", "d", false, "verbose logging")

	rootCmd.AddCommand(newRankCmd(a), newSelectCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"), a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.debug {
		cfg.LogLevel = "debug"
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	switch a.logFormat {
	case "console":
		a.logger = log.SetupZerolog(cmd.ErrOrStderr(), level).GetLoggerWithName("cli")
	case "json":
		if err := log.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
			return err
		}
		a.logger = log.NewSlogLogger(nil).With("logger", "cli")
	default:
		return errors.NewValidationError("log_format", "must be console or json", a.logFormat)
	}
	a.logger.Debug("Configuration loaded", "config", a.configPath, "env_file", a.envFile)
	return nil
}

// selectorFlags holds hyperparameter flags; only flags set on the command line
// override the loaded configuration.
type selectorFlags struct {
	beta       float64
	epsilon    float64
	bias       bool
	maxIter    int
	strict     bool
	zeroDegree string
	k          int
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.beta, "beta", centrality.DefaultBeta, "damping factor in (0, 1)")
	flags.Float64Var(&f.epsilon, "epsilon", centrality.DefaultEpsilon, "L1 convergence threshold")
	flags.BoolVar(&f.bias, "bias", false, "divide the covariance by n instead of n-1")
	flags.IntVar(&f.maxIter, "max-iter", 0, "power iteration cap (0 = unbounded)")
	flags.BoolVar(&f.strict, "strict", false, "fail on degenerate input instead of producing NaN")
	flags.StringVar(&f.zeroDegree, "zero-degree", centrality.ZeroDegreePropagate.String(),
		"zero-weight node policy: propagate, error, uniform")
	flags.IntVarP(&f.k, "k", "k", 0, "number of features to keep (0 = all)")
}

func (f *selectorFlags) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("beta") {
		cfg.Beta = f.beta
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = f.epsilon
	}
	if flags.Changed("bias") {
		cfg.Bias = f.bias
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter = f.maxIter
	}
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}
	if flags.Changed("zero-degree") {
		cfg.ZeroDegree = f.zeroDegree
	}
	if flags.Changed("k") {
		cfg.K = f.k
	}
	return cfg
}

// newSelector builds a selector from the configuration and command-line flags.
func (a *app) newSelector(cmd *cobra.Command, f *selectorFlags) (*feature_selection.MGFSSelector, error) {
	cfg := f.apply(cmd, a.cfg)
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, feature_selection.WithLogger(a.logger))

	s := feature_selection.NewMGFSSelector(opts...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
