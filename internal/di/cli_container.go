package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/config"
	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/factory"
	"github.com/securecheck/securecheck/internal/fraud"
	"github.com/securecheck/securecheck/internal/logging"
	"github.com/securecheck/securecheck/internal/ports"
	"github.com/securecheck/securecheck/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Scoring flags
	Strategy        string
	OpenAIAPIKey    string
	OpenAIModelName string
	MaxTokens       int
	Temperature     float64
	TopP            float64
	MaxBodySize     int

	// Input flags
	InputFile  string
	Sender     string
	Subject    string
	FraudEvent string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Scoring flags
	flag.StringVar(&flags.Strategy, "strategy", "local", "Scoring strategy (local, remote)")
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI (remote strategy)")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4", "OpenAI model name")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for the remote response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for remote generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for remote generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum email body size sent to the remote strategy")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.StringVar(&flags.Sender, "sender", "", "Sender address override")
	flag.StringVar(&flags.Subject, "subject", "", "Subject override")
	flag.StringVar(&flags.FraudEvent, "fraud", "", "JSON fraud event to evaluate instead of an email")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStrategyFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}

	// Register fraud rule engine
	if err := container.Provide(func(logger *zap.Logger) core.FraudChecker {
		return fraud.NewEngine(logger)
	}); err != nil {
		return nil, err
	}

	// Register analysis service with no store
	if err := container.Provide(func(
		strategies *factory.StrategyFactory,
		fraudChecker core.FraudChecker,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.AnalysisService, error) {
		remote, err := strategies.CreateRemoteStrategy()
		if err != nil {
			return nil, err
		}
		scoring := cfg.GetScoring()
		return core.NewAnalysisService(
			remote,
			strategies.CreateLocalStrategy(),
			fraudChecker,
			nil,   // No store for CLI
			false, // Persistence disabled
			scoring.FlagThreshold,
			scoring.SafeThreshold,
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register email filter
	if err := container.Provide(func(f *factory.FilterFactory) (ports.EmailFilter, error) {
		return f.CreateEmailFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.filter_type", "cli")
	v.Set("cli.verbose", flags.Verbose)
	v.Set("store.enabled", false)

	v.Set("scoring.strategy", flags.Strategy)
	if flags.Strategy == "remote" {
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	return config.NewFromViper(v)
}
