package di

import (
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

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
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
	if err := container.Provide(factory.NewStoreFactory); err != nil {
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

	// Register assessment store
	if err := container.Provide(func(f *factory.StoreFactory) (core.AssessmentStore, error) {
		return f.CreateAssessmentStore()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		strategies *factory.StrategyFactory,
		stores *factory.StoreFactory,
		fraudChecker core.FraudChecker,
		store core.AssessmentStore,
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
			store,
			stores.IsStoreEnabled(),
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
