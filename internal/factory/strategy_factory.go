package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/adapters/openai"
	"github.com/securecheck/securecheck/internal/config"
	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/heuristic"
	"github.com/securecheck/securecheck/internal/utils"
)

// StrategyFactory creates scoring strategies
type StrategyFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewStrategyFactory creates a new strategy factory
func NewStrategyFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *StrategyFactory {
	return &StrategyFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateLocalStrategy creates the heuristic scoring engine. The local engine
// is always available regardless of the configured strategy so it can serve
// as the fallback path.
func (f *StrategyFactory) CreateLocalStrategy() core.ScoringStrategy {
	return heuristic.NewEngine(f.logger)
}

// CreateRemoteStrategy creates the remote scoring strategy, or nil when the
// configuration selects local-only scoring
func (f *StrategyFactory) CreateRemoteStrategy() (core.ScoringStrategy, error) {
	scoringConfig := f.cfg.GetScoring()

	switch scoringConfig.Strategy {
	case "local":
		return nil, nil
	case "remote":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateScoringStrategy()
	default:
		return nil, fmt.Errorf("unsupported scoring strategy: %s", scoringConfig.Strategy)
	}
}
