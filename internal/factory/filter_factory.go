package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/adapters/filter"
	"github.com/securecheck/securecheck/internal/config"
	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/ports"
)

// FilterFactory creates email filters based on configuration
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalysisService
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalysisService) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateEmailFilter creates an email filter based on the configuration
func (f *FilterFactory) CreateEmailFilter() (ports.EmailFilter, error) {
	serverConfig := f.cfg.GetServer()

	switch serverConfig.FilterType {
	case "smtp":
		return filter.NewSMTPFilter(f.service, f.logger, serverConfig), nil
	case "cli":
		return filter.NewCliFilter(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported filter type: %s", serverConfig.FilterType)
	}
}
