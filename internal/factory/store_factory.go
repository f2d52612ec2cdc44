package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/adapters/store"
	"github.com/securecheck/securecheck/internal/config"
	"github.com/securecheck/securecheck/internal/core"
)

// StoreFactory creates assessment stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAssessmentStore creates an assessment store based on the configuration
func (f *StoreFactory) CreateAssessmentStore() (core.AssessmentStore, error) {
	storeType := f.cfg.GetString("store.type")
	retention, err := f.cfg.GetDuration("store.ttl")
	if err != nil {
		return nil, fmt.Errorf("invalid store TTL: %w", err)
	}
	cleanupFreq, err := f.cfg.GetDuration("store.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid store cleanup frequency: %w", err)
	}

	switch storeType {
	case "memory":
		return store.NewMemoryStore(f.logger, retention, cleanupFreq), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("store.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger, retention, cleanupFreq)
	case "mysql":
		mysqlDSN := f.cfg.GetString("store.mysql_dsn")
		return store.NewMySQLStore(mysqlDSN, f.logger, retention, cleanupFreq)
	case "redis":
		redisAddr := f.cfg.GetString("store.redis_addr")
		return store.NewRedisStore(redisAddr, f.logger, retention)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// GetRetention returns the configured assessment retention period
func (f *StoreFactory) GetRetention() (time.Duration, error) {
	return f.cfg.GetDuration("store.ttl")
}

// IsStoreEnabled returns whether assessment persistence is enabled
func (f *StoreFactory) IsStoreEnabled() bool {
	return f.cfg.GetBool("store.enabled")
}
