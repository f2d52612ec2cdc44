package fraud

import (
	"sync"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

// Engine evaluates event records against a mutable rule table. Reads and
// updates on the same instance are serialized through the lock so a check
// never observes a rule mid-update.
type Engine struct {
	mu     sync.RWMutex
	rules  []*rule
	logger *zap.Logger
}

// NewEngine creates a fraud engine with the built-in rule table
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		rules:  builtinRules(),
		logger: logger,
	}
}

// GetRules returns the current rule configuration. Predicates are internal
// and never exposed.
func (e *Engine) GetRules() []core.RuleConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()

	configs := make([]core.RuleConfig, 0, len(e.rules))
	for _, r := range e.rules {
		configs = append(configs, r.config())
	}
	return configs
}

// UpdateRules merges caller-supplied changes into the table. Only the
// enabled and threshold fields are taken from the input; predicates stay
// bound to their rule ids, so caller data can never inject logic. Unknown
// rule ids are silently ignored.
func (e *Engine) UpdateRules(configs []core.RuleConfig) []core.RuleConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	byID := make(map[string]core.RuleConfig, len(configs))
	for _, cfg := range configs {
		byID[cfg.ID] = cfg
	}

	for _, r := range e.rules {
		cfg, ok := byID[r.id]
		if !ok {
			continue
		}
		r.enabled = cfg.Enabled
		if cfg.Threshold != nil {
			v := *cfg.Threshold
			r.threshold = &v
		}
		e.logger.Debug("Fraud rule updated",
			zap.String("rule_id", r.id),
			zap.Bool("enabled", r.enabled))
	}

	updated := make([]core.RuleConfig, 0, len(e.rules))
	for _, r := range e.rules {
		updated = append(updated, r.config())
	}
	return updated
}

// DetectFraud runs every enabled rule against the event in table order.
// Severity derives purely from the count of triggered rules: more than two
// is high, one or two is medium. The low tier exists only for pre-existing
// stored alerts and is never produced here.
func (e *Engine) DetectFraud(event core.FraudEvent) core.FraudAssessment {
	e.mu.RLock()
	defer e.mu.RUnlock()

	triggered := make([]string, 0)
	for _, r := range e.rules {
		if !r.enabled {
			continue
		}
		if r.check(event, r.threshold) {
			triggered = append(triggered, r.id)
		}
	}

	if len(triggered) == 0 {
		return core.FraudAssessment{
			IsFraudulent:   false,
			TriggeredRules: triggered,
		}
	}

	severity := core.SeverityMedium
	if len(triggered) > 2 {
		severity = core.SeverityHigh
	}

	e.logger.Info("Fraud rules triggered",
		zap.Strings("rules", triggered),
		zap.String("severity", string(severity)))

	return core.FraudAssessment{
		IsFraudulent:   true,
		Severity:       severity,
		TriggeredRules: triggered,
	}
}

// config builds the external view of a rule, copying the threshold so
// callers cannot mutate the table through the returned pointer
func (r *rule) config() core.RuleConfig {
	cfg := core.RuleConfig{
		ID:          r.id,
		Name:        r.name,
		Description: r.description,
		Enabled:     r.enabled,
	}
	if r.threshold != nil {
		v := *r.threshold
		cfg.Threshold = &v
	}
	return cfg
}
