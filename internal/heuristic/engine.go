package heuristic

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

const maxScore = 100

// When nothing fires, the reported score is a small random value rather than
// a clean zero. This is deliberate dashboard policy, not a detection signal.
const noSignalScoreCeiling = 15

// Engine is the local heuristic scoring strategy. It runs every analyzer in
// a fixed order, accumulates their score contributions, applies the
// cross-indicator bonuses and clamps the result.
//
// The engine itself is stateless between calls; the only mutable state is
// the RNG used for the no-signal baseline, which is guarded for concurrent
// use.
type Engine struct {
	analyzers []analyzer
	logger    *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates the local heuristic engine with the standard analyzer
// pipeline
func NewEngine(logger *zap.Logger) *Engine {
	return NewEngineWithSeed(logger, time.Now().UnixNano())
}

// NewEngineWithSeed creates an engine whose no-signal baseline score is
// drawn from a deterministic RNG. Used by tests.
func NewEngineWithSeed(logger *zap.Logger, seed int64) *Engine {
	return &Engine{
		// Evaluation order is fixed; it determines indicator order in
		// the output and must not change.
		analyzers: []analyzer{
			newDomainAnalyzer(),
			newLinkAnalyzer(),
			newMismatchAnalyzer(),
			newUrgencyAnalyzer(),
			newSensitiveInfoAnalyzer(),
			newAttachmentAnalyzer(),
			newImpersonationAnalyzer(),
			newLanguageAnalyzer(),
		},
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Name identifies the strategy in logs and stored records
func (e *Engine) Name() string {
	return "local-heuristic"
}

// AnalyzeEmail scores an email against the full rule set. It never returns
// an error: ragged input produces zero matches, not failures.
func (e *Engine) AnalyzeEmail(_ context.Context, email *core.EmailMessage) (*core.PhishingAssessment, error) {
	indicators := make([]core.Indicator, 0, len(e.analyzers))
	total := 0

	for _, a := range e.analyzers {
		finding := a.Analyze(email)
		if finding == nil {
			continue
		}
		indicators = append(indicators, finding.Indicator)
		total += finding.Contribution
		e.logger.Debug("Analyzer matched",
			zap.String("analyzer", a.Name()),
			zap.String("indicator", string(finding.Indicator.Type)),
			zap.Int("contribution", finding.Contribution))
	}

	// Bonus rules read the complete indicator set, so they run strictly
	// after the per-analyzer passes.
	total += crossIndicatorBonus(indicators)

	score := total
	if score > maxScore {
		score = maxScore
	}
	if len(indicators) == 0 {
		score = e.noSignalScore()
	}

	return &core.PhishingAssessment{
		Score:        score,
		Indicators:   indicators,
		Success:      true,
		AnalyzedAt:   time.Now(),
		StrategyUsed: e.Name(),
	}, nil
}

// crossIndicatorBonus applies the two post-pass adjustments: a flat bonus
// when two or more high-severity indicators fire, and another when urgency
// and a sensitive-info request appear together.
func crossIndicatorBonus(indicators []core.Indicator) int {
	bonus := 0

	highCount := 0
	hasUrgency := false
	hasSensitive := false
	for _, ind := range indicators {
		if ind.Severity == core.SeverityHigh {
			highCount++
		}
		switch ind.Type {
		case core.IndicatorUrgencyOrPressure:
			hasUrgency = true
		case core.IndicatorSensitiveInfoRequest:
			hasSensitive = true
		}
	}

	if highCount >= 2 {
		bonus += 10
	}
	if hasUrgency && hasSensitive {
		bonus += 15
	}
	return bonus
}

// noSignalScore draws the [1,15] placeholder reported when no indicator
// fires
func (e *Engine) noSignalScore() int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return 1 + e.rng.Intn(noSignalScoreCeiling)
}
