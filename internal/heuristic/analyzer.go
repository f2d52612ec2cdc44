package heuristic

import (
	"github.com/securecheck/securecheck/internal/core"
)

// Finding is a single analyzer's strongest match: the indicator to attach to
// the assessment plus how much it contributes to the aggregate score.
type Finding struct {
	Indicator    core.Indicator
	Contribution int
}

// analyzer is one detection pass over a message. Each analyzer owns one
// indicator category and returns at most one finding per call: its rules are
// checked in a fixed priority order and the first match wins.
type analyzer interface {
	Analyze(email *core.EmailMessage) *Finding
	Name() string
}

// newFinding builds a finding for the given category
func newFinding(kind core.IndicatorType, description string, severity core.Severity, confidence, contribution int) *Finding {
	return &Finding{
		Indicator: core.Indicator{
			Type:        kind,
			Description: description,
			Severity:    severity,
			Confidence:  confidence,
		},
		Contribution: contribution,
	}
}
