package core

import (
	"context"
)

// ScoringStrategy produces a phishing assessment for an email. Two
// implementations exist: the local heuristic engine and a remote scoring
// service. The remote one may fail; the local one never returns an error.
type ScoringStrategy interface {
	// AnalyzeEmail scores an email and returns the assessment
	AnalyzeEmail(ctx context.Context, email *EmailMessage) (*PhishingAssessment, error)

	// Name identifies the strategy in logs and stored records
	Name() string
}

// FraudChecker evaluates event records against a configurable rule table.
// Implemented by the fraud rule engine.
type FraudChecker interface {
	// DetectFraud runs every enabled rule against the event
	DetectFraud(event FraudEvent) FraudAssessment

	// GetRules returns the current rule configuration, without predicates
	GetRules() []RuleConfig

	// UpdateRules merges enabled/threshold changes by rule id and returns
	// the resulting configuration
	UpdateRules(configs []RuleConfig) []RuleConfig
}

// AssessmentStore persists analysis results and fraud alerts. The engine
// itself is stateless; durability lives entirely behind this port.
type AssessmentStore interface {
	// SaveAssessment stores an analyzed email record
	SaveAssessment(ctx context.Context, record *EmailRecord) error

	// GetAssessment retrieves a stored record by id
	GetAssessment(ctx context.Context, id string) (*EmailRecord, error)

	// ListAssessments returns up to limit records, most recent first
	ListAssessments(ctx context.Context, limit int) ([]*EmailRecord, error)

	// UpdateAssessmentStatus moves a stored record through its review lifecycle
	UpdateAssessmentStatus(ctx context.Context, id string, status EmailStatus) error

	// SaveFraudAlert stores a fraud alert record
	SaveFraudAlert(ctx context.Context, alert *FraudAlertRecord) error

	// ListFraudAlerts returns up to limit alerts, most recent first
	ListFraudAlerts(ctx context.Context, limit int) ([]*FraudAlertRecord, error)

	// UpdateAlertStatus moves a stored alert through its review lifecycle
	UpdateAlertStatus(ctx context.Context, id string, status AlertStatus) error

	// Cleanup removes expired records
	Cleanup(ctx context.Context) error
}
