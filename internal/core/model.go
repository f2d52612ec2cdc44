package core

import (
	"time"
)

// Severity classifies how strong a single indicator or fraud verdict is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IndicatorType is the category of a phishing indicator. The values match
// the labels the dashboard displays, so they double as display strings.
type IndicatorType string

const (
	IndicatorSuspiciousLink       IndicatorType = "Suspicious Link"
	IndicatorSpoofedDomain        IndicatorType = "Spoofed Domain"
	IndicatorSensitiveInfoRequest IndicatorType = "Request for Sensitive Information"
	IndicatorSuspiciousAttachment IndicatorType = "Suspicious Attachment"
	IndicatorImpersonationAttempt IndicatorType = "Impersonation Attempt"
	IndicatorUrgencyOrPressure    IndicatorType = "Urgency or Pressure"
	IndicatorGrammarErrors        IndicatorType = "Grammar Errors"
	IndicatorMismatchedURLs       IndicatorType = "Mismatched URLs"
)

// EmailMessage is the raw input to a phishing analysis. The engine is a pure
// function of these three fields; nothing here is persisted.
type EmailMessage struct {
	Sender  string
	Subject string
	Content string
}

// Indicator is a single structured finding: one suspicious signal detected in
// a message. Each analyzer emits at most one indicator per analysis.
type Indicator struct {
	Type        IndicatorType `json:"type"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
	Confidence  int           `json:"confidence"` // 0-100
}

// PhishingAssessment is the aggregate result of one analysis call.
// Score is always in [0,100]; it is zero only on analysis failure.
type PhishingAssessment struct {
	Score        int         `json:"score"`
	Indicators   []Indicator `json:"indicators"`
	Success      bool        `json:"success"`
	Error        string      `json:"error,omitempty"`
	AnalyzedAt   time.Time   `json:"analyzed_at"`
	StrategyUsed string      `json:"strategy_used"`
}

// FraudEvent is the open event-data record a fraud check runs against.
// Rules read only the fields they expect; missing fields are treated as
// falsy/zero.
type FraudEvent map[string]any

// FraudAssessment is the result of running the fraud rule table against an
// event. Severity is empty when the event is not fraudulent.
type FraudAssessment struct {
	IsFraudulent   bool     `json:"is_fraudulent"`
	Severity       Severity `json:"severity,omitempty"`
	TriggeredRules []string `json:"triggered_rules"`
}

// RuleConfig is the externally visible view of a fraud rule. Predicates are
// never exposed or accepted through this type.
type RuleConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
	Threshold   *int   `json:"threshold,omitempty"`
}

// EmailStatus is the review lifecycle of a stored email assessment
type EmailStatus string

const (
	EmailStatusNew        EmailStatus = "new"
	EmailStatusAnalyzing  EmailStatus = "analyzing"
	EmailStatusFlagged    EmailStatus = "flagged"
	EmailStatusLegitimate EmailStatus = "legitimate"
	EmailStatusUnsure     EmailStatus = "unsure"
)

// AlertStatus is the review lifecycle of a stored fraud alert
type AlertStatus string

const (
	AlertStatusNew           AlertStatus = "new"
	AlertStatusInProgress    AlertStatus = "in_progress"
	AlertStatusResolved      AlertStatus = "resolved"
	AlertStatusFalsePositive AlertStatus = "false_positive"
)

// EmailRecord is the persisted form of an analyzed email
type EmailRecord struct {
	ID            string      `json:"id"`
	Subject       string      `json:"subject"`
	Sender        string      `json:"sender"`
	Recipient     string      `json:"recipient"`
	Content       string      `json:"content"`
	ReceivedAt    time.Time   `json:"received_at"`
	AnalyzedAt    time.Time   `json:"analyzed_at"`
	Status        EmailStatus `json:"status"`
	PhishingScore int         `json:"phishing_score"`
	Indicators    []Indicator `json:"indicators"`
}

// FraudAlertRecord is the persisted form of a triggered fraud check
type FraudAlertRecord struct {
	ID             string      `json:"id"`
	AlertType      string      `json:"alert_type"`
	Details        string      `json:"details"`
	Severity       Severity    `json:"severity"`
	Status         AlertStatus `json:"status"`
	TriggeredRules []string    `json:"triggered_rules"`
	Timestamp      time.Time   `json:"timestamp"`
}
