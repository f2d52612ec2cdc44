package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisService is the core service for phishing and fraud analysis.
// It selects between the remote and local scoring strategies, writes
// results through to the assessment store, and shields callers from
// strategy failures.
type AnalysisService struct {
	remote        ScoringStrategy // nil when only local scoring is configured
	local         ScoringStrategy
	fraud         FraudChecker
	store         AssessmentStore
	storeEnabled  bool
	flagThreshold int
	safeThreshold int
	logger        *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	remote ScoringStrategy,
	local ScoringStrategy,
	fraud FraudChecker,
	store AssessmentStore,
	storeEnabled bool,
	flagThreshold int,
	safeThreshold int,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		remote:        remote,
		local:         local,
		fraud:         fraud,
		store:         store,
		storeEnabled:  storeEnabled,
		flagThreshold: flagThreshold,
		safeThreshold: safeThreshold,
		logger:        logger,
	}
}

// AnalyzeEmail scores an email for phishing signals. If a remote strategy is
// configured and fails, the local heuristic engine takes over; the remote
// error is never surfaced to the caller. An unexpected panic during analysis
// is converted into a failed assessment rather than propagated.
func (s *AnalysisService) AnalyzeEmail(ctx context.Context, email *EmailMessage) (assessment *PhishingAssessment) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Email analysis panicked",
				zap.Any("panic", r),
				zap.String("sender", email.Sender))
			assessment = &PhishingAssessment{
				Score:      0,
				Indicators: []Indicator{},
				Success:    false,
				Error:      fmt.Sprintf("analysis failed: %v", r),
				AnalyzedAt: time.Now(),
			}
		}
	}()

	if s.remote != nil {
		result, err := s.remote.AnalyzeEmail(ctx, email)
		if err == nil {
			s.logger.Debug("Remote scoring succeeded",
				zap.String("strategy", s.remote.Name()),
				zap.Int("score", result.Score))
			assessment = result
		} else {
			s.logger.Warn("Remote scoring failed, falling back to local heuristics",
				zap.String("strategy", s.remote.Name()),
				zap.Error(err))
		}
	}

	if assessment == nil {
		result, err := s.local.AnalyzeEmail(ctx, email)
		if err != nil {
			// The local engine has no failure modes short of a panic,
			// but the port allows one; treat it like the panic path.
			s.logger.Error("Local analysis failed", zap.Error(err))
			return &PhishingAssessment{
				Score:      0,
				Indicators: []Indicator{},
				Success:    false,
				Error:      err.Error(),
				AnalyzedAt: time.Now(),
			}
		}
		assessment = result
	}

	if s.storeEnabled && s.store != nil {
		s.persistAssessment(ctx, email, assessment)
	}

	return assessment
}

// persistAssessment writes the assessment through to the store. Storage
// failures are logged, never propagated; the assessment is all-or-nothing
// and already complete at this point.
func (s *AnalysisService) persistAssessment(ctx context.Context, email *EmailMessage, assessment *PhishingAssessment) {
	now := time.Now()
	record := &EmailRecord{
		ID:            uuid.NewString(),
		Subject:       email.Subject,
		Sender:        email.Sender,
		Content:       email.Content,
		ReceivedAt:    now,
		AnalyzedAt:    now,
		Status:        s.statusForScore(assessment),
		PhishingScore: assessment.Score,
		Indicators:    assessment.Indicators,
	}
	if err := s.store.SaveAssessment(ctx, record); err != nil {
		s.logger.Error("Failed to store assessment",
			zap.Error(err),
			zap.String("sender", email.Sender))
	}
}

// statusForScore derives the review status for a fresh assessment
func (s *AnalysisService) statusForScore(assessment *PhishingAssessment) EmailStatus {
	switch {
	case !assessment.Success:
		return EmailStatusUnsure
	case assessment.Score >= s.flagThreshold:
		return EmailStatusFlagged
	case assessment.Score < s.safeThreshold:
		return EmailStatusLegitimate
	default:
		return EmailStatusUnsure
	}
}

// CheckFraud runs the fraud rule table against an event record and persists
// an alert when the event is fraudulent.
func (s *AnalysisService) CheckFraud(ctx context.Context, event FraudEvent) FraudAssessment {
	result := s.fraud.DetectFraud(event)

	if result.IsFraudulent && s.storeEnabled && s.store != nil {
		alert := &FraudAlertRecord{
			ID:             uuid.NewString(),
			AlertType:      "Potential fraud detected",
			Details:        fmt.Sprintf("Rules triggered: %s", strings.Join(result.TriggeredRules, ", ")),
			Severity:       result.Severity,
			Status:         AlertStatusNew,
			TriggeredRules: result.TriggeredRules,
			Timestamp:      time.Now(),
		}
		if err := s.store.SaveFraudAlert(ctx, alert); err != nil {
			s.logger.Error("Failed to store fraud alert", zap.Error(err))
		}
	}

	return result
}

// GetRules exposes the fraud rule configuration
func (s *AnalysisService) GetRules() []RuleConfig {
	return s.fraud.GetRules()
}

// UpdateRules applies enabled/threshold changes to the fraud rule table
func (s *AnalysisService) UpdateRules(configs []RuleConfig) []RuleConfig {
	updated := s.fraud.UpdateRules(configs)
	s.logger.Info("Fraud rules updated", zap.Int("rule_count", len(updated)))
	return updated
}
