package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/securecheck/securecheck/internal/core"
)

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAssessment reads one email_assessments row
func scanAssessment(row rowScanner) (*core.EmailRecord, error) {
	var record core.EmailRecord
	var receivedAt, analyzedAt, status, indicators string

	err := row.Scan(&record.ID, &record.Subject, &record.Sender, &record.Recipient,
		&record.Content, &receivedAt, &analyzedAt, &status, &record.PhishingScore, &indicators)
	if err != nil {
		return nil, err
	}

	if record.ReceivedAt, err = time.Parse(time.RFC3339, receivedAt); err != nil {
		return nil, fmt.Errorf("failed to parse received_at: %w", err)
	}
	if record.AnalyzedAt, err = time.Parse(time.RFC3339, analyzedAt); err != nil {
		return nil, fmt.Errorf("failed to parse analyzed_at: %w", err)
	}
	record.Status = core.EmailStatus(status)
	if err := json.Unmarshal([]byte(indicators), &record.Indicators); err != nil {
		return nil, fmt.Errorf("failed to decode indicators: %w", err)
	}
	return &record, nil
}

// scanAlert reads one fraud_alerts row
func scanAlert(row rowScanner) (*core.FraudAlertRecord, error) {
	var alert core.FraudAlertRecord
	var severity, status, rules, createdAt string

	err := row.Scan(&alert.ID, &alert.AlertType, &alert.Details, &severity, &status, &rules, &createdAt)
	if err != nil {
		return nil, err
	}

	alert.Severity = core.Severity(severity)
	alert.Status = core.AlertStatus(status)
	if err := json.Unmarshal([]byte(rules), &alert.TriggeredRules); err != nil {
		return nil, fmt.Errorf("failed to decode triggered rules: %w", err)
	}
	if alert.Timestamp, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &alert, nil
}

// requireRowAffected converts a no-op update into ErrNotFound
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
