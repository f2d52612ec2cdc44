package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

// MySQLStore is a MySQL implementation of the AssessmentStore port
type MySQLStore struct {
	db          *sql.DB
	retention   time.Duration
	cleanupFreq time.Duration
	logger      *zap.Logger
	stopCh      chan struct{}
}

// NewMySQLStore connects to MySQL and initializes the schema
func NewMySQLStore(dsn string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS email_assessments (
			id VARCHAR(36) PRIMARY KEY,
			subject TEXT,
			sender VARCHAR(255),
			recipient VARCHAR(255),
			content MEDIUMTEXT,
			received_at VARCHAR(35),
			analyzed_at VARCHAR(35),
			status VARCHAR(20),
			phishing_score INT,
			indicators JSON,
			expires_at VARCHAR(35),
			INDEX idx_assessments_received (received_at),
			INDEX idx_assessments_expires (expires_at)
		)`,
		`CREATE TABLE IF NOT EXISTS fraud_alerts (
			id VARCHAR(36) PRIMARY KEY,
			alert_type VARCHAR(255),
			details TEXT,
			severity VARCHAR(10),
			status VARCHAR(20),
			triggered_rules JSON,
			created_at VARCHAR(35),
			expires_at VARCHAR(35),
			INDEX idx_alerts_expires (expires_at)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	s := &MySQLStore{
		db:          db,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}

	go s.startCleanupTask()

	return s, nil
}

// SaveAssessment stores an analyzed email record
func (s *MySQLStore) SaveAssessment(ctx context.Context, record *core.EmailRecord) error {
	indicators, err := json.Marshal(record.Indicators)
	if err != nil {
		return fmt.Errorf("failed to encode indicators: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO email_assessments
		(id, subject, sender, recipient, content, received_at, analyzed_at, status, phishing_score, indicators, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Subject, record.Sender, record.Recipient, record.Content,
		record.ReceivedAt.Format(time.RFC3339), record.AnalyzedAt.Format(time.RFC3339),
		string(record.Status), record.PhishingScore, string(indicators),
		time.Now().Add(s.retention).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves a stored record by id
func (s *MySQLStore) GetAssessment(ctx context.Context, id string) (*core.EmailRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, subject, sender, recipient, content, received_at, analyzed_at, status, phishing_score, indicators
		FROM email_assessments
		WHERE id = ?
	`, id)

	record, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return record, err
}

// ListAssessments returns up to limit records, most recent first
func (s *MySQLStore) ListAssessments(ctx context.Context, limit int) ([]*core.EmailRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, sender, recipient, content, received_at, analyzed_at, status, phishing_score, indicators
		FROM email_assessments
		ORDER BY received_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	records := make([]*core.EmailRecord, 0, limit)
	for rows.Next() {
		record, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateAssessmentStatus moves a stored record through its review lifecycle
func (s *MySQLStore) UpdateAssessmentStatus(ctx context.Context, id string, status core.EmailStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE email_assessments SET status = ? WHERE id = ?
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return requireRowAffected(result)
}

// SaveFraudAlert stores a fraud alert record
func (s *MySQLStore) SaveFraudAlert(ctx context.Context, alert *core.FraudAlertRecord) error {
	rules, err := json.Marshal(alert.TriggeredRules)
	if err != nil {
		return fmt.Errorf("failed to encode triggered rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		REPLACE INTO fraud_alerts
		(id, alert_type, details, severity, status, triggered_rules, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, alert.ID, alert.AlertType, alert.Details, string(alert.Severity), string(alert.Status),
		string(rules), alert.Timestamp.Format(time.RFC3339),
		time.Now().Add(s.retention).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert fraud alert: %w", err)
	}
	return nil
}

// ListFraudAlerts returns up to limit alerts, most recent first
func (s *MySQLStore) ListFraudAlerts(ctx context.Context, limit int) ([]*core.FraudAlertRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, alert_type, details, severity, status, triggered_rules, created_at
		FROM fraud_alerts
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fraud alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*core.FraudAlertRecord, 0, limit)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// UpdateAlertStatus moves a stored alert through its review lifecycle
func (s *MySQLStore) UpdateAlertStatus(ctx context.Context, id string, status core.AlertStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE fraud_alerts SET status = ? WHERE id = ?
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	return requireRowAffected(result)
}

// Cleanup removes expired records
func (s *MySQLStore) Cleanup(ctx context.Context) error {
	now := time.Now().Format(time.RFC3339)
	for _, table := range []string{"email_assessments", "fraud_alerts"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE expires_at <= ?`, now); err != nil {
			return fmt.Errorf("failed to clean up %s: %w", table, err)
		}
	}
	return nil
}

// startCleanupTask sweeps expired records in the background
func (s *MySQLStore) startCleanupTask() {
	ticker := time.NewTicker(s.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up store", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the cleanup task and closes the connection pool
func (s *MySQLStore) Stop() {
	close(s.stopCh)
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL connection", zap.Error(err))
	}
}
