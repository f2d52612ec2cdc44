package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

var (
	// ErrNotFound is returned when a record is not in the store
	ErrNotFound = errors.New("record not found")
)

// MemoryStore is an in-memory implementation of the AssessmentStore port.
// Records expire after the configured retention and are swept by a
// background task.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[string]*core.EmailRecord
	alerts      map[string]*core.FraudAlertRecord
	expiries    map[string]time.Time
	retention   time.Duration
	cleanupFreq time.Duration
	logger      *zap.Logger
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger, retention, cleanupFreq time.Duration) *MemoryStore {
	s := &MemoryStore{
		assessments: make(map[string]*core.EmailRecord),
		alerts:      make(map[string]*core.FraudAlertRecord),
		expiries:    make(map[string]time.Time),
		retention:   retention,
		cleanupFreq: cleanupFreq,
		logger:      logger,
		stopCh:      make(chan struct{}),
	}

	go s.startCleanupTask()

	return s
}

// SaveAssessment stores an analyzed email record
func (s *MemoryStore) SaveAssessment(_ context.Context, record *core.EmailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assessments[record.ID] = record
	s.expiries[record.ID] = time.Now().Add(s.retention)
	return nil
}

// GetAssessment retrieves a stored record by id
func (s *MemoryStore) GetAssessment(_ context.Context, id string) (*core.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// ListAssessments returns up to limit records, most recent first
func (s *MemoryStore) ListAssessments(_ context.Context, limit int) ([]*core.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*core.EmailRecord, 0, len(s.assessments))
	for _, record := range s.assessments {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ReceivedAt.After(records[j].ReceivedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// UpdateAssessmentStatus moves a stored record through its review lifecycle
func (s *MemoryStore) UpdateAssessmentStatus(_ context.Context, id string, status core.EmailStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.assessments[id]
	if !ok {
		return ErrNotFound
	}
	record.Status = status
	return nil
}

// SaveFraudAlert stores a fraud alert record
func (s *MemoryStore) SaveFraudAlert(_ context.Context, alert *core.FraudAlertRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts[alert.ID] = alert
	s.expiries[alert.ID] = time.Now().Add(s.retention)
	return nil
}

// ListFraudAlerts returns up to limit alerts, most recent first
func (s *MemoryStore) ListFraudAlerts(_ context.Context, limit int) ([]*core.FraudAlertRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]*core.FraudAlertRecord, 0, len(s.alerts))
	for _, alert := range s.alerts {
		alerts = append(alerts, alert)
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

// UpdateAlertStatus moves a stored alert through its review lifecycle
func (s *MemoryStore) UpdateAlertStatus(_ context.Context, id string, status core.AlertStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[id]
	if !ok {
		return ErrNotFound
	}
	alert.Status = status
	return nil
}

// Cleanup removes expired records
func (s *MemoryStore) Cleanup(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expiredCount := 0
	for id, expiry := range s.expiries {
		if now.After(expiry) {
			delete(s.assessments, id)
			delete(s.alerts, id)
			delete(s.expiries, id)
			expiredCount++
		}
	}

	s.logger.Debug("Cleaned up expired records", zap.Int("expired_count", expiredCount))
	return nil
}

// startCleanupTask sweeps expired records in the background
func (s *MemoryStore) startCleanupTask() {
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

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}
