package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

const (
	assessmentKeyPrefix = "securecheck:assessment:"
	alertKeyPrefix      = "securecheck:alert:"
	assessmentIndexKey  = "securecheck:assessments"
	alertIndexKey       = "securecheck:alerts"

	// Index lists are trimmed so they cannot grow unbounded; expired
	// entries are skipped on read.
	indexMaxLen = 10000
)

// RedisStore is a Redis implementation of the AssessmentStore port.
// Records are JSON values with a TTL; recency ordering comes from a
// trimmed index list per record kind.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
	logger    *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(addr string, logger *zap.Logger, retention time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{
		client:    client,
		retention: retention,
		logger:    logger,
	}, nil
}

// SaveAssessment stores an analyzed email record
func (s *RedisStore) SaveAssessment(ctx context.Context, record *core.EmailRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, assessmentKeyPrefix+record.ID, data, s.retention)
	pipe.LPush(ctx, assessmentIndexKey, record.ID)
	pipe.LTrim(ctx, assessmentIndexKey, 0, indexMaxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store assessment: %w", err)
	}
	return nil
}

// GetAssessment retrieves a stored record by id
func (s *RedisStore) GetAssessment(ctx context.Context, id string) (*core.EmailRecord, error) {
	data, err := s.client.Get(ctx, assessmentKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment: %w", err)
	}

	var record core.EmailRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	return &record, nil
}

// ListAssessments returns up to limit records, most recent first
func (s *RedisStore) ListAssessments(ctx context.Context, limit int) ([]*core.EmailRecord, error) {
	ids, err := s.client.LRange(ctx, assessmentIndexKey, 0, int64(indexMaxLen-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment index: %w", err)
	}

	records := make([]*core.EmailRecord, 0, limit)
	for _, id := range ids {
		if limit > 0 && len(records) >= limit {
			break
		}
		record, err := s.GetAssessment(ctx, id)
		if err == ErrNotFound {
			// Expired behind the index entry
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// UpdateAssessmentStatus moves a stored record through its review lifecycle
func (s *RedisStore) UpdateAssessmentStatus(ctx context.Context, id string, status core.EmailStatus) error {
	record, err := s.GetAssessment(ctx, id)
	if err != nil {
		return err
	}
	record.Status = status

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}
	if err := s.client.Set(ctx, assessmentKeyPrefix+id, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update assessment: %w", err)
	}
	return nil
}

// SaveFraudAlert stores a fraud alert record
func (s *RedisStore) SaveFraudAlert(ctx context.Context, alert *core.FraudAlertRecord) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode fraud alert: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, alertKeyPrefix+alert.ID, data, s.retention)
	pipe.LPush(ctx, alertIndexKey, alert.ID)
	pipe.LTrim(ctx, alertIndexKey, 0, indexMaxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store fraud alert: %w", err)
	}
	return nil
}

// ListFraudAlerts returns up to limit alerts, most recent first
func (s *RedisStore) ListFraudAlerts(ctx context.Context, limit int) ([]*core.FraudAlertRecord, error) {
	ids, err := s.client.LRange(ctx, alertIndexKey, 0, int64(indexMaxLen-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read alert index: %w", err)
	}

	alerts := make([]*core.FraudAlertRecord, 0, limit)
	for _, id := range ids {
		if limit > 0 && len(alerts) >= limit {
			break
		}
		data, err := s.client.Get(ctx, alertKeyPrefix+id).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read fraud alert: %w", err)
		}
		var alert core.FraudAlertRecord
		if err := json.Unmarshal(data, &alert); err != nil {
			return nil, fmt.Errorf("failed to decode fraud alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}
	return alerts, nil
}

// UpdateAlertStatus moves a stored alert through its review lifecycle
func (s *RedisStore) UpdateAlertStatus(ctx context.Context, id string, status core.AlertStatus) error {
	data, err := s.client.Get(ctx, alertKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read fraud alert: %w", err)
	}

	var alert core.FraudAlertRecord
	if err := json.Unmarshal(data, &alert); err != nil {
		return fmt.Errorf("failed to decode fraud alert: %w", err)
	}
	alert.Status = status

	updated, err := json.Marshal(&alert)
	if err != nil {
		return fmt.Errorf("failed to encode fraud alert: %w", err)
	}
	if err := s.client.Set(ctx, alertKeyPrefix+id, updated, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update fraud alert: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires records through key TTLs
func (s *RedisStore) Cleanup(_ context.Context) error {
	return nil
}

// Stop closes the Redis connection
func (s *RedisStore) Stop() {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis client", zap.Error(err))
	}
}
