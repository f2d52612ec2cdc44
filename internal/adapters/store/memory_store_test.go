package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

func newTestStore(t *testing.T, retention time.Duration) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(zap.NewNop(), retention, time.Hour)
	t.Cleanup(s.Stop)
	return s
}

func emailRecord(id string, receivedAt time.Time) *core.EmailRecord {
	return &core.EmailRecord{
		ID:            id,
		Subject:       "Subject " + id,
		Sender:        "sender@example.com",
		Content:       "body",
		ReceivedAt:    receivedAt,
		AnalyzedAt:    receivedAt,
		Status:        core.EmailStatusFlagged,
		PhishingScore: 75,
	}
}

func TestMemoryStoreAssessmentRoundTrip(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()

	record := emailRecord("a1", time.Now())
	require.NoError(t, s.SaveAssessment(ctx, record))

	got, err := s.GetAssessment(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, record, got)

	_, err = s.GetAssessment(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListAssessmentsOrderAndLimit(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.SaveAssessment(ctx, emailRecord("old", base.Add(-2*time.Hour))))
	require.NoError(t, s.SaveAssessment(ctx, emailRecord("new", base)))
	require.NoError(t, s.SaveAssessment(ctx, emailRecord("mid", base.Add(-time.Hour))))

	records, err := s.ListAssessments(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)
	assert.Equal(t, "old", records[2].ID)

	limited, err := s.ListAssessments(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestMemoryStoreUpdateAssessmentStatus(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SaveAssessment(ctx, emailRecord("a1", time.Now())))
	require.NoError(t, s.UpdateAssessmentStatus(ctx, "a1", core.EmailStatusLegitimate))

	got, err := s.GetAssessment(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, core.EmailStatusLegitimate, got.Status)

	err = s.UpdateAssessmentStatus(ctx, "missing", core.EmailStatusFlagged)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreFraudAlerts(t *testing.T) {
	s := newTestStore(t, time.Hour)
	ctx := context.Background()
	base := time.Now()

	older := &core.FraudAlertRecord{
		ID:        "f1",
		AlertType: "Potential fraud detected",
		Severity:  core.SeverityMedium,
		Status:    core.AlertStatusNew,
		Timestamp: base.Add(-time.Hour),
	}
	newer := &core.FraudAlertRecord{
		ID:        "f2",
		AlertType: "Potential fraud detected",
		Severity:  core.SeverityHigh,
		Status:    core.AlertStatusNew,
		Timestamp: base,
	}
	require.NoError(t, s.SaveFraudAlert(ctx, older))
	require.NoError(t, s.SaveFraudAlert(ctx, newer))

	alerts, err := s.ListFraudAlerts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "f2", alerts[0].ID)

	require.NoError(t, s.UpdateAlertStatus(ctx, "f1", core.AlertStatusResolved))
	alerts, err = s.ListFraudAlerts(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, core.AlertStatusResolved, alerts[1].Status)

	err = s.UpdateAlertStatus(ctx, "missing", core.AlertStatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCleanupRemovesExpiredRecords(t *testing.T) {
	s := newTestStore(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.SaveAssessment(ctx, emailRecord("a1", time.Now())))
	require.NoError(t, s.SaveFraudAlert(ctx, &core.FraudAlertRecord{ID: "f1", Timestamp: time.Now()}))

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Cleanup(ctx))

	_, err := s.GetAssessment(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	alerts, err := s.ListFraudAlerts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestMemoryStoreStopIsIdempotent(t *testing.T) {
	s := NewMemoryStore(zap.NewNop(), time.Hour, time.Hour)
	s.Stop()
	s.Stop()
}
