package heuristic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

func TestEngineName(t *testing.T) {
	e := NewEngine(zap.NewNop())
	assert.Equal(t, "local-heuristic", e.Name())
}

func TestEngineCleanEmailScoresLowWithoutIndicators(t *testing.T) {
	email := &core.EmailMessage{
		Sender:  "colleague@example.com",
		Subject: "Meeting notes",
		Content: "Hello Maria, here are the notes from our meeting on Thursday afternoon. They cover the budget discussion.",
	}

	for seed := int64(0); seed < 20; seed++ {
		e := NewEngineWithSeed(zap.NewNop(), seed)
		assessment, err := e.AnalyzeEmail(context.Background(), email)
		require.NoError(t, err)
		assert.True(t, assessment.Success)
		assert.Empty(t, assessment.Indicators)
		assert.GreaterOrEqual(t, assessment.Score, 1)
		assert.LessOrEqual(t, assessment.Score, 15)
		assert.Equal(t, "local-heuristic", assessment.StrategyUsed)
	}
}

func TestEngineCrossIndicatorBonuses(t *testing.T) {
	e := NewEngine(zap.NewNop())
	email := &core.EmailMessage{
		Sender:  "security@example.com",
		Subject: "Action needed",
		Content: "Your account will be suspended in 24 hours. Please verify your account by entering your password.",
	}

	assessment, err := e.AnalyzeEmail(context.Background(), email)
	require.NoError(t, err)
	require.Len(t, assessment.Indicators, 2)

	// Urgency (25) and sensitive-info (28) contributions, plus the
	// two-high-severity bonus (10) and the urgency+sensitive bonus (15).
	assert.Equal(t, 78, assessment.Score)
	assert.Equal(t, core.IndicatorUrgencyOrPressure, assessment.Indicators[0].Type)
	assert.Equal(t, core.IndicatorSensitiveInfoRequest, assessment.Indicators[1].Type)
}

func TestEngineScoreIsClampedAtHundred(t *testing.T) {
	e := NewEngine(zap.NewNop())
	email := &core.EmailMessage{
		Sender:  "security@paypal-alerts.example",
		Subject: "Immediate action required",
		Content: "Your account has been suspended. Open http://203.0.113.9/restore and enter your credit card. " +
			"Your Apple ID is locked, open invoice.exe now.",
	}

	assessment, err := e.AnalyzeEmail(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, 100, assessment.Score)
	assert.GreaterOrEqual(t, len(assessment.Indicators), 5)
}

func TestEngineIsDeterministicWhenIndicatorsFire(t *testing.T) {
	e := NewEngine(zap.NewNop())
	email := &core.EmailMessage{
		Sender:  "security@example.com",
		Content: "Your account will be suspended in 24 hours. Please verify your account by entering your password.",
	}

	first, err := e.AnalyzeEmail(context.Background(), email)
	require.NoError(t, err)
	second, err := e.AnalyzeEmail(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Indicators, second.Indicators)
}

func TestEngineIndicatorsFollowAnalyzerOrder(t *testing.T) {
	e := NewEngine(zap.NewNop())
	email := &core.EmailMessage{
		Sender:  "service@paypa1.com",
		Subject: "Final notice",
		Content: "Open https://bit.ly/3xYzAb and verify your account.",
	}

	assessment, err := e.AnalyzeEmail(context.Background(), email)
	require.NoError(t, err)
	require.Len(t, assessment.Indicators, 4)
	assert.Equal(t, core.IndicatorSpoofedDomain, assessment.Indicators[0].Type)
	assert.Equal(t, core.IndicatorSuspiciousLink, assessment.Indicators[1].Type)
	assert.Equal(t, core.IndicatorUrgencyOrPressure, assessment.Indicators[2].Type)
	assert.Equal(t, core.IndicatorSensitiveInfoRequest, assessment.Indicators[3].Type)
}
