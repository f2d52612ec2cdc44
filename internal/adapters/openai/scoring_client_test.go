package openai

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/utils"
)

func TestBuildRequest(t *testing.T) {
	logger := zap.NewNop()
	client := NewScoringClient(nil, "gpt-4o-mini", 512, 0.1, 0.9, 16384, logger, utils.NewTextProcessor(logger))

	req := client.buildRequest(&core.EmailMessage{
		Sender:  "billing@example.com",
		Subject: "Invoice attached",
		Content: "Please find the invoice attached.",
	})

	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, 512, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "billing@example.com")
	assert.Contains(t, req.Messages[1].Content, "Invoice attached")

	// The API only accepts the typed response format values
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
}

func TestParseRemoteAssessment(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		parsed, err := parseRemoteAssessment(`{"score": 85, "indicators": [{"type": "Suspicious Link", "description": "shortened URL", "severity": "high", "confidence": 90}]}`)
		require.NoError(t, err)
		assert.Equal(t, 85, parsed.Score)
		require.Len(t, parsed.Indicators, 1)
		assert.Equal(t, "Suspicious Link", parsed.Indicators[0].Type)
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		parsed, err := parseRemoteAssessment("Here is the analysis:\n```\n{\"score\": 40, \"indicators\": []}\n```\nLet me know if you need more.")
		require.NoError(t, err)
		assert.Equal(t, 40, parsed.Score)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := parseRemoteAssessment("I cannot analyze this email.")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := parseRemoteAssessment(`{"score": "not a number"}`)
		assert.Error(t, err)
	})
}

func TestMapIndicators(t *testing.T) {
	remote := []remoteIndicator{
		{Type: "Suspicious Link", Description: "bit.ly link", Severity: "HIGH", Confidence: 90},
		{Type: "Something Made Up", Description: "ignored", Severity: "high", Confidence: 50},
		{Type: "Grammar Errors", Description: "odd casing", Severity: "severe", Confidence: 150},
	}

	indicators := mapIndicators(remote)
	require.Len(t, indicators, 2)

	assert.Equal(t, core.IndicatorSuspiciousLink, indicators[0].Type)
	assert.Equal(t, core.SeverityHigh, indicators[0].Severity)

	// Unknown severities fall back to medium, confidence is clamped
	assert.Equal(t, core.IndicatorGrammarErrors, indicators[1].Type)
	assert.Equal(t, core.SeverityMedium, indicators[1].Severity)
	assert.Equal(t, 100, indicators[1].Confidence)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 0, clampScore(0))
	assert.Equal(t, 55, clampScore(55))
	assert.Equal(t, 100, clampScore(100))
	assert.Equal(t, 100, clampScore(250))
}
