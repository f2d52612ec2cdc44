package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/utils"
)

// ScoringClient is the remote implementation of the ScoringStrategy port.
// Any failure here is returned to the service, which falls back to the
// local heuristic engine; this client never needs to degrade gracefully
// itself.
type ScoringClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// remoteAssessment is the structured response requested from the model
type remoteAssessment struct {
	Score      int               `json:"score"`
	Indicators []remoteIndicator `json:"indicators"`
}

type remoteIndicator struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Confidence  int    `json:"confidence"`
}

// NewScoringClient creates a new remote scoring client
func NewScoringClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *ScoringClient {
	return &ScoringClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `You are a phishing detection system. Analyze the following email and respond with a JSON object containing:
- score: integer between 0 and 100 (higher means more likely phishing)
- indicators: array of objects, each with:
  - type: one of "Suspicious Link", "Spoofed Domain", "Request for Sensitive Information", "Suspicious Attachment", "Impersonation Attempt", "Urgency or Pressure", "Grammar Errors", "Mismatched URLs"
  - description: brief explanation of the specific trigger
  - severity: one of "low", "medium", "high"
  - confidence: integer between 0 and 100

Email:
From: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`,
	}
}

// Name identifies the strategy in logs and stored records
func (c *ScoringClient) Name() string {
	return "openai-remote"
}

// AnalyzeEmail asks the remote model for a structured phishing assessment
func (c *ScoringClient) AnalyzeEmail(ctx context.Context, email *core.EmailMessage) (*core.PhishingAssessment, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(email))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from remote scorer")
	}

	parsed, err := parseRemoteAssessment(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &core.PhishingAssessment{
		Score:        clampScore(parsed.Score),
		Indicators:   mapIndicators(parsed.Indicators),
		Success:      true,
		AnalyzedAt:   time.Now(),
		StrategyUsed: c.Name(),
	}, nil
}

// buildRequest assembles the chat completion request for one email.
// The response format must be one of the typed constants; the API
// rejects anything else.
func (c *ScoringClient) buildRequest(email *core.EmailMessage) openai.ChatCompletionRequest {
	body := c.textProcessor.ProcessText(email.Content, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.Sender, email.Subject, body)

	return openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a phishing detection system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// parseRemoteAssessment decodes the model's JSON, tolerating stray text
// around the object
func parseRemoteAssessment(text string) (*remoteAssessment, error) {
	var parsed remoteAssessment
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return &parsed, nil
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("failed to extract JSON from remote response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse remote response as JSON: %w", err)
	}
	return &parsed, nil
}

// mapIndicators validates the remote indicator list against the known
// categories and severity tiers
func mapIndicators(remote []remoteIndicator) []core.Indicator {
	known := map[string]core.IndicatorType{
		string(core.IndicatorSuspiciousLink):       core.IndicatorSuspiciousLink,
		string(core.IndicatorSpoofedDomain):        core.IndicatorSpoofedDomain,
		string(core.IndicatorSensitiveInfoRequest): core.IndicatorSensitiveInfoRequest,
		string(core.IndicatorSuspiciousAttachment): core.IndicatorSuspiciousAttachment,
		string(core.IndicatorImpersonationAttempt): core.IndicatorImpersonationAttempt,
		string(core.IndicatorUrgencyOrPressure):    core.IndicatorUrgencyOrPressure,
		string(core.IndicatorGrammarErrors):        core.IndicatorGrammarErrors,
		string(core.IndicatorMismatchedURLs):       core.IndicatorMismatchedURLs,
	}

	indicators := make([]core.Indicator, 0, len(remote))
	for _, r := range remote {
		kind, ok := known[r.Type]
		if !ok {
			continue
		}
		severity := core.Severity(strings.ToLower(r.Severity))
		switch severity {
		case core.SeverityLow, core.SeverityMedium, core.SeverityHigh:
		default:
			severity = core.SeverityMedium
		}
		indicators = append(indicators, core.Indicator{
			Type:        kind,
			Description: r.Description,
			Severity:    severity,
			Confidence:  clampScore(r.Confidence),
		})
	}
	return indicators
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
