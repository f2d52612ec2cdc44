package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecheck/securecheck/internal/core"
)

func TestSensitiveInfoAnalyzer(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		wantNil          bool
		wantSeverity     core.Severity
		wantConfidence   int
		wantContribution int
	}{
		{
			name:             "asks for card details",
			content:          "Please provide your credit card and billing address.",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   95,
			wantContribution: 35,
		},
		{
			name:             "asks for government identifiers",
			content:          "We need your social security number on record.",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   95,
			wantContribution: 35,
		},
		{
			name:             "account verification pitch",
			content:          "You need to verify your account before tomorrow.",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   88,
			wantContribution: 28,
		},
		{
			name:             "login through a provided link",
			content:          "Sign in to your account by clicking the button below.",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   85,
			wantContribution: 26,
		},
		{
			name:             "form asking for personal details",
			content:          "Fill out the attached form with your contact details.",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   75,
			wantContribution: 20,
		},
		{
			name:    "ordinary request",
			content: "Could you send over the meeting notes when you get a chance?",
			wantNil: true,
		},
	}

	a := newSensitiveInfoAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := a.Analyze(&core.EmailMessage{Content: tt.content})
			if tt.wantNil {
				assert.Nil(t, finding)
				return
			}
			require.NotNil(t, finding)
			assert.Equal(t, core.IndicatorSensitiveInfoRequest, finding.Indicator.Type)
			assert.Equal(t, tt.wantSeverity, finding.Indicator.Severity)
			assert.Equal(t, tt.wantConfidence, finding.Indicator.Confidence)
			assert.Equal(t, tt.wantContribution, finding.Contribution)
		})
	}
}
