package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecheck/securecheck/internal/core"
)

func TestUrgencyAnalyzer(t *testing.T) {
	tests := []struct {
		name             string
		subject          string
		content          string
		wantNil          bool
		wantSeverity     core.Severity
		wantConfidence   int
		wantContribution int
	}{
		{
			name:             "strong pressure phrase",
			content:          "Your account has been suspended pending review.",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   88,
			wantContribution: 25,
		},
		{
			name:             "medium pressure phrase",
			content:          "Please verify now to keep access.",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   78,
			wantContribution: 18,
		},
		{
			name:             "soft nudge",
			content:          "This is a friendly note, please review the attached agenda.",
			wantSeverity:     core.SeverityLow,
			wantConfidence:   60,
			wantContribution: 10,
		},
		{
			name:             "numeric deadline",
			content:          "Complete the survey within 3 days to qualify.",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   75,
			wantContribution: 16,
		},
		{
			name:             "pressure in the subject line",
			subject:          "URGENT: invoice attached",
			content:          "Hello, see below.",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   78,
			wantContribution: 18,
		},
		{
			name:             "high tier wins over lower tiers",
			content:          "Final notice: verify now, this is urgent.",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   88,
			wantContribution: 25,
		},
		{
			name:    "calm message",
			content: "See you at the meeting on Thursday.",
			wantNil: true,
		},
	}

	a := newUrgencyAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := a.Analyze(&core.EmailMessage{Subject: tt.subject, Content: tt.content})
			if tt.wantNil {
				assert.Nil(t, finding)
				return
			}
			require.NotNil(t, finding)
			assert.Equal(t, core.IndicatorUrgencyOrPressure, finding.Indicator.Type)
			assert.Equal(t, tt.wantSeverity, finding.Indicator.Severity)
			assert.Equal(t, tt.wantConfidence, finding.Indicator.Confidence)
			assert.Equal(t, tt.wantContribution, finding.Contribution)
		})
	}
}
