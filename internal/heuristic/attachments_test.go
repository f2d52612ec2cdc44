package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecheck/securecheck/internal/core"
)

func TestAttachmentAnalyzer(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		wantNil          bool
		wantSeverity     core.Severity
		wantConfidence   int
		wantContribution int
	}{
		{
			name:             "executable reference",
			content:          "Your statement is in invoice.exe",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   92,
			wantContribution: 32,
		},
		{
			name:             "script reference",
			content:          "Run the included update.vbs to apply the fix",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   92,
			wantContribution: 32,
		},
		{
			name:             "archive reference",
			content:          "The documents are in records.zip",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   82,
			wantContribution: 24,
		},
		{
			name:             "macro document reference",
			content:          "Review the figures in budget.xlsm before the call",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   82,
			wantContribution: 24,
		},
		{
			name:             "crack tool bait",
			content:          "Get the keygen for the premium version here",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   88,
			wantContribution: 30,
		},
		{
			name:             "coercion to open a file",
			content:          "You must open the attached file right away to avoid fees",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   85,
			wantContribution: 26,
		},
		{
			name:    "harmless mention of a document",
			content: "The slides from the talk are in the shared drive.",
			wantNil: true,
		},
		{
			name:    "file mention without pressure",
			content: "I attached the photos from the weekend trip for you.",
			wantNil: true,
		},
	}

	a := newAttachmentAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := a.Analyze(&core.EmailMessage{Content: tt.content})
			if tt.wantNil {
				assert.Nil(t, finding)
				return
			}
			require.NotNil(t, finding)
			assert.Equal(t, core.IndicatorSuspiciousAttachment, finding.Indicator.Type)
			assert.Equal(t, tt.wantSeverity, finding.Indicator.Severity)
			assert.Equal(t, tt.wantConfidence, finding.Indicator.Confidence)
			assert.Equal(t, tt.wantContribution, finding.Contribution)
		})
	}
}
