package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecheck/securecheck/internal/core"
)

func TestDomainAnalyzer(t *testing.T) {
	tests := []struct {
		name             string
		sender           string
		wantNil          bool
		wantSeverity     core.Severity
		wantConfidence   int
		wantContribution int
	}{
		{
			name:             "hyphenated brand domain",
			sender:           "alerts@bankofamerica-secure.com",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   87,
			wantContribution: 32,
		},
		{
			name:             "brand buried in unrelated domain",
			sender:           "support@paypal.com.evil.net",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   90,
			wantContribution: 35,
		},
		{
			name:             "digit typosquat",
			sender:           "service@paypa1.com",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   93,
			wantContribution: 38,
		},
		{
			name:             "one character off",
			sender:           "billing@amazn.com",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   89,
			wantContribution: 34,
		},
		{
			name:             "homoglyph sequence",
			sender:           "team@rnicrosoft.com",
			wantSeverity:     core.SeverityHigh,
			wantConfidence:   86,
			wantContribution: 33,
		},
		{
			name:             "throwaway TLD",
			sender:           "deals@speedy-offers.xyz",
			wantSeverity:     core.SeverityMedium,
			wantConfidence:   75,
			wantContribution: 25,
		},
		{
			name:    "official brand domain",
			sender:  "service@paypal.com",
			wantNil: true,
		},
		{
			name:    "official brand subdomain",
			sender:  "noreply@mail.paypal.com",
			wantNil: true,
		},
		{
			name:    "ordinary domain",
			sender:  "colleague@example.com",
			wantNil: true,
		},
		{
			name:    "address without domain",
			sender:  "not-an-address",
			wantNil: true,
		},
		{
			name:    "empty sender",
			sender:  "",
			wantNil: true,
		},
	}

	a := newDomainAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := a.Analyze(&core.EmailMessage{Sender: tt.sender})
			if tt.wantNil {
				assert.Nil(t, finding)
				return
			}
			require.NotNil(t, finding)
			assert.Equal(t, core.IndicatorSpoofedDomain, finding.Indicator.Type)
			assert.Equal(t, tt.wantSeverity, finding.Indicator.Severity)
			assert.Equal(t, tt.wantConfidence, finding.Indicator.Confidence)
			assert.Equal(t, tt.wantContribution, finding.Contribution)
		})
	}
}
