package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecheck/securecheck/internal/core"
)

func TestLanguageAnalyzer(t *testing.T) {
	a := newLanguageAnalyzer()

	t.Run("heavy anomalies", func(t *testing.T) {
		email := &core.EmailMessage{
			Content: "Dear customer, pasword verifcation is needed!!! Your acount was suspicius. Act fast. Do it. Click here.",
		}
		finding := a.Analyze(email)
		require.NotNil(t, finding)
		assert.Equal(t, core.IndicatorGrammarErrors, finding.Indicator.Type)
		assert.Equal(t, core.SeverityMedium, finding.Indicator.Severity)
		assert.Equal(t, 80, finding.Indicator.Confidence)
		assert.Equal(t, 18, finding.Contribution)
	})

	t.Run("mild anomalies", func(t *testing.T) {
		email := &core.EmailMessage{
			Content: "Dear user, you will recieve the package details sometime next week okay.",
		}
		finding := a.Analyze(email)
		require.NotNil(t, finding)
		assert.Equal(t, core.SeverityLow, finding.Indicator.Severity)
		assert.Equal(t, 65, finding.Indicator.Confidence)
		assert.Equal(t, 10, finding.Contribution)
	})

	t.Run("clean prose", func(t *testing.T) {
		email := &core.EmailMessage{
			Content: "Hello Maria, here are the notes from our meeting on Thursday afternoon. They cover the budget discussion.",
		}
		assert.Nil(t, a.Analyze(email))
	})

	t.Run("short bodies are skipped", func(t *testing.T) {
		email := &core.EmailMessage{
			Content: "Dear customer, pasword verifcation needed!!!",
		}
		assert.Nil(t, a.Analyze(email))
	})

	t.Run("empty body is skipped", func(t *testing.T) {
		assert.Nil(t, a.Analyze(&core.EmailMessage{Content: ""}))
	})
}
