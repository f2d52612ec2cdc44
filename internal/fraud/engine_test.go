package fraud

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

func intRef(v int) *int { return &v }

func TestDetectFraud(t *testing.T) {
	tests := []struct {
		name          string
		event         core.FraudEvent
		wantFraud     bool
		wantSeverity  core.Severity
		wantTriggered []string
	}{
		{
			name:          "no signals",
			event:         core.FraudEvent{},
			wantFraud:     false,
			wantTriggered: []string{},
		},
		{
			name:          "failed attempts at default threshold",
			event:         core.FraudEvent{"failedAttempts": 3},
			wantFraud:     true,
			wantSeverity:  core.SeverityMedium,
			wantTriggered: []string{"multiple-attempts"},
		},
		{
			name:          "failed attempts below default threshold",
			event:         core.FraudEvent{"failedAttempts": 2},
			wantFraud:     false,
			wantTriggered: []string{},
		},
		{
			name:          "json decoded numbers are accepted",
			event:         core.FraudEvent{"failedAttempts": float64(5)},
			wantFraud:     true,
			wantSeverity:  core.SeverityMedium,
			wantTriggered: []string{"multiple-attempts"},
		},
		{
			name:          "two rules stay medium",
			event:         core.FraudEvent{"ipAnomaly": true, "unusualTiming": true},
			wantFraud:     true,
			wantSeverity:  core.SeverityMedium,
			wantTriggered: []string{"ip-anomaly", "unusual-access-timing"},
		},
		{
			name: "three rules escalate to high",
			event: core.FraudEvent{
				"failedAttempts":   4,
				"ipAnomaly":        true,
				"identityMismatch": true,
			},
			wantFraud:     true,
			wantSeverity:  core.SeverityHigh,
			wantTriggered: []string{"multiple-attempts", "ip-anomaly", "identity-mismatch"},
		},
		{
			name:          "disabled rule never triggers",
			event:         core.FraudEvent{"rapidProfileChanges": true},
			wantFraud:     false,
			wantTriggered: []string{},
		},
		{
			name:          "non-boolean signal reads as false",
			event:         core.FraudEvent{"ipAnomaly": "yes"},
			wantFraud:     false,
			wantTriggered: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(zap.NewNop())
			result := e.DetectFraud(tt.event)
			assert.Equal(t, tt.wantFraud, result.IsFraudulent)
			assert.Equal(t, tt.wantSeverity, result.Severity)
			assert.Equal(t, tt.wantTriggered, result.TriggeredRules)
		})
	}
}

func TestGetRules(t *testing.T) {
	e := NewEngine(zap.NewNop())

	rules := e.GetRules()
	require.Len(t, rules, 5)
	assert.Equal(t, "multiple-attempts", rules[0].ID)
	require.NotNil(t, rules[0].Threshold)
	assert.Equal(t, 3, *rules[0].Threshold)

	// Mutating the returned config must not touch the engine's table
	*rules[0].Threshold = 99
	rules[0].Enabled = false
	fresh := e.GetRules()
	assert.Equal(t, 3, *fresh[0].Threshold)
	assert.True(t, fresh[0].Enabled)
}

func TestUpdateRules(t *testing.T) {
	t.Run("raising a threshold", func(t *testing.T) {
		e := NewEngine(zap.NewNop())
		updated := e.UpdateRules([]core.RuleConfig{
			{ID: "multiple-attempts", Enabled: true, Threshold: intRef(10)},
		})
		require.Len(t, updated, 5)
		assert.Equal(t, 10, *updated[0].Threshold)

		result := e.DetectFraud(core.FraudEvent{"failedAttempts": 5})
		assert.False(t, result.IsFraudulent)

		result = e.DetectFraud(core.FraudEvent{"failedAttempts": 12})
		assert.True(t, result.IsFraudulent)
	})

	t.Run("disabling a rule", func(t *testing.T) {
		e := NewEngine(zap.NewNop())
		e.UpdateRules([]core.RuleConfig{
			{ID: "ip-anomaly", Enabled: false},
		})
		result := e.DetectFraud(core.FraudEvent{"ipAnomaly": true})
		assert.False(t, result.IsFraudulent)
	})

	t.Run("enabling a disabled rule", func(t *testing.T) {
		e := NewEngine(zap.NewNop())
		e.UpdateRules([]core.RuleConfig{
			{ID: "rapid-profile-changes", Enabled: true},
		})
		result := e.DetectFraud(core.FraudEvent{"rapidProfileChanges": true})
		assert.True(t, result.IsFraudulent)
		assert.Equal(t, []string{"rapid-profile-changes"}, result.TriggeredRules)
	})

	t.Run("unknown rule ids are ignored", func(t *testing.T) {
		e := NewEngine(zap.NewNop())
		before := e.GetRules()
		updated := e.UpdateRules([]core.RuleConfig{
			{ID: "made-up-rule", Enabled: true, Threshold: intRef(1)},
		})
		assert.Equal(t, before, updated)
		assert.Len(t, e.GetRules(), 5)
	})

	t.Run("nil threshold keeps the existing one", func(t *testing.T) {
		e := NewEngine(zap.NewNop())
		updated := e.UpdateRules([]core.RuleConfig{
			{ID: "multiple-attempts", Enabled: true},
		})
		require.NotNil(t, updated[0].Threshold)
		assert.Equal(t, 3, *updated[0].Threshold)
	})
}

func TestConcurrentDetectAndUpdate(t *testing.T) {
	e := NewEngine(zap.NewNop())

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Writers flip the multiple-attempts threshold between two values
	// that put failedAttempts=10 on opposite sides of the rule.
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thresholds := []int{3, 100}
			for n := 0; ; n++ {
				select {
				case <-stop:
					return
				default:
				}
				e.UpdateRules([]core.RuleConfig{
					{ID: "multiple-attempts", Enabled: true, Threshold: intRef(thresholds[n%2])},
				})
			}
		}()
	}

	// Readers must always see one of the two complete rule states,
	// never a partial update.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 500; n++ {
				result := e.DetectFraud(core.FraudEvent{"failedAttempts": 10})
				if result.IsFraudulent {
					if result.Severity != core.SeverityMedium {
						t.Errorf("got severity %q for a single triggered rule", result.Severity)
					}
					if len(result.TriggeredRules) != 1 || result.TriggeredRules[0] != "multiple-attempts" {
						t.Errorf("got triggered rules %v, want [multiple-attempts]", result.TriggeredRules)
					}
				} else if len(result.TriggeredRules) != 0 {
					t.Errorf("got triggered rules %v for a clean result", result.TriggeredRules)
				}
				_ = e.GetRules()
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()
}
