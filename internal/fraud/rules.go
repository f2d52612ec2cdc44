package fraud

import (
	"github.com/securecheck/securecheck/internal/core"
)

// predicate decides whether a rule triggers for an event. Threshold-aware
// rules receive the rule's current threshold; the others ignore it.
type predicate func(event core.FraudEvent, threshold *int) bool

// rule is an entry in the engine's table. The predicate is bound at
// construction and never replaced by caller input.
type rule struct {
	id          string
	name        string
	description string
	enabled     bool
	threshold   *int
	check       predicate
}

func intPtr(v int) *int { return &v }

// builtinRules returns a fresh copy of the standard rule table. The fields
// each predicate reads are externally computed signals on the event record,
// not derived here.
func builtinRules() []*rule {
	return []*rule{
		{
			id:          "multiple-attempts",
			name:        "Multiple Failed Attempts",
			description: "Repeated failed authentication attempts in a single session",
			enabled:     true,
			threshold:   intPtr(3),
			check: func(event core.FraudEvent, threshold *int) bool {
				limit := 3
				if threshold != nil {
					limit = *threshold
				}
				return intField(event, "failedAttempts") >= limit
			},
		},
		{
			id:          "ip-anomaly",
			name:        "IP Address Anomaly",
			description: "Access from an IP address inconsistent with the account's history",
			enabled:     true,
			check: func(event core.FraudEvent, _ *int) bool {
				return boolField(event, "ipAnomaly")
			},
		},
		{
			id:          "unusual-access-timing",
			name:        "Unusual Access Timing",
			description: "Activity at hours far outside the account's normal pattern",
			enabled:     true,
			check: func(event core.FraudEvent, _ *int) bool {
				return boolField(event, "unusualTiming")
			},
		},
		{
			id:          "identity-mismatch",
			name:        "Identity Mismatch",
			description: "Presented identity details conflict with the account on record",
			enabled:     true,
			check: func(event core.FraudEvent, _ *int) bool {
				return boolField(event, "identityMismatch")
			},
		},
		{
			id:          "rapid-profile-changes",
			name:        "Rapid Profile Changes",
			description: "Multiple profile fields changed in quick succession",
			enabled:     false,
			check: func(event core.FraudEvent, _ *int) bool {
				return boolField(event, "rapidProfileChanges")
			},
		},
	}
}

// intField reads a numeric field from the open event record. Missing or
// non-numeric fields read as zero.
func intField(event core.FraudEvent, key string) int {
	switch v := event[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// boolField reads a boolean field; anything but an explicit true is false
func boolField(event core.FraudEvent, key string) bool {
	v, _ := event[key].(bool)
	return v
}
