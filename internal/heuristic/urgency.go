package heuristic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

// Pressure phrases by tier. Tiers are checked high to medium to low and the
// first tier with a match wins, regardless of which phrase would score more.
var (
	highUrgencyPhrases = []string{
		"account suspended",
		"account will be suspended",
		"account has been suspended",
		"unauthorized access",
		"unusual activity detected",
		"within 24 hours",
		"immediate action required",
		"final notice",
		"account closure",
		"legal action will be taken",
		"your account has been limited",
	}

	mediumUrgencyPhrases = []string{
		"verify now",
		"act now",
		"urgent",
		"expires soon",
		"immediate attention",
		"respond immediately",
		"time sensitive",
		"before it's too late",
		"don't delay",
	}

	lowUrgencyPhrases = []string{
		"reminder",
		"please review",
		"as soon as possible",
		"at your earliest convenience",
	}
)

// Deadline constructions that apply pressure without a tiered phrase
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`within \d+ (hour|day|minute)s?`),
	regexp.MustCompile(`expires (in|on) \d+`),
	regexp.MustCompile(`before (january|february|march|april|may|june|july|august|september|october|november|december) \d+`),
	regexp.MustCompile(`by (today|tomorrow)`),
}

// urgencyAnalyzer detects pressure language in the subject and body
type urgencyAnalyzer struct{}

func newUrgencyAnalyzer() *urgencyAnalyzer {
	return &urgencyAnalyzer{}
}

func (a *urgencyAnalyzer) Name() string {
	return "Urgency or Pressure"
}

func (a *urgencyAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	text := strings.ToLower(email.Content + " " + email.Subject)

	if phrase := firstMatch(text, highUrgencyPhrases); phrase != "" {
		return newFinding(core.IndicatorUrgencyOrPressure,
			fmt.Sprintf("Message applies strong pressure: %q", phrase),
			core.SeverityHigh, 88, 25)
	}
	if phrase := firstMatch(text, mediumUrgencyPhrases); phrase != "" {
		return newFinding(core.IndicatorUrgencyOrPressure,
			fmt.Sprintf("Message pushes for quick action: %q", phrase),
			core.SeverityMedium, 78, 18)
	}
	if phrase := firstMatch(text, lowUrgencyPhrases); phrase != "" {
		return newFinding(core.IndicatorUrgencyOrPressure,
			fmt.Sprintf("Message nudges the reader: %q", phrase),
			core.SeverityLow, 60, 10)
	}

	for _, pattern := range deadlinePatterns {
		if match := pattern.FindString(text); match != "" {
			return newFinding(core.IndicatorUrgencyOrPressure,
				fmt.Sprintf("Message imposes a deadline: %q", match),
				core.SeverityMedium, 75, 16)
		}
	}

	return nil
}
