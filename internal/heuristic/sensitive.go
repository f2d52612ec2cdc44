package heuristic

import (
	"fmt"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

// Requests for data that should never be asked for over email
var criticalDataPhrases = []string{
	"ssn",
	"social security",
	"credit card",
	"card number",
	"cvv",
	"pin",
	"bank account",
	"wire transfer",
	"routing number",
	"date of birth",
	"mother's maiden name",
}

// Account-verification phrasings that precede a credential grab
var accountVerificationPhrases = []string{
	"verify your account",
	"confirm your account",
	"update your information",
	"password reset",
	"reset your password",
	"login details",
	"account credentials",
	"confirm your identity",
}

// sensitiveInfoAnalyzer detects requests for credentials, financial data and
// personal information, including the compound login-via-link and
// form-filling patterns.
type sensitiveInfoAnalyzer struct{}

func newSensitiveInfoAnalyzer() *sensitiveInfoAnalyzer {
	return &sensitiveInfoAnalyzer{}
}

func (a *sensitiveInfoAnalyzer) Name() string {
	return "Sensitive Information Request"
}

func (a *sensitiveInfoAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	text := strings.ToLower(email.Content)

	if phrase := firstMatch(text, criticalDataPhrases); phrase != "" {
		return newFinding(core.IndicatorSensitiveInfoRequest,
			fmt.Sprintf("Message asks for critical personal data (%q)", phrase),
			core.SeverityHigh, 95, 35)
	}
	if phrase := firstMatch(text, accountVerificationPhrases); phrase != "" {
		return newFinding(core.IndicatorSensitiveInfoRequest,
			fmt.Sprintf("Message requests account verification (%q)", phrase),
			core.SeverityHigh, 88, 28)
	}

	// Login instruction delivered through a link
	hasLoginVerb := containsAny(text, []string{"login", "log in", "sign in"})
	hasAccountWord := containsAny(text, []string{"account", "security"})
	hasLinkWord := containsAny(text, []string{"click", "link", "follow"})
	if hasLoginVerb && hasAccountWord && hasLinkWord {
		return newFinding(core.IndicatorSensitiveInfoRequest,
			"Message instructs the reader to log in through a provided link",
			core.SeverityMedium, 85, 26)
	}

	// Request to fill out a form with personal details
	hasFormWord := containsAny(text, []string{"form", "fill"})
	hasDetailWord := containsAny(text, []string{"information", "details"})
	if hasFormWord && hasDetailWord {
		return newFinding(core.IndicatorSensitiveInfoRequest,
			"Message asks the reader to fill in personal information",
			core.SeverityMedium, 75, 20)
	}

	return nil
}
