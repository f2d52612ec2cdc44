package heuristic

import (
	"fmt"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

// impersonatedEntity maps an entity name to the brand-flavored phrases a
// message claiming to be that entity would use. A phrase only counts when
// the entity name is absent from the sender address.
type impersonatedEntity struct {
	name    string
	phrases []string
}

var impersonatedEntities = []impersonatedEntity{
	{"paypal", []string{"your paypal account", "paypal team", "paypal support", "paypal security"}},
	{"amazon", []string{"your amazon order", "your amazon account", "amazon customer service", "amazon prime"}},
	{"apple", []string{"your apple id", "apple support", "icloud account", "apple security"}},
	{"microsoft", []string{"your microsoft account", "microsoft support", "office 365", "outlook team"}},
	{"google", []string{"your google account", "google security", "gmail team", "google support"}},
	{"facebook", []string{"your facebook account", "facebook security", "facebook support"}},
	{"netflix", []string{"your netflix account", "netflix billing", "netflix membership"}},
	{"bank", []string{"your bank account has", "online banking alert", "banking security department"}},
	{"irs", []string{"internal revenue service", "irs notice", "tax refund", "tax return"}},
	{"shipping", []string{"delivery attempt", "shipment on hold", "package could not be delivered"}},
}

var executiveTitles = []string{
	"ceo", "chief executive", "cfo", "president", "managing director",
}

var executiveRequestWords = []string{
	"urgent", "immediately", "asap", "right away", "need you to",
}

// Phrases claiming an organizational identity. The word that follows the
// phrase is checked against the sender domain.
var identityClaimPhrases = []string{
	"this is ", "we are ", "on behalf of ", "department of ", "support team",
}

// impersonationAnalyzer detects messages claiming association with an entity
// the sender address has nothing to do with.
type impersonationAnalyzer struct{}

func newImpersonationAnalyzer() *impersonationAnalyzer {
	return &impersonationAnalyzer{}
}

func (a *impersonationAnalyzer) Name() string {
	return "Impersonation"
}

func (a *impersonationAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	text := strings.ToLower(email.Content)
	sender := strings.ToLower(email.Sender)

	for _, entity := range impersonatedEntities {
		if strings.Contains(sender, entity.name) {
			continue
		}
		if phrase := firstMatch(text, entity.phrases); phrase != "" {
			return newFinding(core.IndicatorImpersonationAttempt,
				fmt.Sprintf("Message claims to be from %s (%q) but the sender %q is unrelated", entity.name, phrase, email.Sender),
				core.SeverityHigh, 92, 30)
		}
	}

	if containsAny(text, executiveTitles) && containsAny(text, executiveRequestWords) {
		return newFinding(core.IndicatorImpersonationAttempt,
			"Message combines executive authority with an urgent request",
			core.SeverityHigh, 85, 28)
	}

	domain := extractDomain(email.Sender)
	for _, phrase := range identityClaimPhrases {
		word := wordAfter(text, phrase)
		if len(word) < 3 {
			continue
		}
		if !strings.Contains(domain, word) {
			return newFinding(core.IndicatorImpersonationAttempt,
				fmt.Sprintf("Message claims the identity %q, which does not appear in the sender domain", word),
				core.SeverityMedium, 78, 22)
		}
	}

	return nil
}

// wordAfter returns the first alphabetic word following the phrase in text,
// or "" if the phrase is absent
func wordAfter(text, phrase string) string {
	idx := strings.Index(text, phrase)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeft(text[idx+len(phrase):], " ")
	end := 0
	for end < len(rest) && rest[end] >= 'a' && rest[end] <= 'z' {
		end++
	}
	return rest[:end]
}
