package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/securecheck/securecheck/internal/core"
)

var (
	repeatedPunctuationPattern = regexp.MustCompile(`[!?]{2,}`)
	sentenceBoundaryPattern    = regexp.MustCompile(`[.!?]+`)
)

// Misspellings that show up constantly in phishing kits
var knownMisspellings = []string{
	"recieve", "acount", "verifcation", "securty", "pasword",
	"imediately", "informations", "confirme", "suspicius",
}

// Greetings that address nobody in particular
var genericGreetings = []string{
	"dear customer", "dear user", "dear account holder",
	"dear sir/madam", "dear valued customer", "hello dear",
}

// Tunable accumulator weights. Signals are independent and additive, unlike
// the first-match-wins analyzers.
const (
	repeatedPunctuationPoints = 2
	allCapsWordPoints         = 1
	mixedCaseWordPoints       = 2
	shortSentencePoints       = 1
	misspellingPoints         = 3
	genericGreetingPoints     = 4

	mediumGrammarThreshold = 10
	lowGrammarThreshold    = 5
)

// languageAnalyzer accumulates a poor-grammar score from formatting
// anomalies. It only runs on bodies with more than ten words.
type languageAnalyzer struct{}

func newLanguageAnalyzer() *languageAnalyzer {
	return &languageAnalyzer{}
}

func (a *languageAnalyzer) Name() string {
	return "Language Quality"
}

func (a *languageAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	body := email.Content
	words := strings.Fields(body)
	if body == "" || len(words) <= 10 {
		return nil
	}
	lower := strings.ToLower(body)

	score := 0
	if repeatedPunctuationPattern.MatchString(body) {
		score += repeatedPunctuationPoints
	}
	for _, word := range words {
		letters := strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
		if len(letters) > 3 && letters == strings.ToUpper(letters) && letters != strings.ToLower(letters) {
			score += allCapsWordPoints
		}
		if isIrregularCase(letters) {
			score += mixedCaseWordPoints
		}
	}
	if short := countShortSentences(body); short > 2 {
		score += (short - 2) * shortSentencePoints
	}
	for _, misspelling := range knownMisspellings {
		if strings.Contains(lower, misspelling) {
			score += misspellingPoints
		}
	}
	for _, greeting := range genericGreetings {
		if strings.Contains(lower, greeting) {
			score += genericGreetingPoints
		}
	}

	switch {
	case score >= mediumGrammarThreshold:
		return newFinding(core.IndicatorGrammarErrors,
			"Message shows heavy formatting and grammar anomalies",
			core.SeverityMedium, 80, 18)
	case score >= lowGrammarThreshold:
		return newFinding(core.IndicatorGrammarErrors,
			"Message shows several formatting and grammar anomalies",
			core.SeverityLow, 65, 10)
	default:
		return nil
	}
}

// isIrregularCase reports whether a word mixes case somewhere other than
// a plain leading capital (e.g. "PayPaI", "aLert")
func isIrregularCase(word string) bool {
	if len(word) < 2 {
		return false
	}
	rest := word[1:]
	hasUpper := strings.ToLower(rest) != rest
	if !hasUpper {
		return false
	}
	// All-caps words are scored by the all-caps rule instead
	return word != strings.ToUpper(word)
}

// countShortSentences counts sentences with fewer than three words
func countShortSentences(body string) int {
	count := 0
	for _, sentence := range sentenceBoundaryPattern.Split(body, -1) {
		n := len(strings.Fields(sentence))
		if n > 0 && n < 3 {
			count++
		}
	}
	return count
}
