package heuristic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

var (
	ipLiteralURLPattern = regexp.MustCompile(`https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

	// Phishing-flavored path keywords count only next to URL-like syntax:
	// a leading slash, a .html/.php suffix, or a query string.
	urlPathKeywordPattern = regexp.MustCompile(`(?i)/(confirm|update|verify|secure|alert|invoice|statement|receipt|document)\b|(confirm|update|verify|secure|alert|invoice|statement|receipt|document)(\.html|\.php|\?)`)
)

// Percent-encoded reserved characters used to disguise URLs
var encodedURLMarkers = []string{"%3a", "%2f", "%3f", "%3d", "%26"}

// Query parameters commonly carrying an open redirect
var redirectParameters = []string{"url=", "redirect=", "goto=", "link="}

// Path fragments typical of credential-harvesting pages
var credentialPathMarkers = []string{"login.", "account-verify", "signin", "secure.login"}

// linkAnalyzer inspects the message body for suspicious URLs
type linkAnalyzer struct{}

func newLinkAnalyzer() *linkAnalyzer {
	return &linkAnalyzer{}
}

func (a *linkAnalyzer) Name() string {
	return "Suspicious Links"
}

func (a *linkAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	body := email.Content
	lower := strings.ToLower(body)

	if ipLiteralURLPattern.MatchString(body) {
		return newFinding(core.IndicatorSuspiciousLink,
			"Message links directly to a raw IP address instead of a domain",
			core.SeverityHigh, 95, 28)
	}
	if d := firstMatch(lower, shortenerDomains); d != "" {
		return newFinding(core.IndicatorSuspiciousLink,
			fmt.Sprintf("Message uses the URL shortener %q to hide the real destination", d),
			core.SeverityMedium, 80, 20)
	}
	if containsAny(lower, encodedURLMarkers) {
		return newFinding(core.IndicatorSuspiciousLink,
			"Message contains percent-encoded URL characters, a common obfuscation trick",
			core.SeverityHigh, 85, 25)
	}
	if p := firstMatch(lower, redirectParameters); p != "" {
		return newFinding(core.IndicatorSuspiciousLink,
			fmt.Sprintf("Message contains the redirect parameter %q", p),
			core.SeverityMedium, 75, 18)
	}
	if m := firstMatch(lower, credentialPathMarkers); m != "" {
		return newFinding(core.IndicatorSuspiciousLink,
			fmt.Sprintf("Message links to a credential-harvesting style path (%q)", m),
			core.SeverityMedium, 82, 22)
	}
	if urlPathKeywordPattern.MatchString(body) {
		return newFinding(core.IndicatorSuspiciousLink,
			"Message URL path uses wording typical of phishing pages",
			core.SeverityMedium, 70, 16)
	}

	return nil
}

// mismatchAnalyzer is an independent pass over href attributes: it compares
// each link target against the visible text that follows it and flags links
// whose displayed text does not match where they actually go.
type mismatchAnalyzer struct{}

func newMismatchAnalyzer() *mismatchAnalyzer {
	return &mismatchAnalyzer{}
}

func (a *mismatchAnalyzer) Name() string {
	return "Mismatched URLs"
}

func (a *mismatchAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	segments := strings.Split(email.Content, "href=")
	if len(segments) < 2 {
		return nil
	}

	for _, segment := range segments[1:] {
		actual := extractHrefTarget(segment)
		visible := extractVisibleText(segment)
		if actual == "" || visible == "" {
			continue
		}

		if looksLikeURL(actual) && looksLikeURL(visible) &&
			!strings.Contains(actual, visible) && !strings.Contains(visible, actual) {
			return newFinding(core.IndicatorMismatchedURLs,
				fmt.Sprintf("Link text %q does not match its target %q", visible, actual),
				core.SeverityHigh, 92, 28)
		}

		lowerVisible := strings.ToLower(visible)
		lowerActual := strings.ToLower(actual)
		for _, trusted := range trustedDomains {
			if strings.Contains(lowerVisible, trusted) && !strings.Contains(lowerActual, trusted) {
				return newFinding(core.IndicatorMismatchedURLs,
					fmt.Sprintf("Link text names %q but the target is %q", trusted, actual),
					core.SeverityHigh, 92, 28)
			}
		}
	}

	return nil
}

// extractHrefTarget reads the attribute value at the start of a segment
// split on "href="
func extractHrefTarget(segment string) string {
	if segment == "" {
		return ""
	}
	quote := segment[0]
	if quote == '"' || quote == '\'' {
		rest := segment[1:]
		if end := strings.IndexByte(rest, quote); end >= 0 {
			return rest[:end]
		}
		return ""
	}
	end := strings.IndexAny(segment, " >")
	if end < 0 {
		return segment
	}
	return segment[:end]
}

// extractVisibleText reads the anchor text between the tag close and the
// next tag open
func extractVisibleText(segment string) string {
	open := strings.IndexByte(segment, '>')
	if open < 0 {
		return ""
	}
	rest := segment[open+1:]
	close := strings.IndexByte(rest, '<')
	if close < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:close])
}

// looksLikeURL reports whether a string reads as a URL: an explicit scheme,
// a www prefix, or a dotted name without spaces
func looksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "www.") {
		return true
	}
	return strings.Contains(s, ".") && len(s) > 3
}
