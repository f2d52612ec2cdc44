package heuristic

import (
	"strings"
)

// Curated brand names frequently impersonated in phishing campaigns.
// Order matters: the domain analyzer short-circuits on the first brand
// whose sub-rules match.
var brandNames = []string{
	"paypal", "amazon", "apple", "microsoft", "google", "facebook",
	"netflix", "bank", "chase", "wellsfargo", "citi", "amex",
	"bankofamerica", "usbank", "dropbox", "linkedin", "twitter",
	"instagram", "docusign", "fedex", "ups", "usps", "dhl", "irs",
}

// Character sequences that visually resemble other characters
// ("rn" reads as "m", "vv" as "w", and so on)
var homoglyphPairs = []string{"rn", "vv", "l1", "0o"}

// TLDs heavily used by throwaway phishing domains
var suspiciousTLDs = []string{
	".xyz", ".top", ".tk", ".club", ".online",
	".info", ".site", ".gq", ".ml", ".cf",
}

// URL shortener domains that hide the real destination
var shortenerDomains = []string{
	"bit.ly", "tinyurl", "goo.gl", "t.co", "ow.ly",
	"is.gd", "tiny.cc", "cli.gs", "tr.im",
}

// Domains whose appearance in visible link text is compared against the
// actual href target by the mismatched-URL pass
var trustedDomains = []string{
	"paypal.com", "amazon.com", "apple.com", "microsoft.com",
	"google.com", "facebook.com", "chase.com", "bankofamerica.com",
	"wellsfargo.com",
}

// extractDomain returns the lower-cased domain portion of an address,
// or "" when the address has no @ (malformed input is tolerated, the
// domain checks just become no-ops).
func extractDomain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
}

// containsAny reports whether text contains any of the given substrings
func containsAny(text string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// firstMatch returns the first substring found in text, or ""
func firstMatch(text string, substrings []string) string {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return s
		}
	}
	return ""
}
