package heuristic

import (
	"fmt"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

// domainAnalyzer inspects the sender domain for brand spoofing:
// hyphenated brand names, subdomain abuse, typosquatting and
// throwaway TLDs.
type domainAnalyzer struct{}

func newDomainAnalyzer() *domainAnalyzer {
	return &domainAnalyzer{}
}

func (a *domainAnalyzer) Name() string {
	return "Domain Spoofing"
}

func (a *domainAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	domain := extractDomain(email.Sender)
	if domain == "" {
		return nil
	}

	// Pass 1: brand name embedded in an unofficial domain
	for _, brand := range brandNames {
		if !strings.Contains(domain, brand) {
			continue
		}
		if strings.Contains(domain, "-") {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q inserts hyphens around the %q brand name", domain, brand),
				core.SeverityHigh, 87, 32)
		}
		if strings.Contains(domain, ".") && !isOfficialBrandDomain(domain, brand) {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q buries the %q brand in an unrelated domain", domain, brand),
				core.SeverityHigh, 90, 35)
		}
	}

	// Pass 2: domains one or two edits away from the official brand domain
	for _, brand := range brandNames {
		official := brand + ".com"
		if domain == official || len(domain) <= 5 {
			continue
		}
		if containsDigit(domain) && levenshteinDistance(domain, official) <= 2 {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q typosquats %q using digit substitution", domain, official),
				core.SeverityHigh, 93, 38)
		}
		if levenshteinDistance(domain, official) == 1 {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q is one character away from %q", domain, official),
				core.SeverityHigh, 89, 34)
		}
		if pair := firstMatch(domainLabel(domain), homoglyphPairs); pair != "" {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q contains the look-alike sequence %q", domain, pair),
				core.SeverityHigh, 86, 33)
		}
	}

	// Pass 3: throwaway TLDs
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			return newFinding(core.IndicatorSpoofedDomain,
				fmt.Sprintf("Sender domain %q uses the suspicious top-level domain %q", domain, tld),
				core.SeverityMedium, 75, 25)
		}
	}

	return nil
}

// isOfficialBrandDomain reports whether domain is the brand's own domain or
// a subdomain of it, for the common registries
func isOfficialBrandDomain(domain, brand string) bool {
	for _, tld := range []string{".com", ".org", ".net"} {
		official := brand + tld
		if domain == official || strings.HasSuffix(domain, "."+official) {
			return true
		}
	}
	return false
}

// domainLabel returns the part of the domain before the first dot
func domainLabel(domain string) string {
	if i := strings.Index(domain, "."); i >= 0 {
		return domain[:i]
	}
	return domain
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
