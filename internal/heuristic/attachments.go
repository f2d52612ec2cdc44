package heuristic

import (
	"fmt"
	"strings"

	"github.com/securecheck/securecheck/internal/core"
)

// Extensions that execute code directly
var executableExtensions = []string{
	".exe", ".bat", ".vbs", ".js", ".scr", ".cmd",
	".pif", ".msi", ".hta", ".dll", ".ps1",
}

// Archives and macro-capable documents
var archiveMacroExtensions = []string{
	".zip", ".rar", ".7z", ".jar", ".iso",
	".docm", ".xlsm", ".pptm",
}

// Installer and crack-tool bait wording
var installerKeywords = []string{
	"setup", "install", "patch", "crack", "keygen", "activator",
}

// attachmentAnalyzer detects references to dangerous file types and
// coercive open-it-now phrasing in the message body.
type attachmentAnalyzer struct{}

func newAttachmentAnalyzer() *attachmentAnalyzer {
	return &attachmentAnalyzer{}
}

func (a *attachmentAnalyzer) Name() string {
	return "Suspicious Attachments"
}

func (a *attachmentAnalyzer) Analyze(email *core.EmailMessage) *Finding {
	text := strings.ToLower(email.Content)

	if ext := firstMatch(text, executableExtensions); ext != "" {
		return newFinding(core.IndicatorSuspiciousAttachment,
			fmt.Sprintf("Message references an executable file (%q)", ext),
			core.SeverityHigh, 92, 32)
	}
	if ext := firstMatch(text, archiveMacroExtensions); ext != "" {
		return newFinding(core.IndicatorSuspiciousAttachment,
			fmt.Sprintf("Message references an archive or macro-capable document (%q)", ext),
			core.SeverityMedium, 82, 24)
	}
	if kw := firstMatch(text, installerKeywords); kw != "" {
		return newFinding(core.IndicatorSuspiciousAttachment,
			fmt.Sprintf("Message uses installer or crack-tool bait wording (%q)", kw),
			core.SeverityHigh, 88, 30)
	}

	// Coercion to open a file right away
	mentionsFile := containsAny(text, []string{"attachment", "attached", "file"})
	hasActionVerb := containsAny(text, []string{"open", "download", "enable"})
	hasPressureWord := containsAny(text, []string{"now", "immediately", "must", "right away"})
	if mentionsFile && hasActionVerb && hasPressureWord {
		return newFinding(core.IndicatorSuspiciousAttachment,
			"Message pressures the reader to open a file immediately",
			core.SeverityMedium, 85, 26)
	}

	return nil
}
