package pii

import (
	"fmt"
	"regexp"
	"strings"
)

var reportHeading = regexp.MustCompile(`(?m)^## (.*PII.*Report.*)`)

// Names scanned for in step two of the title fallback chain. These are
// report-facing spellings, not catalog labels.
var titleTypeNames = []string{
	"Aadhar",
	"PAN",
	"Credit Card",
	"Phone",
	"Email",
	"Passport",
	"Voter ID",
	"License",
	"Bank Account",
}

// titleRule is one step of the fallback chain: the first rule that returns
// ok wins. Keeping the chain as an ordered slice makes the priority order
// explicit.
type titleRule func(report, lower string) (string, bool)

var titleRules = []titleRule{
	headingTitle,
	typeMentionTitle,
	piiMentionTitle,
}

// ExtractTitle derives a short document title from a generated report.
// An empty report yields an empty title; otherwise some rule always fires,
// with "Document Security Scan Results" as the absolute fallback.
func ExtractTitle(report string) string {
	if report == "" {
		return ""
	}

	lower := strings.ToLower(report)
	for _, rule := range titleRules {
		if title, ok := rule(report, lower); ok {
			return title
		}
	}
	return "Document Security Scan Results"
}

// headingTitle reuses a markdown heading like "## PII Detection Report".
func headingTitle(report, _ string) (string, bool) {
	if m := reportHeading.FindStringSubmatch(report); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// typeMentionTitle names the report after the PII types it mentions.
func typeMentionTitle(_, lower string) (string, bool) {
	var detected []string
	for _, name := range titleTypeNames {
		if strings.Contains(lower, strings.ToLower(name)) {
			detected = append(detected, name)
		}
	}

	switch {
	case len(detected) == 0:
		return "", false
	case len(detected) == 1:
		return detected[0] + " Detection Report", true
	case len(detected) <= 3:
		return strings.Join(detected, ", ") + " Detection Report", true
	default:
		return fmt.Sprintf("Multiple PII Types (%d) Detected", len(detected)), true
	}
}

// piiMentionTitle handles reports that talk about PII without naming types.
func piiMentionTitle(_, lower string) (string, bool) {
	if !strings.Contains(lower, "pii") && !strings.Contains(lower, "personally identifiable information") {
		return "", false
	}
	if strings.Contains(lower, "no personally identifiable information") {
		return "Secure Document - No PII Detected", true
	}
	return "PII Detection Report", true
}
