package pii

import (
	"fmt"
	"sort"
	"strings"
)

// NoPIIReport is the canned report body for a clean document.
const NoPIIReport = "No personally identifiable information (PII) was detected in this document."

const sampleSize = 3

// FormatReport renders the combined detection results as a markdown report:
// a risk-assessment banner, one section per detected type with redacted
// samples, generic and type-specific recommendations, and a compliance block
// when high-risk identifiers are present.
func (c *Catalog) FormatReport(results Results) string {
	if len(results) == 0 {
		return NoPIIReport
	}

	var report strings.Builder
	report.WriteString("## PII Detection Report\n\n")
	report.WriteString("The following personally identifiable information (PII) was detected in this document:\n\n")

	level := Level(c.Score(results))
	report.WriteString("### Risk Assessment\n")
	fmt.Fprintf(&report, "**Overall Risk Level: %s**\n", level)
	report.WriteString("Based on the types and quantity of sensitive information detected.\n\n")

	for _, t := range c.reportOrder(results) {
		instances := results[t]

		fmt.Fprintf(&report, "### %s Identifiers\n", c.DisplayName(t))
		// The count sentence deliberately uses the raw lowercased label
		// rather than the display name, e.g. "1 aadhar identifier".
		if len(instances) == 1 {
			fmt.Fprintf(&report, "1 %s identifier was detected.\n\n", strings.ToLower(string(t)))
		} else {
			fmt.Fprintf(&report, "%d %s identifiers were detected.\n\n", len(instances), strings.ToLower(string(t)))
		}

		report.WriteString("Examples (redacted):\n")
		shown := len(instances)
		if shown > sampleSize {
			shown = sampleSize
		}
		for i := 0; i < shown; i++ {
			fmt.Fprintf(&report, "- %s\n", Redact(instances[i], t))
		}
		if len(instances) > shown {
			fmt.Fprintf(&report, "- ... and %d more\n", len(instances)-shown)
		}
		report.WriteString("\n")
	}

	report.WriteString("## Recommendations\n\n")
	report.WriteString("- Review and redact the identified PII before sharing this document\n")
	report.WriteString("- Consider using built-in redaction tools to permanently remove this information\n")
	report.WriteString("- Ensure proper document handling and storage practices are followed\n")

	if recs := typeSpecificRecommendations(results); len(recs) > 0 {
		report.WriteString("\n### Type-Specific Recommendations\n")
		for _, rec := range recs {
			fmt.Fprintf(&report, "- %s\n", rec)
		}
	}

	if c.hasHighRiskPII(results) {
		report.WriteString("\n### Compliance Considerations\n")
		report.WriteString("This document contains sensitive government-issued identifiers that may be subject to:\n")
		report.WriteString("- Data protection regulations requiring secure handling\n")
		report.WriteString("- Mandatory reporting of breaches involving this information\n")
		report.WriteString("- Legal requirements for proper data storage and disposal\n")
	}

	return report.String()
}

// reportOrder yields each present type exactly once: pattern-backed types in
// catalog order first, then any detector-only types sorted by label, so the
// report is deterministic.
func (c *Catalog) reportOrder(results Results) []Type {
	order := make([]Type, 0, len(results))
	listed := make(map[Type]bool, len(results))
	for _, e := range c.patterns {
		if _, ok := results[e.label]; ok {
			order = append(order, e.label)
			listed[e.label] = true
		}
	}

	var rest []Type
	for t := range results {
		if !listed[t] {
			rest = append(rest, t)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}

// typeSpecificRecommendations evaluates the advice rules in a fixed order.
// Rules are independent; every applicable one is included.
func typeSpecificRecommendations(results Results) []string {
	var recs []string

	if _, ok := results[TypeAadhar]; ok {
		recs = append(recs, "Aadhaar numbers should be masked except for the last 4 digits when necessary for identification")
	}
	if _, ok := results[TypePAN]; ok {
		recs = append(recs, "PAN card information should be protected and only collected when legally required")
	}
	if _, ok := results[TypeCreditCard]; ok {
		recs = append(recs, "Credit card numbers should always be truncated to show only the last 4 digits")
	}
	_, hasEmail := results[TypeEmail]
	_, hasPhone := results[TypePhone]
	if hasEmail && hasPhone {
		recs = append(recs, "Multiple contact methods detected - consider keeping only one form of contact information when possible")
	}

	return recs
}

func (c *Catalog) hasHighRiskPII(results Results) bool {
	for t := range results {
		if c.highRisk[t] && len(results[t]) > 0 {
			return true
		}
	}
	return false
}
