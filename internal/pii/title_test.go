package pii

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   string
	}{
		{
			name:   "empty report",
			report: "",
			want:   "",
		},
		{
			name:   "heading wins",
			report: "## PII Detection Report\n\nThe following was found...",
			want:   "PII Detection Report",
		},
		{
			name:   "custom heading text kept",
			report: "intro\n## Quarterly PII Audit Report\nbody",
			want:   "Quarterly PII Audit Report",
		},
		{
			name:   "single type mention",
			report: "Found an Aadhar number in the document.",
			want:   "Aadhar Detection Report",
		},
		{
			name:   "three type mentions joined",
			report: "Found Aadhar, Phone and Email entries.",
			want:   "Aadhar, Phone, Email Detection Report",
		},
		{
			name:   "more than three mentions counted",
			report: "Aadhar, Phone, Email and Passport all appear here.",
			want:   "Multiple PII Types (4) Detected",
		},
		{
			name:   "type mentions are case-insensitive",
			report: "the credit card was exposed",
			want:   "Credit Card Detection Report",
		},
		{
			name:   "no-pii sentence",
			report: NoPIIReport,
			want:   "Secure Document - No PII Detected",
		},
		{
			name:   "generic pii mention",
			report: "This document discusses PII handling policies.",
			want:   "PII Detection Report",
		},
		{
			name:   "absolute fallback",
			report: "Nothing sensitive to see here.",
			want:   "Document Security Scan Results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(tt.report); got != tt.want {
				t.Errorf("ExtractTitle(%q) = %q, want %q", tt.report, got, tt.want)
			}
		})
	}
}
