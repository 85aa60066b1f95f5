package extractor

import (
	"strings"
	"testing"
)

func TestTextExtractor_Extract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text passes through", "Contact: jane@example.com", "Contact: jane@example.com"},
		{"newlines and tabs kept", "line one\n\tline two\r\n", "line one\n\tline two\r\n"},
		{"control bytes become spaces", "a\x00b\x01c\x1fd", "a b c d"},
		{"utf-8 kept", "नमस्ते, José", "नमस्ते, José"},
		{"empty input", "", ""},
	}

	e := &TextExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextExtractor_LargeInput(t *testing.T) {
	// Spans several read chunks.
	input := strings.Repeat("chunk of text with a number 9876543210\n", 10000)

	e := &TextExtractor{}
	got, err := e.Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != input {
		t.Errorf("Extract() changed clean input: len %d, want %d", len(got), len(input))
	}
}
