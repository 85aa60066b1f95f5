package pii

import (
	"regexp"
	"strings"
)

var (
	fourDigitRun  = regexp.MustCompile(`\d{4}`)
	trailingSix   = regexp.MustCompile(`\d{6}$`)
	emailFallback = regexp.MustCompile(`.{3,}@`)
)

// Redact produces a partially masked display version of a detected instance.
// It is deterministic, never panics on short or malformed input, and never
// returns the full original for a recognized type.
func Redact(instance string, t Type) string {
	var masked string
	switch t {
	case TypeAadhar:
		masked = redactAadhar(instance)
	case TypePAN:
		masked = redactPAN(instance)
	case TypeCreditCard:
		masked = redactCreditCard(instance)
	case TypePhone:
		masked = trailingSix.ReplaceAllString(instance, "XXXXXX")
	case TypeEmail:
		masked = redactEmail(instance)
	default:
		return strings.Repeat("*", len([]rune(instance)))
	}

	// Malformed inputs can slip through a type-specific rule untouched, e.g.
	// a PHONE instance that does not end in six digits. Fall back to full
	// masking rather than echo the original.
	if masked == instance && instance != "" {
		return strings.Repeat("*", len([]rune(instance)))
	}
	return masked
}

// redactAadhar keeps the first 4-digit group and masks every later one:
// "2345 6789 0123" -> "2345 XXXX XXXX".
func redactAadhar(s string) string {
	first := true
	return fourDigitRun.ReplaceAllStringFunc(s, func(run string) string {
		if first {
			first = false
			return run
		}
		return "XXXX"
	})
}

// redactPAN keeps the five-letter prefix and the trailing check letter:
// "ABCDE1234F" -> "ABCDEXXXXF".
func redactPAN(s string) string {
	if len(s) > 9 {
		return s[:5] + "XXXX" + s[9:]
	}
	// Shorter than the PAN layout; keep a partial prefix so the whole
	// instance is never echoed back.
	return s[:len(s)/2] + "XXXX"
}

// redactCreditCard masks each 4-digit run unless it occupies the final four
// characters of the string.
func redactCreditCard(s string) string {
	locs := fourDigitRun.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(s[prev:loc[0]])
		if loc[0] == len(s)-4 {
			b.WriteString(s[loc[0]:loc[1]])
		} else {
			b.WriteString("XXXX")
		}
		prev = loc[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

// redactEmail shows the first and last character of the local part:
// "john.doe@example.com" -> "j...e@example.com".
func redactEmail(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) == 2 {
		local := parts[0]
		if local == "" {
			return "...@" + parts[1]
		}
		runes := []rune(local)
		return string(runes[0]) + "..." + string(runes[len(runes)-1]) + "@" + parts[1]
	}
	return emailFallback.ReplaceAllString(s, "***@")
}
