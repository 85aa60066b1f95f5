package pii

// Matcher applies the catalog's regex patterns to raw document text.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a pattern matcher over the given catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match collects every non-overlapping match for each pattern-backed type.
// Matches are kept verbatim and are not deduplicated here; the combiner
// applies set semantics later. A type is present in the result only when at
// least one match was found. Match never fails: no matches means an empty map.
func (m *Matcher) Match(text string) Results {
	results := make(Results)
	for _, e := range m.catalog.patterns {
		matches := e.pattern.FindAllString(text, -1)
		if len(matches) > 0 {
			results[e.label] = matches
		}
	}
	return results
}

// QuickScanResult summarizes a pattern-only pre-check.
type QuickScanResult struct {
	HasPII        bool         `json:"hasPII"`
	DetectedTypes []Type       `json:"detectedTypes"`
	Counts        map[Type]int `json:"counts"`
}

// QuickScan runs only the pattern matcher and reshapes its output into
// presence flags and counts. It never calls the semantic detector and keeps
// no state between calls. Detected types are reported in catalog order.
func (m *Matcher) QuickScan(text string) QuickScanResult {
	matched := m.Match(text)

	res := QuickScanResult{
		HasPII:        len(matched) > 0,
		DetectedTypes: make([]Type, 0, len(matched)),
		Counts:        make(map[Type]int, len(matched)),
	}
	for _, e := range m.catalog.patterns {
		if instances, ok := matched[e.label]; ok {
			res.DetectedTypes = append(res.DetectedTypes, e.label)
			res.Counts[e.label] = len(instances)
		}
	}
	return res
}
