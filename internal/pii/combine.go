package pii

// Combine merges the pattern matcher's results with the semantic detector's.
// The regex results are copied first; detector types not yet present are
// inserted as-is, overlapping types become the set union of both instance
// lists (exact string dedup). Element order within a type is unspecified.
func Combine(regexResults, aiResults Results) Results {
	combined := make(Results, len(regexResults))
	for t, instances := range regexResults {
		combined[t] = append([]string(nil), instances...)
	}

	for t, instances := range aiResults {
		existing, ok := combined[t]
		if !ok {
			combined[t] = append([]string(nil), instances...)
			continue
		}

		seen := make(map[string]bool, len(existing))
		merged := make([]string, 0, len(existing)+len(instances))
		for _, v := range existing {
			if !seen[v] {
				seen[v] = true
				merged = append(merged, v)
			}
		}
		for _, v := range instances {
			if !seen[v] {
				seen[v] = true
				merged = append(merged, v)
			}
		}
		combined[t] = merged
	}

	return combined
}
