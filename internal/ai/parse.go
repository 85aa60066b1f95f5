package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/identware/identity-secure/internal/pii"
)

// parseResults turns a model response into detection results. Models wrap
// JSON in code fences or prose often enough that we clean up and cut out the
// outermost object before unmarshalling. Values may arrive as a string
// instead of a list; both are accepted. Empty lists are dropped so the
// "present only with at least one instance" invariant holds.
func parseResults(responseText string) (pii.Results, error) {
	clean := cleanMarkdown(responseText)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make(pii.Results, len(raw))
	for label, value := range raw {
		var instances []string
		if err := json.Unmarshal(value, &instances); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				continue
			}
			instances = []string{single}
		}

		instances = dropEmpty(instances)
		if len(instances) > 0 {
			results[pii.Type(label)] = instances
		}
	}
	return results, nil
}

func dropEmpty(instances []string) []string {
	kept := instances[:0]
	for _, v := range instances {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return kept
}

func cleanMarkdown(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
