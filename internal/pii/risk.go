package pii

// RiskLevel buckets a numeric risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Per-type contribution is capped at quantityCap instances so very
// repetitive documents cannot dominate the score.
const quantityCap = 5

// Score computes the risk score of a combined result set: for each present
// type, weight(type) * min(count, 5). Types outside the catalog's weight
// table count with weight 1.
func (c *Catalog) Score(results Results) int {
	score := 0
	for t, instances := range results {
		count := len(instances)
		if count > quantityCap {
			count = quantityCap
		}
		score += c.Weight(t) * count
	}
	return score
}

// Level buckets a score into the three risk levels.
func Level(score int) RiskLevel {
	switch {
	case score >= 30:
		return RiskHigh
	case score >= 15:
		return RiskMedium
	default:
		return RiskLow
	}
}
