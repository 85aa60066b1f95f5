package pii

import (
	"context"

	"go.uber.org/zap"

	"github.com/identware/identity-secure/internal/logger"
)

// SemanticDetector is the external AI text-analysis collaborator. It may
// return type labels outside the pattern-matched catalog (PERSON, DATE_TIME,
// PASSPORT, ...). Implementations are expected to handle their own provider
// fallback; an error here degrades the scan to regex-only results.
type SemanticDetector interface {
	DetectPII(ctx context.Context, text string) (Results, error)
}

// Allowlist suppresses known-benign values before scoring and reporting.
type Allowlist interface {
	Contains(value string) bool
}

// ScanResult is the outcome of a full document scan.
type ScanResult struct {
	Success     bool      `json:"success"`
	Report      string    `json:"report"`
	Title       string    `json:"title"`
	DetectedAny bool      `json:"detectedAny"`
	RiskScore   int       `json:"riskScore"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// Pipeline runs the full detection flow: pattern matcher, semantic detector,
// combiner, risk-aware report formatter, title extractor. A Pipeline holds
// no per-scan state, so concurrent scans need no coordination.
type Pipeline struct {
	catalog   *Catalog
	matcher   *Matcher
	detector  SemanticDetector
	allowlist Allowlist
	log       *logger.Logger
}

// NewPipeline wires a scan pipeline. detector and allowlist may be nil, in
// which case the scan is regex-only and nothing is suppressed.
func NewPipeline(catalog *Catalog, detector SemanticDetector, allowlist Allowlist, log *logger.Logger) *Pipeline {
	return &Pipeline{
		catalog:   catalog,
		matcher:   NewMatcher(catalog),
		detector:  detector,
		allowlist: allowlist,
		log:       log,
	}
}

// Scan analyzes extracted document text and produces the markdown report and
// its title. Detector failures never fail the scan: the semantic results
// simply come back empty and the regex findings stand alone. An empty
// combined result is a successful scan with the canned no-PII report.
func (p *Pipeline) Scan(ctx context.Context, text string) ScanResult {
	regexResults := p.matcher.Match(text)

	var aiResults Results
	if p.detector != nil {
		var err error
		aiResults, err = p.detector.DetectPII(ctx, text)
		if err != nil {
			p.log.Warn("semantic detection unavailable, continuing with pattern results",
				zap.Error(err))
			aiResults = nil
		}
	}

	combined := p.suppressAllowed(Combine(regexResults, aiResults))
	report := p.catalog.FormatReport(combined)
	score := p.catalog.Score(combined)

	p.log.Debug("scan complete",
		zap.Int("pattern_types", len(regexResults)),
		zap.Int("semantic_types", len(aiResults)),
		zap.Int("combined_types", len(combined)),
	)

	return ScanResult{
		Success:     true,
		Report:      report,
		Title:       ExtractTitle(report),
		DetectedAny: len(combined) > 0,
		RiskScore:   score,
		RiskLevel:   Level(score),
	}
}

// QuickScan is the pattern-only pre-check. It never touches the semantic
// detector and shares no state with full scans.
func (p *Pipeline) QuickScan(text string) QuickScanResult {
	return p.matcher.QuickScan(text)
}

// suppressAllowed drops instances present in the allowlist. A type whose
// instances are all allowlisted disappears from the results entirely.
func (p *Pipeline) suppressAllowed(results Results) Results {
	if p.allowlist == nil {
		return results
	}

	filtered := make(Results, len(results))
	for t, instances := range results {
		kept := instances[:0:0]
		for _, v := range instances {
			if !p.allowlist.Contains(v) {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			filtered[t] = kept
		}
	}
	return filtered
}
