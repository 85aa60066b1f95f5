package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/identware/identity-secure/internal/config"
	"github.com/identware/identity-secure/internal/logger"
	"github.com/identware/identity-secure/internal/pii"
)

// Provider is one hosted completion API able to analyze text for PII.
type Provider interface {
	Name() string
	DetectPII(ctx context.Context, text string) (pii.Results, error)
}

// attempt is the outcome of a single provider call.
type attempt struct {
	result pii.Results
	err    error
}

func (a attempt) ok() bool { return a.err == nil }

// FallbackDetector tries the primary provider once and, on any failure, the
// fallback provider once. The two are never called concurrently and nothing
// is retried beyond the single fallback.
type FallbackDetector struct {
	primary  Provider
	fallback Provider
	maxChars int
	log      *logger.Logger
}

// NewFallbackDetector builds the provider chain from configuration.
func NewFallbackDetector(cfg config.ProvidersConfig, maxChars int, log *logger.Logger) (*FallbackDetector, error) {
	primary, err := newProvider(cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}
	fallback, err := newProvider(cfg.Fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback provider: %w", err)
	}

	return &FallbackDetector{
		primary:  primary,
		fallback: fallback,
		maxChars: maxChars,
		log:      log,
	}, nil
}

func newProvider(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Kind {
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "gemini":
		return NewGeminiClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}

// DetectPII implements pii.SemanticDetector. An error is returned only when
// both providers fail; the caller degrades that to an empty result.
func (d *FallbackDetector) DetectPII(ctx context.Context, text string) (pii.Results, error) {
	if d.maxChars > 0 && len(text) > d.maxChars {
		text = text[:d.maxChars] + "...(truncated)"
	}

	first := d.try(ctx, d.primary, text)
	if first.ok() {
		return first.result, nil
	}

	d.log.Warn("primary provider failed, trying fallback",
		zap.String("provider", d.primary.Name()),
		zap.Error(first.err),
	)

	second := d.try(ctx, d.fallback, text)
	if second.ok() {
		return second.result, nil
	}

	return nil, fmt.Errorf("all providers failed: %s: %v; %s: %v",
		d.primary.Name(), first.err, d.fallback.Name(), second.err)
}

func (d *FallbackDetector) try(ctx context.Context, p Provider, text string) attempt {
	result, err := p.DetectPII(ctx, text)
	return attempt{result: result, err: err}
}
