// Package locate implements best-effort location extraction from
// free-text incident reports via an LLM provider. It is the only place
// the external text-understanding dependency is visible; everything it
// can do wrong collapses into a tri-state result.
package locate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/linnemanlabs/beacon/internal/incident"
)

// Provider is the LLM backend used for extraction.
type Provider interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// DefaultTimeout bounds a single extraction call.
const DefaultTimeout = 15 * time.Second

// maxLocationLen guards against the model answering with prose instead
// of a short location string.
const maxLocationLen = 120

const systemPrompt = `You extract locations from incident reports. ` +
	`Reply with only the extracted location, no additional text or formatting.`

// unknownAnswer is the exact reply the prompt instructs the model to
// give when the text names no place. It doubles as the stored sentinel.
const unknownAnswer = incident.LocationUnknown

// Locator implements incident.Extractor on top of a Provider.
type Locator struct {
	provider Provider
	timeout  time.Duration
	logger   log.Logger
}

// New creates a Locator. A non-positive timeout falls back to
// DefaultTimeout.
func New(provider Provider, timeout time.Duration, logger log.Logger) *Locator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Locator{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Extract makes exactly one bounded call to the provider. It never
// returns an error: unreachable, timed out, and malformed all map to
// OutcomeUnavailable, and an answer that names no place maps to
// OutcomeUnknown.
func (l *Locator) Extract(ctx context.Context, text string) incident.LocationResult {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	answer, err := l.provider.Complete(ctx, systemPrompt, buildPrompt(text))
	if err != nil {
		l.logger.Warn(ctx, "location extraction unavailable", "error", err.Error())
		return incident.LocationResult{Outcome: incident.OutcomeUnavailable}
	}

	answer = strings.TrimSpace(strings.Trim(strings.TrimSpace(answer), `"`))
	switch {
	case len(answer) > maxLocationLen:
		l.logger.Warn(ctx, "location extraction returned malformed answer", "answer_len", len(answer))
		return incident.LocationResult{Outcome: incident.OutcomeUnavailable}
	case answer == "" || strings.EqualFold(answer, unknownAnswer):
		return incident.LocationResult{Outcome: incident.OutcomeUnknown}
	}

	return incident.LocationResult{Outcome: incident.OutcomeFound, Location: answer}
}

// buildPrompt carries the few-shot instruction the original reporting
// system used, so the model's answer space stays predictable.
func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract the most prominent location (city, street, landmark, or specific area) ")
	b.WriteString("from the following incident description. If no specific location is clearly ")
	b.WriteString("mentioned, return \"" + unknownAnswer + "\". Do not add any additional text ")
	b.WriteString("or formatting, just the extracted location.\n\n")
	b.WriteString("Examples:\n")
	b.WriteString("\"Flood near the old bridge on Main Street.\" -> \"Main Street\"\n")
	b.WriteString("\"Fire reported in the industrial zone.\" -> \"industrial zone\"\n")
	b.WriteString("\"Earthquake felt across the city.\" -> \"city\"\n")
	b.WriteString("\"Power outage in Sector 7.\" -> \"Sector 7\"\n")
	b.WriteString("\"Accident on highway.\" -> \"" + unknownAnswer + "\"\n")
	b.WriteString("\"Incident at local park.\" -> \"local park\"\n\n")
	fmt.Fprintf(&b, "Incident description: %q", text)
	return b.String()
}
