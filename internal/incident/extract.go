package incident

import "context"

// Outcome classifies a location extraction attempt.
type Outcome string

const (
	// OutcomeFound means the extractor produced a usable location.
	OutcomeFound Outcome = "found"

	// OutcomeUnknown means the text contains no recognizable location.
	OutcomeUnknown Outcome = "unknown"

	// OutcomeUnavailable means the external dependency was unreachable,
	// timed out, or returned malformed output.
	OutcomeUnavailable Outcome = "unavailable"
)

// LocationResult is the tri-state result of an extraction attempt.
// Location is only meaningful when Outcome is OutcomeFound.
type LocationResult struct {
	Outcome  Outcome
	Location string
}

// Extractor derives a short location string from free text.
// Implementations never return an error and must bound their own wait:
// every failure mode collapses into OutcomeUnavailable so the intake
// pipeline cannot fail because enrichment failed.
type Extractor interface {
	Extract(ctx context.Context, text string) LocationResult
}

// Publisher delivers finalized incidents to live observers.
type Publisher interface {
	Publish(inc *Incident)
}
