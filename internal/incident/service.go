package incident

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"
)

// Service is the business boundary for incident intake. Each submitted
// report runs its own pipeline: validate and persist synchronously,
// then enrich and publish in the background.
type Service struct {
	store     Store
	extractor Extractor
	publisher Publisher
	logger    log.Logger
	metrics   *Metrics
}

// NewService creates a new incident service.
func NewService(store Store, extractor Extractor, publisher Publisher, logger log.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:     store,
		extractor: extractor,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Report persists a new incident and returns the provisional record
// immediately, before enrichment runs. On validation or store failure
// nothing is enriched or published and the error is surfaced.
// Cancellation of ctx after persistence does not cancel enrichment: a
// reporter's connection loss must not leave an incident unenriched.
func (s *Service) Report(ctx context.Context, description string) (*Incident, error) {
	inc, err := s.store.Create(ctx, description)
	if err != nil {
		s.metrics.IncReport(reportResult(err))
		return nil, err
	}
	s.metrics.IncReport("accepted")

	// detach from the request context so the background step survives it
	go s.enrich(context.WithoutCancel(ctx), inc)

	return inc, nil
}

// Get retrieves an incident by id.
func (s *Service) Get(ctx context.Context, id string) (*Incident, bool, error) {
	return s.store.Get(ctx, id)
}

// List returns recent incidents, newest first. A non-positive or
// oversized limit is normalized to MaxListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]*Incident, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.ListRecent(ctx, limit)
}

// enrich runs the best-effort half of the pipeline for one incident:
// one bounded extraction attempt, one idempotent location write, one
// publish. The record is published exactly once whatever the extraction
// outcome, and only after the store reflects the final state.
func (s *Service) enrich(ctx context.Context, inc *Incident) {
	L := s.logger.With("incident_id", inc.ID)

	start := time.Now()
	res := s.extractor.Extract(ctx, inc.Description)
	s.metrics.ObserveExtraction(string(res.Outcome), time.Since(start).Seconds())

	location := LocationUnavailable
	switch res.Outcome {
	case OutcomeFound:
		location = res.Location
	case OutcomeUnknown:
		location = LocationUnknown
	}

	final, err := s.store.SetLocation(ctx, inc.ID, location)
	if err != nil {
		// the id vanished between persist and enrich; publish the
		// provisional snapshot rather than losing the event
		L.Error(ctx, err, "failed to set extracted location", "outcome", string(res.Outcome))
		final = inc.Clone()
	} else {
		L.Info(ctx, "incident enriched",
			"outcome", string(res.Outcome),
			"extract_seconds", time.Since(start).Seconds(),
		)
	}

	s.publisher.Publish(final)
	s.metrics.IncPublished()
}

func reportResult(err error) string {
	if errors.Is(err, ErrEmptyDescription) {
		return "invalid"
	}
	return "store_error"
}
