// Package incidentapi exposes the HTTP surface for incident intake,
// listing, and the live SSE feed.
package incidentapi

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/beacon/internal/feed"
	"github.com/linnemanlabs/beacon/internal/incident"
)

// IncidentService defines the business operations incidentapi needs.
type IncidentService interface {
	Report(ctx context.Context, description string) (*incident.Incident, error)
	Get(ctx context.Context, id string) (*incident.Incident, bool, error)
	List(ctx context.Context, limit int) ([]*incident.Incident, error)
}

// FeedBus is the subscription side of the fanout bus.
type FeedBus interface {
	Subscribe() *feed.Subscription
	Unsubscribe(*feed.Subscription)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    IncidentService
	bus    FeedBus
}

// New creates a new API handler.
func New(logger log.Logger, svc IncidentService, bus FeedBus) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("incident service is required"))
	}
	if bus == nil {
		panic(xerrors.New("feed bus is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
		bus:    bus,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/incidents", a.handleReportIncident)
		r.Get("/incidents", a.handleListIncidents)
		r.Get("/incidents/stream", a.handleStream)
		r.Get("/incidents/{id}", a.handleGetIncident)
	})
}
