package incident

import (
	"context"
	"errors"
)

// ErrEmptyDescription is returned by Create when the description is
// empty after trimming. It maps to a client error at the HTTP boundary.
var ErrEmptyDescription = errors.New("description must not be empty")

// ErrNotFound is returned by SetLocation when the id is unknown.
var ErrNotFound = errors.New("incident not found")

// MaxListLimit caps ListRecent regardless of what the caller asks for.
const MaxListLimit = 200

// Store is the persistence interface for incidents.
type Store interface {
	// Create assigns the id and creation time, persists the record with
	// no extracted location, and returns the stored copy.
	Create(ctx context.Context, description string) (*Incident, error)

	// Get retrieves an incident by id.
	Get(ctx context.Context, id string) (*Incident, bool, error)

	// SetLocation sets the extracted location exactly once. If the field
	// is already set the call is a no-op returning the current record,
	// which guards against double enrichment.
	SetLocation(ctx context.Context, id, location string) (*Incident, error)

	// ListRecent returns up to limit incidents, newest first by creation
	// time with ties broken by insertion order.
	ListRecent(ctx context.Context, limit int) ([]*Incident, error)
}
