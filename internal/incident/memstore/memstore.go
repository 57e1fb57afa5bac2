// Package memstore provides an in-memory implementation of incident.Store.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/beacon/internal/incident"
)

// Store holds incidents in memory. Suitable for dev/testing; records do
// not survive a restart.
type Store struct {
	mu        sync.RWMutex
	incidents map[string]*incident.Incident
	order     []string // insertion order, oldest first
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		incidents: make(map[string]*incident.Incident),
	}
}

// Create assigns the id and creation time and stores the record with no
// extracted location.
func (s *Store) Create(_ context.Context, description string) (*incident.Incident, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, incident.ErrEmptyDescription
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc := &incident.Incident{
		ID:          ulid.Make().String(),
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.incidents[inc.ID] = inc
	s.order = append(s.order, inc.ID)

	return inc.Clone(), nil
}

// Get retrieves an incident by id. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*incident.Incident, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, false, nil
	}
	return inc.Clone(), true, nil
}

// SetLocation sets the extracted location once. A second call is a
// no-op returning the current record.
func (s *Store) SetLocation(_ context.Context, id, location string) (*incident.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, incident.ErrNotFound
	}
	if inc.ExtractedLocation == nil {
		inc.ExtractedLocation = &location
	}
	return inc.Clone(), nil
}

// ListRecent returns up to limit incidents, newest first. Records are
// appended under the same lock that assigns CreatedAt, so reverse
// insertion order is creation time descending with insertion-order
// tiebreak.
func (s *Store) ListRecent(_ context.Context, limit int) ([]*incident.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > incident.MaxListLimit {
		limit = incident.MaxListLimit
	}
	if limit > len(s.order) {
		limit = len(s.order)
	}

	out := make([]*incident.Incident, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.incidents[s.order[i]].Clone())
	}
	return out, nil
}
