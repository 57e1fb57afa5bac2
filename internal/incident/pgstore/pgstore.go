// Package pgstore provides a PostgreSQL implementation of incident.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/beacon/internal/incident"
)

var tracer = otel.Tracer("github.com/linnemanlabs/beacon/internal/incident/pgstore")

//go:embed schema.sql
var schema string

// Store persists incidents in PostgreSQL. Once Create returns the
// record is durable subject to the database's own guarantees.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Store. The pool stays
// owned by the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const incidentColumns = `id, description, extracted_location, created_at`

// Create assigns the id, lets the database stamp created_at, and
// returns the stored record.
func (s *Store) Create(ctx context.Context, description string) (*incident.Incident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Create", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, incident.ErrEmptyDescription
	}

	id := ulid.Make().String()
	query := `INSERT INTO incidents (id, description) VALUES ($1, $2) RETURNING ` + incidentColumns

	inc, err := scanIncident(s.pool.QueryRow(ctx, query, id, description))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("insert incident: %w", err)
	}
	return inc, nil
}

// Get retrieves an incident by id.
func (s *Store) Get(ctx context.Context, id string) (*incident.Incident, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	inc, err := scanIncident(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("select incident: %w", err)
	}
	return inc, true, nil
}

// SetLocation writes the extracted location only when it is still
// unset, then returns whatever the row holds. The conditional UPDATE
// makes concurrent enrichment attempts settle on the first write.
func (s *Store) SetLocation(ctx context.Context, id, location string) (*incident.Incident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.SetLocation", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPDATE"),
	))
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`UPDATE incidents SET extracted_location = $2 WHERE id = $1 AND extracted_location IS NULL`,
		id, location,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("update location: %w", err)
	}

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	inc, err := scanIncident(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, incident.ErrNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("reread incident: %w", err)
	}
	return inc, nil
}

// ListRecent returns up to limit incidents, newest first. seq breaks
// created_at ties by insertion order.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*incident.Incident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.ListRecent", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	if limit <= 0 || limit > incident.MaxListLimit {
		limit = incident.MaxListLimit
	}

	query := `SELECT ` + incidentColumns + ` FROM incidents ORDER BY created_at DESC, seq DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	var out []*incident.Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		out = append(out, inc)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}
	return out, nil
}

func scanIncident(row pgx.Row) (*incident.Incident, error) {
	var inc incident.Incident
	if err := row.Scan(&inc.ID, &inc.Description, &inc.ExtractedLocation, &inc.CreatedAt); err != nil {
		return nil, err
	}
	return &inc, nil
}
