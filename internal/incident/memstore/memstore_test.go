package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/linnemanlabs/beacon/internal/incident"
)

func TestStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	inc, err := s.Create(ctx, "Flood near the old bridge on Main Street.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inc.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if inc.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if inc.ExtractedLocation != nil {
		t.Errorf("ExtractedLocation = %q, want nil", *inc.ExtractedLocation)
	}

	got, ok, err := s.Get(ctx, inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected incident to be found")
	}
	if got.Description != "Flood near the old bridge on Main Street." {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestStore_CreateTrimsDescription(t *testing.T) {
	t.Parallel()

	s := New()
	inc, err := s.Create(context.Background(), "  power outage downtown  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inc.Description != "power outage downtown" {
		t.Errorf("Description = %q, want trimmed", inc.Description)
	}
}

func TestStore_CreateRejectsEmpty(t *testing.T) {
	t.Parallel()

	s := New()
	for _, desc := range []string{"", "   ", "\n\t"} {
		if _, err := s.Create(context.Background(), desc); !errors.Is(err, incident.ErrEmptyDescription) {
			t.Errorf("Create(%q) err = %v, want ErrEmptyDescription", desc, err)
		}
	}
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok, err := s.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing ID")
	}
}

func TestStore_SetLocation(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	inc, err := s.Create(ctx, "Gas leak on Elm Street")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.SetLocation(ctx, inc.ID, "Elm Street")
	if err != nil {
		t.Fatalf("SetLocation: %v", err)
	}
	if got.ExtractedLocation == nil || *got.ExtractedLocation != "Elm Street" {
		t.Errorf("ExtractedLocation = %v, want %q", got.ExtractedLocation, "Elm Street")
	}
}

func TestStore_SetLocationIdempotent(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	inc, _ := s.Create(ctx, "Gas leak on Elm Street")

	if _, err := s.SetLocation(ctx, inc.ID, "Elm Street"); err != nil {
		t.Fatalf("SetLocation: %v", err)
	}

	// a second write must not overwrite the first
	got, err := s.SetLocation(ctx, inc.ID, "Oak Avenue")
	if err != nil {
		t.Fatalf("SetLocation second: %v", err)
	}
	if got.ExtractedLocation == nil || *got.ExtractedLocation != "Elm Street" {
		t.Errorf("ExtractedLocation = %v, want first write %q", got.ExtractedLocation, "Elm Street")
	}
}

func TestStore_SetLocationMissing(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.SetLocation(context.Background(), "nonexistent", "Somewhere")
	if !errors.Is(err, incident.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_ListRecentNewestFirst(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	var ids []string
	for i := range 5 {
		inc, err := s.Create(ctx, fmt.Sprintf("incident %d", i))
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, inc.ID)
	}

	got, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, inc := range got {
		want := ids[len(ids)-1-i]
		if inc.ID != want {
			t.Errorf("position %d: ID = %q, want %q", i, inc.ID, want)
		}
	}
}

func TestStore_ListRecentLimit(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	for i := range 5 {
		_, _ = s.Create(ctx, fmt.Sprintf("incident %d", i))
	}

	got, err := s.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestStore_ListRecentEmpty(t *testing.T) {
	t.Parallel()

	s := New()
	got, err := s.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	inc, _ := s.Create(ctx, "original description")

	inc.Description = "mutated"

	got, _, err := s.Get(ctx, inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "original description" {
		t.Errorf("caller mutation leaked into store: %q", got.Description)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n * 2)

	for i := range n {
		desc := fmt.Sprintf("incident %d", i)

		go func() {
			defer wg.Done()
			inc, err := s.Create(ctx, desc)
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			_, _ = s.SetLocation(ctx, inc.ID, "Somewhere")
		}()

		go func() {
			defer wg.Done()
			_, _ = s.ListRecent(ctx, 10)
		}()
	}

	wg.Wait()
}
