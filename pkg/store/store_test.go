package store

import (
	"context"
	"testing"
	"time"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/geometry"
)

func testDeckPlan(id string, createdAt time.Time) *compose.DeckPlan {
	return &compose.DeckPlan{
		ID:        id,
		CreatedAt: createdAt,
		Canvas:    geometry.NewRect(0, 0, 13.333, 7.5),
		Template:  "acme-brand",
		Slides:    make([]compose.SlidePlan, 3),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	plan := testDeckPlan("p1", time.Now())
	if err := s.Put(ctx, plan); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "p1" || got.Template != "acme-brand" || len(got.Slides) != 3 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestMemoryStoreMissingPlan(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodePlanNotFound) {
		t.Errorf("Get(missing) error = %v, want code %v", err, errors.ErrCodePlanNotFound)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, errors.ErrCodePlanNotFound) {
		t.Errorf("Delete(missing) error = %v, want code %v", err, errors.ErrCodePlanNotFound)
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(context.Background(), &compose.DeckPlan{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(no ID) error = %v", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Put(ctx, testDeckPlan(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	if summaries[0].ID != "new" || summaries[2].ID != "old" {
		t.Errorf("order = %s, %s, %s", summaries[0].ID, summaries[1].ID, summaries[2].ID)
	}
	if summaries[0].Slides != 3 {
		t.Errorf("Slides = %d", summaries[0].Slides)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored, got %d", len(limited))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, testDeckPlan("p1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "p1"); !errors.Is(err, errors.ErrCodePlanNotFound) {
		t.Errorf("plan still present after delete: %v", err)
	}
}
