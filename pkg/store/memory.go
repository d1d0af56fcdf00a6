package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mkessler/deckplan/pkg/deck/compose"
	"github.com/mkessler/deckplan/pkg/errors"
)

// MemoryStore keeps plans in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]*compose.DeckPlan
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]*compose.DeckPlan)}
}

// Put stores a plan under its ID.
func (s *MemoryStore) Put(_ context.Context, plan *compose.DeckPlan) error {
	if plan.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plan has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	return nil
}

// Get retrieves a plan by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*compose.DeckPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, errors.New(errors.ErrCodePlanNotFound, "plan %q not found", id)
	}
	return plan, nil
}

// List returns plan summaries, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]PlanSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	summaries := make([]PlanSummary, 0, len(s.plans))
	for _, p := range s.plans {
		summaries = append(summaries, PlanSummary{
			ID:        p.ID,
			Template:  p.Template,
			Slides:    len(p.Slides),
			CreatedAt: p.CreatedAt,
		})
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Delete removes a plan.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return errors.New(errors.ErrCodePlanNotFound, "plan %q not found", id)
	}
	delete(s.plans, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
