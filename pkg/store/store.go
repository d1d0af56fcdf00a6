// Package store persists deck plans for later retrieval by ID.
//
// Two backends are available: an in-memory store for tests and single-run
// CLI usage, and a MongoDB store backing the API server. Both implement
// [Store] and map missing plans to PLAN_NOT_FOUND.
package store

import (
	"context"
	"time"

	"github.com/mkessler/deckplan/pkg/deck/compose"
)

// Store is the interface all plan stores implement.
type Store interface {
	// Put stores a plan under its ID, replacing any existing plan.
	Put(ctx context.Context, plan *compose.DeckPlan) error

	// Get retrieves a plan by ID. A missing plan is a PLAN_NOT_FOUND error.
	Get(ctx context.Context, id string) (*compose.DeckPlan, error)

	// List returns summaries of stored plans, newest first.
	List(ctx context.Context, limit int) ([]PlanSummary, error)

	// Delete removes a plan. Deleting a missing plan is a PLAN_NOT_FOUND
	// error, so callers can distinguish stale IDs.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// PlanSummary is the listing view of a stored plan.
type PlanSummary struct {
	ID        string    `json:"id" bson:"_id"`
	Template  string    `json:"template,omitempty" bson:"template,omitempty"`
	Slides    int       `json:"slides" bson:"slides"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DefaultListLimit bounds List when callers pass a non-positive limit.
const DefaultListLimit = 50
