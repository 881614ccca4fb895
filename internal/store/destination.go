package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
)

// DestinationStore persists destination aggregates. Activities are never
// written on their own: every change to the activity sequence goes through
// Update with the whole aggregate.
type DestinationStore interface {
	// Create saves a new destination together with its activities.
	Create(ctx context.Context, d *domain.Destination) error

	// GetByID retrieves a destination and its embedded activities.
	// Returns ErrDestinationNotFound if the destination does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)

	// List returns every destination, newest first. Never returns a nil slice.
	List(ctx context.Context) ([]*domain.Destination, error)

	// Update replaces the stored aggregate with d in a single write.
	// Owner and CreatedAt are never overwritten.
	// Returns ErrDestinationNotFound if the destination does not exist.
	Update(ctx context.Context, d *domain.Destination) error

	// Delete removes a destination and everything embedded in it.
	// Returns ErrDestinationNotFound if the destination does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindActivity looks up an activity by its id across all destinations.
	// Returns ErrActivityNotFound if no destination embeds it.
	FindActivity(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error)
}
