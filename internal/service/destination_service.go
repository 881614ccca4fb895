package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/guard"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/redact"
	"github.com/phrazzld/wanderlist-api/internal/store"
)

// DestinationService provides the destination operations.
type DestinationService interface {
	// Create stores a new destination owned by actorID and returns it
	// with its generated id and timestamps.
	Create(ctx context.Context, input domain.DestinationPatch, actorID uuid.UUID) (*domain.Destination, error)

	// List returns every destination, newest first.
	List(ctx context.Context) ([]*domain.Destination, error)

	// GetByID returns a single destination with its activities.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)

	// Update merges the present patch fields onto the destination.
	// Only the owner may update it.
	Update(ctx context.Context, id uuid.UUID, patch domain.DestinationPatch, actorID uuid.UUID) error

	// Delete removes the destination and its activities.
	// Only the owner may delete it.
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type destinationServiceImpl struct {
	store  store.DestinationStore
	logger *slog.Logger
}

// NewDestinationService creates a DestinationService.
// It returns an error if the store is nil.
func NewDestinationService(destinationStore store.DestinationStore, logger *slog.Logger) (DestinationService, error) {
	if destinationStore == nil {
		return nil, domain.NewValidationError("destinationStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &destinationServiceImpl{
		store:  destinationStore,
		logger: logger.With(slog.String("component", "destination_service")),
	}, nil
}

func (s *destinationServiceImpl) Create(
	ctx context.Context,
	input domain.DestinationPatch,
	actorID uuid.UUID,
) (*domain.Destination, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := domain.NewDestination(input, actorID)
	if err != nil {
		log.Debug("rejected destination input", slog.String("reason", err.Error()))
		return nil, err
	}

	if err := s.store.Create(ctx, d); err != nil {
		log.Error("failed to save destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", d.ID.String()))
		return nil, NewServiceError("destination", "create", err)
	}

	log.Info("destination created",
		slog.String("destination_id", d.ID.String()),
		slog.String("owner_id", actorID.String()))
	return d, nil
}

func (s *destinationServiceImpl) List(ctx context.Context) ([]*domain.Destination, error) {
	destinations, err := s.store.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list destinations",
			redact.ErrorAttr(err))
		return nil, NewServiceError("destination", "list", err)
	}
	if destinations == nil {
		destinations = []*domain.Destination{}
	}
	return destinations, nil
}

func (s *destinationServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return s.load(ctx, "get", id)
}

func (s *destinationServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.DestinationPatch,
	actorID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.load(ctx, "update", id)
	if err != nil {
		return err
	}
	if err := guard.RequireOwnership(actorID, d.Owner); err != nil {
		log.Warn("destination update denied",
			slog.String("destination_id", id.String()),
			slog.String("actor_id", actorID.String()))
		return err
	}

	d.Apply(patch)
	if err := d.Validate(); err != nil {
		return err
	}
	d.Touch()

	if err := s.store.Update(ctx, d); err != nil {
		log.Error("failed to update destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return NewServiceError("destination", "update", err)
	}

	log.Info("destination updated", slog.String("destination_id", id.String()))
	return nil
}

func (s *destinationServiceImpl) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.load(ctx, "delete", id)
	if err != nil {
		return err
	}
	if err := guard.RequireOwnership(actorID, d.Owner); err != nil {
		log.Warn("destination delete denied",
			slog.String("destination_id", id.String()),
			slog.String("actor_id", actorID.String()))
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		log.Error("failed to delete destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return NewServiceError("destination", "delete", err)
	}

	log.Info("destination deleted", slog.String("destination_id", id.String()))
	return nil
}

// load fetches a destination through the not-found guard.
func (s *destinationServiceImpl) load(ctx context.Context, op string, id uuid.UUID) (*domain.Destination, error) {
	found, err := s.store.GetByID(ctx, id)
	d, err := guard.EnsureFound(found, err, store.ErrDestinationNotFound)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return nil, NewServiceError("destination", op, err)
	}
	return d, nil
}
