package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/guard"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/redact"
	"github.com/phrazzld/wanderlist-api/internal/store"
)

// ActivityService manages the activities embedded in a destination.
// Ownership is always checked against the parent destination's owner.
type ActivityService interface {
	// Append adds a new activity to the destination and returns the
	// updated destination.
	Append(
		ctx context.Context,
		destinationID uuid.UUID,
		input domain.ActivityPatch,
		actorID uuid.UUID,
	) (*domain.Destination, error)

	// Update merges the present patch fields onto the activity in place.
	Update(
		ctx context.Context,
		destinationID, activityID uuid.UUID,
		patch domain.ActivityPatch,
		actorID uuid.UUID,
	) error

	// Remove splices the activity out of the destination.
	Remove(ctx context.Context, destinationID, activityID uuid.UUID, actorID uuid.UUID) error

	// GetOne finds an activity by id across all destinations.
	GetOne(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error)
}

type activityServiceImpl struct {
	store  store.DestinationStore
	logger *slog.Logger
}

// NewActivityService creates an ActivityService over the destination store.
// It returns an error if the store is nil.
func NewActivityService(destinationStore store.DestinationStore, logger *slog.Logger) (ActivityService, error) {
	if destinationStore == nil {
		return nil, domain.NewValidationError("destinationStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &activityServiceImpl{
		store:  destinationStore,
		logger: logger.With(slog.String("component", "activity_service")),
	}, nil
}

func (s *activityServiceImpl) Append(
	ctx context.Context,
	destinationID uuid.UUID,
	input domain.ActivityPatch,
	actorID uuid.UUID,
) (*domain.Destination, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.loadParent(ctx, "append", destinationID)
	if err != nil {
		return nil, err
	}
	if err := guard.RequireOwnership(actorID, d.Owner); err != nil {
		log.Warn("activity append denied",
			slog.String("destination_id", destinationID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	a, err := domain.NewActivity(input, actorID)
	if err != nil {
		return nil, err
	}
	d.AppendActivity(*a)
	d.Touch()

	if err := s.store.Update(ctx, d); err != nil {
		log.Error("failed to save destination after append",
			redact.ErrorAttr(err),
			slog.String("destination_id", destinationID.String()))
		return nil, NewServiceError("activity", "append", err)
	}

	log.Info("activity appended",
		slog.String("destination_id", destinationID.String()),
		slog.String("activity_id", a.ID.String()),
		slog.Int("activity_count", len(d.Activities)))
	return d, nil
}

func (s *activityServiceImpl) Update(
	ctx context.Context,
	destinationID, activityID uuid.UUID,
	patch domain.ActivityPatch,
	actorID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.loadParent(ctx, "update", destinationID)
	if err != nil {
		return err
	}
	i := d.FindActivity(activityID)
	if i < 0 {
		return store.ErrActivityNotFound
	}
	if err := guard.RequireOwnership(actorID, d.Owner); err != nil {
		log.Warn("activity update denied",
			slog.String("destination_id", destinationID.String()),
			slog.String("activity_id", activityID.String()),
			slog.String("actor_id", actorID.String()))
		return err
	}

	a := &d.Activities[i]
	a.Apply(patch)
	if err := a.Validate(); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	d.Touch()

	if err := s.store.Update(ctx, d); err != nil {
		log.Error("failed to save destination after activity update",
			redact.ErrorAttr(err),
			slog.String("destination_id", destinationID.String()),
			slog.String("activity_id", activityID.String()))
		return NewServiceError("activity", "update", err)
	}

	log.Info("activity updated",
		slog.String("destination_id", destinationID.String()),
		slog.String("activity_id", activityID.String()))
	return nil
}

func (s *activityServiceImpl) Remove(
	ctx context.Context,
	destinationID, activityID uuid.UUID,
	actorID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.loadParent(ctx, "remove", destinationID)
	if err != nil {
		return err
	}
	if d.FindActivity(activityID) < 0 {
		return store.ErrActivityNotFound
	}
	if err := guard.RequireOwnership(actorID, d.Owner); err != nil {
		log.Warn("activity remove denied",
			slog.String("destination_id", destinationID.String()),
			slog.String("activity_id", activityID.String()),
			slog.String("actor_id", actorID.String()))
		return err
	}

	d.RemoveActivity(activityID)
	d.Touch()

	if err := s.store.Update(ctx, d); err != nil {
		log.Error("failed to save destination after activity removal",
			redact.ErrorAttr(err),
			slog.String("destination_id", destinationID.String()),
			slog.String("activity_id", activityID.String()))
		return NewServiceError("activity", "remove", err)
	}

	log.Info("activity removed",
		slog.String("destination_id", destinationID.String()),
		slog.String("activity_id", activityID.String()))
	return nil
}

func (s *activityServiceImpl) GetOne(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	found, err := s.store.FindActivity(ctx, activityID)
	a, err := guard.EnsureFound(found, err, store.ErrActivityNotFound)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find activity",
			redact.ErrorAttr(err),
			slog.String("activity_id", activityID.String()))
		return nil, NewServiceError("activity", "get", err)
	}
	return a, nil
}

func (s *activityServiceImpl) loadParent(ctx context.Context, op string, destinationID uuid.UUID) (*domain.Destination, error) {
	found, err := s.store.GetByID(ctx, destinationID)
	d, err := guard.EnsureFound(found, err, store.ErrDestinationNotFound)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load parent destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", destinationID.String()))
		return nil, NewServiceError("activity", op, err)
	}
	return d, nil
}
