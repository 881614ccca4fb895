package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// DestinationStore is a testify mock of store.DestinationStore, used where
// a test needs the store to fail.
type DestinationStore struct {
	mock.Mock
}

var _ store.DestinationStore = (*DestinationStore)(nil)

func (m *DestinationStore) Create(ctx context.Context, d *domain.Destination) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DestinationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*domain.Destination); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DestinationStore) List(ctx context.Context) ([]*domain.Destination, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*domain.Destination); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DestinationStore) Update(ctx context.Context, d *domain.Destination) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DestinationStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DestinationStore) FindActivity(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	args := m.Called(ctx, activityID)
	if a, ok := args.Get(0).(*domain.Activity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
