package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/service"
	"github.com/phrazzld/wanderlist-api/internal/store/memstore"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store        *memstore.DestinationStore
	destinations service.DestinationService
	activities   service.ActivityService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := memstore.NewDestinationStore(quietLogger())

	destinations, err := service.NewDestinationService(s, quietLogger())
	require.NoError(t, err)
	activities, err := service.NewActivityService(s, quietLogger())
	require.NoError(t, err)

	return fixture{store: s, destinations: destinations, activities: activities}
}

func (f fixture) createDestination(t *testing.T, name string, owner uuid.UUID) *domain.Destination {
	t.Helper()
	d, err := f.destinations.Create(context.Background(), domain.DestinationPatch{Name: ptr(name)}, owner)
	require.NoError(t, err)
	return d
}
