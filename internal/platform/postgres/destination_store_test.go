package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/platform/postgres"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()
	u, err := domain.NewUser(uuid.NewString()+"@example.com", "integration-password")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(context.Background(), u))
	return u
}

func TestPostgresDestinationStore_CRUD(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresDestinationStore(tx, nil)
		owner := createTestUser(t, tx)

		name := "Porto"
		lat, lng, pop := 41.1579, -8.6291, 231800
		d, err := domain.NewDestination(domain.DestinationPatch{
			Name:       &name,
			Latitude:   &lat,
			Longitude:  &lng,
			Population: &pop,
		}, owner.ID)
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, d))

		got, err := s.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "Porto", got.Name)
		assert.Equal(t, owner.ID, got.Owner)
		require.NotNil(t, got.Latitude)
		assert.InDelta(t, lat, *got.Latitude, 1e-9)
		require.NotNil(t, got.Population)
		assert.Equal(t, pop, *got.Population)
		assert.NotNil(t, got.Activities)
		assert.Empty(t, got.Activities)

		activityName := "Livraria Lello"
		a, err := domain.NewActivity(domain.ActivityPatch{Name: &activityName}, owner.ID)
		require.NoError(t, err)
		got.AppendActivity(*a)
		got.Owner = uuid.New()
		got.UpdatedAt = time.Now().UTC()
		require.NoError(t, s.Update(ctx, got))

		reloaded, err := s.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, reloaded.Owner, "owner must not change on update")
		require.Len(t, reloaded.Activities, 1)
		assert.Equal(t, a.ID, reloaded.Activities[0].ID)

		found, err := s.FindActivity(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, activityName, found.Name)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, list)

		require.NoError(t, s.Delete(ctx, d.ID))
		_, err = s.GetByID(ctx, d.ID)
		assert.ErrorIs(t, err, store.ErrDestinationNotFound)
	})
}

func TestPostgresDestinationStore_NotFound(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresDestinationStore(tx, nil)

		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrDestinationNotFound)

		assert.ErrorIs(t, s.Delete(ctx, uuid.New()), store.ErrDestinationNotFound)

		name := "Ghost"
		d, err := domain.NewDestination(domain.DestinationPatch{Name: &name}, uuid.New())
		require.NoError(t, err)
		assert.ErrorIs(t, s.Update(ctx, d), store.ErrDestinationNotFound)

		_, err = s.FindActivity(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrActivityNotFound)
	})
}

func TestPostgresDestinationStore_UnknownOwner(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		s := postgres.NewPostgresDestinationStore(tx, nil)

		name := "Orphan"
		d, err := domain.NewDestination(domain.DestinationPatch{Name: &name}, uuid.New())
		require.NoError(t, err)

		err = s.Create(context.Background(), d)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgresUserStore(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)

		u := createTestUser(t, tx)

		byEmail, err := s.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.NotEmpty(t, byEmail.HashedPassword)

		_, err = s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_DuplicateEmail(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)

		u := createTestUser(t, tx)
		dup, err := domain.NewUser(u.Email, "another-long-password")
		require.NoError(t, err)

		assert.ErrorIs(t, s.Create(ctx, dup), store.ErrEmailExists)
	})
}
