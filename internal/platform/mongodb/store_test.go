package mongodb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/platform/mongodb"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testMongoURLEnv = "WANDERLIST_TEST_MONGO_URL"

// connectTest opens a throwaway database per test and drops it on cleanup.
func connectTest(t *testing.T) *mongodb.Client {
	t.Helper()

	uri := os.Getenv(testMongoURLEnv)
	if uri == "" {
		t.Skipf("%s not set, skipping MongoDB integration test", testMongoURLEnv)
	}

	dbName := "wanderlist_test_" + uuid.NewString()[:8]
	client, err := mongodb.Connect(context.Background(), uri, dbName, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Database().Drop(ctx)
		_ = client.Close(ctx)
	})
	return client
}

func TestMongoDestinationStore_CRUD(t *testing.T) {
	client := connectTest(t)
	ctx := context.Background()
	s := mongodb.NewMongoDestinationStore(client.Database(), nil)
	owner := uuid.New()

	name := "Reykjavik"
	pop := 131136
	d, err := domain.NewDestination(domain.DestinationPatch{Name: &name, Population: &pop}, owner)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, d))
	assert.ErrorIs(t, s.Create(ctx, d), store.ErrDuplicate)

	got, err := s.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, owner, got.Owner)
	assert.Empty(t, got.Activities)

	activityName := "Hallgrimskirkja"
	a, err := domain.NewActivity(domain.ActivityPatch{Name: &activityName}, owner)
	require.NoError(t, err)
	got.AppendActivity(*a)
	got.Owner = uuid.New()
	got.Touch()
	require.NoError(t, s.Update(ctx, got))

	reloaded, err := s.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, reloaded.Owner, "owner must not change on update")
	require.Len(t, reloaded.Activities, 1)

	found, err := s.FindActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, activityName, found.Name)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, d.ID))
	_, err = s.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, store.ErrDestinationNotFound)
}

func TestMongoDestinationStore_NotFound(t *testing.T) {
	client := connectTest(t)
	ctx := context.Background()
	s := mongodb.NewMongoDestinationStore(client.Database(), nil)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrDestinationNotFound)
	assert.ErrorIs(t, s.Delete(ctx, uuid.New()), store.ErrDestinationNotFound)

	_, err = s.FindActivity(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrActivityNotFound)
}

func TestMongoUserStore(t *testing.T) {
	client := connectTest(t)
	ctx := context.Background()
	s := mongodb.NewMongoUserStore(client.Database(), bcrypt.MinCost, nil)

	u, err := domain.NewUser("Traveler@Example.com", "integration-password")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, u))
	assert.Empty(t, u.Password)

	byEmail, err := s.GetByEmail(ctx, "TRAVELER@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(byEmail.HashedPassword), []byte("integration-password")))

	dup, err := domain.NewUser("traveler@example.com", "another-long-password")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Create(ctx, dup), store.ErrEmailExists)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
