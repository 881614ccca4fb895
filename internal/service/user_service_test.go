package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/mocks"
	"github.com/phrazzld/wanderlist-api/internal/service"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		mockUserStore := new(mocks.TestifyMockUserStore)
		mockUserStore.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "traveler@example.com" && u.Password == "long-enough-password"
		})).Return(nil)

		userService := service.NewUserService(mockUserStore, quietLogger())
		user, err := userService.CreateUser(ctx, " Traveler@Example.com ", "long-enough-password")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		mockUserStore.AssertExpectations(t)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		mockUserStore := new(mocks.TestifyMockUserStore)
		userService := service.NewUserService(mockUserStore, quietLogger())

		_, err := userService.CreateUser(ctx, "traveler@example.com", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		mockUserStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email exists", func(t *testing.T) {
		mockUserStore := new(mocks.TestifyMockUserStore)
		mockUserStore.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		userService := service.NewUserService(mockUserStore, quietLogger())
		_, err := userService.CreateUser(ctx, "traveler@example.com", "long-enough-password")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("store failure", func(t *testing.T) {
		mockUserStore := new(mocks.TestifyMockUserStore)
		mockUserStore.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		userService := service.NewUserService(mockUserStore, quietLogger())
		_, err := userService.CreateUser(ctx, "traveler@example.com", "long-enough-password")

		var sErr *service.ServiceError
		require.ErrorAs(t, err, &sErr)
		assert.Equal(t, "user", sErr.Service)
	})
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	existing := &domain.User{ID: userID, Email: "traveler@example.com", HashedPassword: "hash"}

	mockUserStore := new(mocks.TestifyMockUserStore)
	mockUserStore.On("GetByID", mock.Anything, userID).Return(existing, nil)
	mockUserStore.On("GetByID", mock.Anything, mock.Anything).Return(nil, store.ErrUserNotFound)
	mockUserStore.On("GetByEmail", mock.Anything, "traveler@example.com").Return(existing, nil)
	mockUserStore.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, store.ErrUserNotFound)

	userService := service.NewUserService(mockUserStore, quietLogger())

	got, err := userService.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, err = userService.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	got, err = userService.GetUserByEmail(ctx, "traveler@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, got.ID)

	_, err = userService.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
