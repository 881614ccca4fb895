package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/api"
	"github.com/phrazzld/wanderlist-api/internal/api/middleware"
	"github.com/phrazzld/wanderlist-api/internal/mocks"
	"github.com/phrazzld/wanderlist-api/internal/service"
	"github.com/phrazzld/wanderlist-api/internal/service/auth"
	"github.com/phrazzld/wanderlist-api/internal/store/memstore"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv is a full router over in-memory stores. Bearer tokens are the
// user id itself, "Bearer <uuid>".
type testEnv struct {
	router    http.Handler
	store     *memstore.DestinationStore
	users     *mocks.MockUserStore
	jwt       *mocks.MockJWTService
	passwords *mocks.MockPasswordVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     memstore.NewDestinationStore(quietLogger()),
		users:     mocks.NewMockUserStore(),
		passwords: &mocks.MockPasswordVerifier{ShouldSucceed: true},
	}
	env.jwt = &mocks.MockJWTService{
		GenerateTokenFn: func(_ context.Context, userID uuid.UUID) (string, time.Time, error) {
			return userID.String(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
		},
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			id, err := uuid.Parse(token)
			if err != nil {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: id, TokenType: auth.TokenTypeAccess}, nil
		},
	}

	destinations, err := service.NewDestinationService(env.store, quietLogger())
	require.NoError(t, err)
	activities, err := service.NewActivityService(env.store, quietLogger())
	require.NoError(t, err)
	users := service.NewUserService(env.users, quietLogger())

	r := chi.NewRouter()
	api.RegisterRoutes(r, api.Handlers{
		Auth:         api.NewAuthHandler(users, env.jwt, env.passwords),
		Destinations: api.NewDestinationHandler(destinations, quietLogger()),
		Activities:   api.NewActivityHandler(activities),
	}, middleware.NewAuthMiddleware(env.jwt).Authenticate)
	env.router = r

	return env
}

// do sends body (marshalled unless it is already a string) as the given
// user. A Nil user sends no Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body any, as uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+as.String())
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type destinationBody struct {
	Destination struct {
		ID         uuid.UUID `json:"id"`
		Name       string    `json:"name"`
		Image      string    `json:"image"`
		Owner      uuid.UUID `json:"owner"`
		Population *int      `json:"population"`
		Activities []struct {
			ID    uuid.UUID  `json:"id"`
			Name  string     `json:"name"`
			Owner *uuid.UUID `json:"owner"`
		} `json:"activities"`
	} `json:"destination"`
}

type destinationListBody struct {
	Destinations []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"destinations"`
}

type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

func newRawRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func (e *testEnv) createDestination(t *testing.T, name string, as uuid.UUID) destinationBody {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/destinations", map[string]any{
		"destination": map[string]any{"name": name},
	}, as)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[destinationBody](t, rec)
}

func (e *testEnv) appendActivity(t *testing.T, destinationID uuid.UUID, name string, as uuid.UUID) destinationBody {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/activities/"+destinationID.String(), map[string]any{
		"activity": map[string]any{"name": name},
	}, as)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[destinationBody](t, rec)
}
