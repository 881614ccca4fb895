package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/wanderlist-api/internal/api"
	"github.com/phrazzld/wanderlist-api/internal/api/shared"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/guard"
	"github.com/phrazzld/wanderlist-api/internal/service"
	"github.com/phrazzld/wanderlist-api/internal/service/auth"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", guard.ErrForbidden, http.StatusForbidden},
		{"destination not found", store.ErrDestinationNotFound, http.StatusNotFound},
		{"activity not found", store.ErrActivityNotFound, http.StatusNotFound},
		{"wrapped not found", service.NewServiceError("destination", "get", store.ErrDestinationNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"missing envelope", api.ErrMissingEnvelope, http.StatusBadRequest},
		{"malformed", fmt.Errorf("%w: eof", api.ErrMalformedRequest), http.StatusBadRequest},
		{"bad path id", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"validation", domain.NewValidationError("name", "is required", nil), http.StatusUnprocessableEntity},
		{"stored entity without id", (&domain.Destination{Name: "Paris"}).Validate(), http.StatusUnprocessableEntity},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired", auth.ErrExpiredToken, "Token expired"},
		{"forbidden", guard.ErrForbidden, "You do not own this resource"},
		{"destination", store.ErrDestinationNotFound, "Destination not found"},
		{"field", domain.NewValidationError("latitude", "must be between -90 and 90", nil), "Invalid latitude: must be between -90 and 90"},
		{"no field", domain.NewValidationError("", "bad input", nil), "bad input"},
		{"internal detail hidden", errors.New("pq: password authentication failed for user admin"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Run("not found has an empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), store.ErrDestinationNotFound, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("forbidden has an empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.HandleAPIError(rec, httptest.NewRequest(http.MethodPatch, "/x", nil), guard.ErrForbidden, "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("validation carries the trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req = req.WithContext(shared.WithTraceID(req.Context(), "trace-123"))
		rec := httptest.NewRecorder()

		api.HandleAPIError(rec, req, domain.NewValidationError("name", "is required", nil), "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid name: is required","trace_id":"trace-123"}`, rec.Body.String())
	})

	t.Run("default message only replaces 500s", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("boom"), "Failed to load")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to load"}`, rec.Body.String())

		rec = httptest.NewRecorder()
		api.HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), api.ErrMissingEnvelope, "Failed to load")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Request body is missing its envelope key"}`, rec.Body.String())
	})

	t.Run("unexpected errors are generic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		api.HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/x", nil),
			errors.New("postgres://admin:secret@db/wanderlist refused"), "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "secret")
	})
}
