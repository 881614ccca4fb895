package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/api/shared"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/sanitize"
)

// getUserIDFromContext extracts the authenticated user's UUID placed in the
// context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// requireActor writes a 401 and reports false when the request carries no
// authenticated user.
func requireActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}
	return actorID, true
}

// pathUUIDs parses each named path parameter, writing a 400 on the first
// malformed one.
func pathUUIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, err := getPathUUID(r, name)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// decodeEnvelope reads a body of the form {"<key>": {...}}, strips
// empty-string fields at every depth and any client-supplied owner, then
// decodes what remains into v and validates it.
func decodeEnvelope(r *http.Request, key string, v interface{}) error {
	var body map[string]any
	if err := shared.DecodeJSON(r, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if body == nil {
		return ErrMissingEnvelope
	}

	raw, ok := body[key]
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingEnvelope, key)
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %q must be an object", ErrMalformedRequest, key)
	}

	payload = sanitize.Blanks(payload)
	delete(payload, "owner")

	if err := shared.Remarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return shared.ValidateRequest(v)
}
