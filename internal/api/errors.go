package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wanderlist-api/internal/api/shared"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/guard"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/service/auth"
	"github.com/phrazzld/wanderlist-api/internal/store"
)

// Request-shape errors raised before a payload reaches a service.
var (
	// ErrMalformedRequest indicates a body that is not a JSON object.
	ErrMalformedRequest = errors.New("malformed request body")

	// ErrMissingEnvelope indicates the body lacks its wrapping key,
	// e.g. {"destination": {...}}.
	ErrMissingEnvelope = fmt.Errorf("%w: missing envelope key", ErrMalformedRequest)
)

const unexpectedErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var vErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, guard.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Malformed input: unparseable body, missing envelope, bad path id
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Well-formed input that breaks a field rule
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &vErrs):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unexpectedErrorMessage
	}

	var vErr *domain.ValidationError
	var vErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"

	case errors.Is(err, guard.ErrForbidden):
		return "You do not own this resource"

	case errors.Is(err, store.ErrDestinationNotFound):
		return "Destination not found"
	case errors.Is(err, store.ErrActivityNotFound):
		return "Activity not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, ErrMissingEnvelope):
		return "Request body is missing its envelope key"
	case errors.Is(err, ErrMalformedRequest):
		return "Invalid request format"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.As(err, &vErr):
		if vErr.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
		}
		return vErr.Message
	case errors.As(err, &vErrs):
		return SanitizeValidationError(vErrs)

	default:
		return unexpectedErrorMessage
	}
}

// SanitizeValidationError renders validator errors as one message per
// field, e.g. "Invalid latitude: out of range".
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}

	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		field := fe.Field()
		if ns := fe.Namespace(); strings.Count(ns, ".") > 1 {
			// Drop the struct name, keep the JSON path.
			field = ns[strings.Index(ns, ".")+1:]
		}
		msgs = append(msgs, fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag())))
	}
	return strings.Join(msgs, "; ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "latitude", "longitude":
		return "out of range"
	case "url", "uri":
		return "invalid URL"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for err. Not-found and forbidden
// responses have an empty body; everything else gets a JSON error with the
// request's trace ID. defaultMsg replaces the generic message on 500s.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	switch status {
	case http.StatusNotFound, http.StatusForbidden:
		logger.FromContext(r.Context()).Debug("request rejected",
			"status_code", status,
			"path", r.URL.Path,
			"reason", GetSafeErrorMessage(err))
		shared.RespondWithStatus(w, status)
		return
	}

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
