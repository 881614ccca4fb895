// Package guard holds the checks every mutating operation runs before it
// touches stored state: the record must exist and the actor must own it.
package guard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/store"
)

// ErrForbidden is returned when the acting user does not own the resource.
var ErrForbidden = errors.New("resource is owned by another user")

// RequireOwnership succeeds only when actorID is the recorded owner.
// A resource without an owner can never be mutated.
func RequireOwnership(actorID, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("%w: resource has no recorded owner", ErrForbidden)
	}
	if actorID == uuid.Nil || actorID != ownerID {
		return ErrForbidden
	}
	return nil
}

// EnsureFound normalizes a lookup result. A nil value or any error wrapping
// store.ErrNotFound becomes notFound; other errors are returned untouched.
func EnsureFound[T any](value *T, err error, notFound error) (*T, error) {
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	if value == nil {
		return nil, notFound
	}
	return value, nil
}
