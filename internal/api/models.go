package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
)

// Envelope keys wrapping request and response bodies.
const (
	DestinationKey  = "destination"
	DestinationsKey = "destinations"
	ActivityKey     = "activity"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT bearer token for mutating routes
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// DestinationRequest is the typed body under the "destination" key.
// Absent fields are nil. There is no owner field: the owner always comes
// from the authenticated user.
type DestinationRequest struct {
	Name       *string  `json:"name"       validate:"omitempty,max=200"`
	Image      *string  `json:"image"      validate:"omitempty,max=2048"`
	Schedule   *string  `json:"schedule"   validate:"omitempty,max=500"`
	Latitude   *float64 `json:"latitude"   validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude"  validate:"omitempty,longitude"`
	Population *int     `json:"population" validate:"omitempty,gte=0,lte=2147483647"`

	// Activities is only read on create.
	Activities []ActivityRequest `json:"activities" validate:"omitempty,max=100,dive"`
}

// Patch converts the request into a domain patch.
func (r DestinationRequest) Patch() domain.DestinationPatch {
	return domain.DestinationPatch{
		Name:       r.Name,
		Image:      r.Image,
		Schedule:   r.Schedule,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Population: r.Population,
		Activities: activityPatches(r.Activities),
	}
}

func activityPatches(reqs []ActivityRequest) []domain.ActivityPatch {
	if len(reqs) == 0 {
		return nil
	}
	patches := make([]domain.ActivityPatch, len(reqs))
	for i, req := range reqs {
		patches[i] = req.Patch()
	}
	return patches
}

// ActivityRequest is the typed body under the "activity" key.
type ActivityRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=200"`
	Address  *string `json:"address"  validate:"omitempty,max=500"`
	Schedule *string `json:"schedule" validate:"omitempty,max=500"`
	Priority *int    `json:"priority"`
	Image    *string `json:"image"    validate:"omitempty,max=2048"`
}

// Patch converts the request into a domain patch.
func (r ActivityRequest) Patch() domain.ActivityPatch {
	return domain.ActivityPatch{
		Name:     r.Name,
		Address:  r.Address,
		Schedule: r.Schedule,
		Priority: r.Priority,
		Image:    r.Image,
	}
}

// DestinationResponse wraps a single destination.
type DestinationResponse struct {
	Destination *domain.Destination `json:"destination"`
}

// DestinationListResponse wraps the destination list.
type DestinationListResponse struct {
	Destinations []*domain.Destination `json:"destinations"`
}

// ActivityResponse wraps a single activity.
type ActivityResponse struct {
	Activity *domain.Activity `json:"activity"`
}

func formatExpiry(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
