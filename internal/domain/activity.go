package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity is embedded in exactly one Destination and has no access-control
// identity of its own. Owner is informational: it records who appended it.
type Activity struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Schedule  string     `json:"schedule,omitempty"`
	Priority  *int       `json:"priority,omitempty"`
	Image     string     `json:"image,omitempty"`
	Owner     *uuid.UUID `json:"owner,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ActivityPatch holds the client-writable activity fields.
type ActivityPatch struct {
	Name     *string
	Address  *string
	Schedule *string
	Priority *int
	Image    *string
}

// NewActivity creates an Activity with a fresh identifier.
// ownerID may be uuid.Nil, in which case no owner is recorded.
func NewActivity(p ActivityPatch, ownerID uuid.UUID) (*Activity, error) {
	now := time.Now().UTC()
	a := &Activity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ownerID != uuid.Nil {
		owner := ownerID
		a.Owner = &owner
	}
	a.Apply(p)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply merges the non-nil patch fields onto a.
func (a *Activity) Apply(p ActivityPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Address != nil {
		a.Address = *p.Address
	}
	if p.Schedule != nil {
		a.Schedule = *p.Schedule
	}
	if p.Priority != nil {
		a.Priority = p.Priority
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
}

// Validate checks that the activity has an id and a name.
func (a *Activity) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("activity.id", "cannot be empty", nil)
	}
	if strings.TrimSpace(a.Name) == "" {
		return NewValidationError("activity.name", "is required", nil)
	}
	return nil
}
