package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coordinate and population bounds enforced by Validate.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// MaxPopulation matches the 32-bit population column.
	MaxPopulation = math.MaxInt32
)

// Destination is the aggregate root of the travel list. Its activities
// are embedded and only ever persisted together with it.
type Destination struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Image      string     `json:"image,omitempty"`
	Schedule   string     `json:"schedule,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Population *int       `json:"population,omitempty"`
	Owner      uuid.UUID  `json:"owner"`
	Activities []Activity `json:"activities"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DestinationPatch holds the client-writable destination fields.
// Nil fields are left untouched by Apply. There is deliberately no owner field.
type DestinationPatch struct {
	Name       *string
	Image      *string
	Schedule   *string
	Latitude   *float64
	Longitude  *float64
	Population *int

	// Activities seeds the sequence in NewDestination. Apply ignores it.
	Activities []ActivityPatch
}

// NewDestination creates a Destination owned by ownerID from the given fields.
// Returns a *ValidationError if the result is invalid.
func NewDestination(p DestinationPatch, ownerID uuid.UUID) (*Destination, error) {
	now := time.Now().UTC()
	d := &Destination{
		ID:         uuid.New(),
		Owner:      ownerID,
		Activities: []Activity{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.Apply(p)

	for _, ap := range p.Activities {
		a, err := NewActivity(ap, ownerID)
		if err != nil {
			return nil, err
		}
		d.AppendActivity(*a)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply merges the non-nil patch fields onto d.
func (d *Destination) Apply(p DestinationPatch) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	if p.Schedule != nil {
		d.Schedule = *p.Schedule
	}
	if p.Latitude != nil {
		d.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		d.Longitude = p.Longitude
	}
	if p.Population != nil {
		d.Population = p.Population
	}
}

// Validate checks the destination and each embedded activity.
func (d *Destination) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", nil)
	}
	if strings.TrimSpace(d.Name) == "" {
		return NewValidationError("name", "is required", nil)
	}
	if d.Owner == uuid.Nil {
		return NewValidationError("owner", "is required", nil)
	}
	if d.Latitude != nil && (*d.Latitude < MinLatitude || *d.Latitude > MaxLatitude) {
		return NewValidationError("latitude", "must be between -90 and 90", nil)
	}
	if d.Longitude != nil && (*d.Longitude < MinLongitude || *d.Longitude > MaxLongitude) {
		return NewValidationError("longitude", "must be between -180 and 180", nil)
	}
	if d.Population != nil && *d.Population < 0 {
		return NewValidationError("population", "cannot be negative", nil)
	}
	if d.Population != nil && *d.Population > MaxPopulation {
		return NewValidationError("population", "is too large", nil)
	}

	for i := range d.Activities {
		if err := d.Activities[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FindActivity returns the index of the embedded activity with the given id, or -1.
func (d *Destination) FindActivity(id uuid.UUID) int {
	for i := range d.Activities {
		if d.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// AppendActivity adds a to the end of the activity sequence.
func (d *Destination) AppendActivity(a Activity) {
	d.Activities = append(d.Activities, a)
}

// RemoveActivity splices out the activity with the given id.
// Reports false when no such activity exists, leaving the sequence unchanged.
func (d *Destination) RemoveActivity(id uuid.UUID) bool {
	i := d.FindActivity(id)
	if i < 0 {
		return false
	}
	d.Activities = append(d.Activities[:i], d.Activities[i+1:]...)
	return true
}

// Touch bumps UpdatedAt.
func (d *Destination) Touch() {
	d.UpdatedAt = time.Now().UTC()
}
