package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
)

// Identifiers are stored as canonical UUID strings in _id.

type destinationDocument struct {
	ID         string             `bson:"_id"`
	Owner      string             `bson:"owner"`
	Name       string             `bson:"name"`
	Image      string             `bson:"image,omitempty"`
	Schedule   string             `bson:"schedule,omitempty"`
	Latitude   *float64           `bson:"latitude,omitempty"`
	Longitude  *float64           `bson:"longitude,omitempty"`
	Population *int               `bson:"population,omitempty"`
	Activities []activityDocument `bson:"activities"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

type activityDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Address   string    `bson:"address,omitempty"`
	Schedule  string    `bson:"schedule,omitempty"`
	Priority  *int      `bson:"priority,omitempty"`
	Image     string    `bson:"image,omitempty"`
	Owner     string    `bson:"owner,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type userDocument struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"hashedPassword"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func toDestinationDocument(d *domain.Destination) destinationDocument {
	doc := destinationDocument{
		ID:         d.ID.String(),
		Owner:      d.Owner.String(),
		Name:       d.Name,
		Image:      d.Image,
		Schedule:   d.Schedule,
		Latitude:   d.Latitude,
		Longitude:  d.Longitude,
		Population: d.Population,
		Activities: make([]activityDocument, len(d.Activities)),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for i := range d.Activities {
		doc.Activities[i] = toActivityDocument(&d.Activities[i])
	}
	return doc
}

func (doc destinationDocument) toDomain() (*domain.Destination, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination id %q: %w", doc.ID, err)
	}
	owner, err := uuid.Parse(doc.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id on destination %s: %w", doc.ID, err)
	}

	d := &domain.Destination{
		ID:         id,
		Owner:      owner,
		Name:       doc.Name,
		Image:      doc.Image,
		Schedule:   doc.Schedule,
		Latitude:   doc.Latitude,
		Longitude:  doc.Longitude,
		Population: doc.Population,
		Activities: make([]domain.Activity, 0, len(doc.Activities)),
		CreatedAt:  doc.CreatedAt.UTC(),
		UpdatedAt:  doc.UpdatedAt.UTC(),
	}
	for _, ad := range doc.Activities {
		a, err := ad.toDomain()
		if err != nil {
			return nil, err
		}
		d.Activities = append(d.Activities, *a)
	}
	return d, nil
}

func toActivityDocument(a *domain.Activity) activityDocument {
	doc := activityDocument{
		ID:        a.ID.String(),
		Name:      a.Name,
		Address:   a.Address,
		Schedule:  a.Schedule,
		Priority:  a.Priority,
		Image:     a.Image,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Owner != nil {
		doc.Owner = a.Owner.String()
	}
	return doc
}

func (doc activityDocument) toDomain() (*domain.Activity, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid activity id %q: %w", doc.ID, err)
	}

	a := &domain.Activity{
		ID:        id,
		Name:      doc.Name,
		Address:   doc.Address,
		Schedule:  doc.Schedule,
		Priority:  doc.Priority,
		Image:     doc.Image,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}
	if doc.Owner != "" {
		owner, err := uuid.Parse(doc.Owner)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id on activity %s: %w", doc.ID, err)
		}
		a.Owner = &owner
	}
	return a, nil
}
