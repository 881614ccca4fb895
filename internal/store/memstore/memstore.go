// Package memstore provides in-process implementations of the store
// interfaces. Records are copied on every read and write, so callers see the
// same isolation a database gives them. Data is lost when the process exits.
package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// DestinationStore is a map-backed store.DestinationStore.
type DestinationStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*domain.Destination
	logger *slog.Logger
}

var _ store.DestinationStore = (*DestinationStore)(nil)

// NewDestinationStore creates an empty DestinationStore.
func NewDestinationStore(logger *slog.Logger) *DestinationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DestinationStore{
		byID:   make(map[uuid.UUID]*domain.Destination),
		logger: logger.With(slog.String("component", "memory_destination_store")),
	}
}

func (s *DestinationStore) Create(ctx context.Context, d *domain.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[d.ID]; exists {
		return fmt.Errorf("%w: destination %s", store.ErrDuplicate, d.ID)
	}
	s.byID[d.ID] = cloneDestination(d)
	s.logger.Debug("destination created", slog.String("destination_id", d.ID.String()))
	return nil
}

func (s *DestinationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byID[id]
	if !ok {
		return nil, store.ErrDestinationNotFound
	}
	return cloneDestination(d), nil
}

func (s *DestinationStore) List(ctx context.Context) ([]*domain.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Destination, 0, len(s.byID))
	for _, d := range s.byID {
		out = append(out, cloneDestination(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *DestinationStore) Update(ctx context.Context, d *domain.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[d.ID]
	if !ok {
		return store.ErrDestinationNotFound
	}

	next := cloneDestination(d)
	next.Owner = existing.Owner
	next.CreatedAt = existing.CreatedAt
	s.byID[d.ID] = next
	return nil
}

func (s *DestinationStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return store.ErrDestinationNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *DestinationStore) FindActivity(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.byID {
		if i := d.FindActivity(activityID); i >= 0 {
			a := cloneActivity(d.Activities[i])
			return &a, nil
		}
	}
	return nil, store.ErrActivityNotFound
}

// UserStore is a map-backed store.UserStore.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]domain.User
	bcryptCost int
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty UserStore hashing passwords at bcryptCost.
func NewUserStore(bcryptCost int) *UserStore {
	return &UserStore{
		byID:       make(map[uuid.UUID]domain.User),
		bcryptCost: bcryptCost,
	}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return store.ErrEmailExists
		}
	}

	user.HashedPassword = string(hash)
	user.Password = ""
	s.byID[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func cloneDestination(d *domain.Destination) *domain.Destination {
	c := *d
	c.Latitude = clonePtr(d.Latitude)
	c.Longitude = clonePtr(d.Longitude)
	c.Population = clonePtr(d.Population)
	c.Activities = make([]domain.Activity, len(d.Activities))
	for i, a := range d.Activities {
		c.Activities[i] = cloneActivity(a)
	}
	return &c
}

func cloneActivity(a domain.Activity) domain.Activity {
	a.Priority = clonePtr(a.Priority)
	a.Owner = clonePtr(a.Owner)
	return a
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
