package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/redact"
	"github.com/phrazzld/wanderlist-api/internal/store"
)

const destinationColumns = `id, owner_id, name, image, schedule, latitude, longitude, population,
	activities, created_at, updated_at`

// PostgresDestinationStore implements the store.DestinationStore interface.
// The activity sequence is kept in a JSONB column on the destination row, so
// every aggregate write is a single-row statement.
type PostgresDestinationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDestinationStore creates a new PostgreSQL implementation of the DestinationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDestinationStore(db store.DBTX, logger *slog.Logger) *PostgresDestinationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDestinationStore{
		db:     db,
		logger: logger.With(slog.String("component", "destination_store")),
	}
}

// Ensure PostgresDestinationStore implements store.DestinationStore interface
var _ store.DestinationStore = (*PostgresDestinationStore)(nil)

// Create implements store.DestinationStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresDestinationStore) Create(ctx context.Context, d *domain.Destination) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		log.Warn("destination validation failed during create",
			slog.String("error", err.Error()),
			slog.String("destination_id", d.ID.String()))
		return err
	}

	activities, err := encodeActivities(d.Activities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO destinations (` + destinationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		d.ID,
		d.Owner,
		d.Name,
		d.Image,
		d.Schedule,
		d.Latitude,
		d.Longitude,
		d.Population,
		activities,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", d.ID.String()),
			slog.String("owner_id", d.Owner.String()))
		return MapError(err)
	}

	log.Info("destination created",
		slog.String("destination_id", d.ID.String()),
		slog.String("owner_id", d.Owner.String()))
	return nil
}

// GetByID implements store.DestinationStore.GetByID
func (s *PostgresDestinationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	d, err := scanDestination(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("destination not found", slog.String("destination_id", id.String()))
			return nil, store.ErrDestinationNotFound
		}
		log.Error("failed to get destination by ID",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return nil, MapError(err)
	}

	return d, nil
}

// List implements store.DestinationStore.List
func (s *PostgresDestinationStore) List(ctx context.Context) ([]*domain.Destination, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + destinationColumns + ` FROM destinations ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list destinations", redact.ErrorAttr(err))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", redact.ErrorAttr(cerr))
		}
	}()

	destinations := make([]*domain.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, MapError(err)
		}
		destinations = append(destinations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("destinations listed", slog.Int("count", len(destinations)))
	return destinations, nil
}

// Update implements store.DestinationStore.Update
// owner_id and created_at are not part of the SET list.
func (s *PostgresDestinationStore) Update(ctx context.Context, d *domain.Destination) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		log.Warn("destination validation failed during update",
			slog.String("error", err.Error()),
			slog.String("destination_id", d.ID.String()))
		return err
	}

	activities, err := encodeActivities(d.Activities)
	if err != nil {
		return err
	}

	query := `
		UPDATE destinations
		SET name = $1, image = $2, schedule = $3, latitude = $4, longitude = $5,
			population = $6, activities = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(ctx, query,
		d.Name,
		d.Image,
		d.Schedule,
		d.Latitude,
		d.Longitude,
		d.Population,
		activities,
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		log.Error("failed to update destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", d.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDestinationNotFound); err != nil {
		return err
	}

	log.Debug("destination updated",
		slog.String("destination_id", d.ID.String()),
		slog.Int("activity_count", len(d.Activities)))
	return nil
}

// Delete implements store.DestinationStore.Delete
func (s *PostgresDestinationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDestinationNotFound); err != nil {
		return err
	}

	log.Info("destination deleted", slog.String("destination_id", id.String()))
	return nil
}

// FindActivity implements store.DestinationStore.FindActivity
// The containment predicate lets the GIN index on activities narrow the scan.
func (s *PostgresDestinationStore) FindActivity(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	needle, err := json.Marshal([]map[string]string{{"id": activityID.String()}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity lookup: %w", err)
	}

	query := `
		SELECT elem
		FROM destinations d, jsonb_array_elements(d.activities) AS elem
		WHERE d.activities @> $1::jsonb AND elem->>'id' = $2
		LIMIT 1
	`
	var raw []byte
	err = s.db.QueryRowContext(ctx, query, string(needle), activityID.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("activity not found", slog.String("activity_id", activityID.String()))
			return nil, store.ErrActivityNotFound
		}
		log.Error("failed to find activity",
			redact.ErrorAttr(err),
			slog.String("activity_id", activityID.String()))
		return nil, MapError(err)
	}

	var a domain.Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to decode activity %s: %w", activityID, err)
	}
	return &a, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*domain.Destination, error) {
	var (
		d          domain.Destination
		latitude   sql.NullFloat64
		longitude  sql.NullFloat64
		population sql.NullInt64
		activities []byte
	)

	err := row.Scan(
		&d.ID,
		&d.Owner,
		&d.Name,
		&d.Image,
		&d.Schedule,
		&latitude,
		&longitude,
		&population,
		&activities,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if latitude.Valid {
		d.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		d.Longitude = &longitude.Float64
	}
	if population.Valid {
		p := int(population.Int64)
		d.Population = &p
	}

	d.Activities = []domain.Activity{}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &d.Activities); err != nil {
			return nil, fmt.Errorf("failed to decode activities of destination %s: %w", d.ID, err)
		}
	}
	return &d, nil
}

func encodeActivities(activities []domain.Activity) (string, error) {
	if activities == nil {
		activities = []domain.Activity{}
	}
	b, err := json.Marshal(activities)
	if err != nil {
		return "", fmt.Errorf("failed to encode activities: %w", err)
	}
	return string(b), nil
}
