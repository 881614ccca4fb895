package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/wanderlist-api/internal/domain"
	"github.com/phrazzld/wanderlist-api/internal/platform/logger"
	"github.com/phrazzld/wanderlist-api/internal/redact"
	"github.com/phrazzld/wanderlist-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDestinationStore implements store.DestinationStore on a MongoDB collection.
type MongoDestinationStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.DestinationStore = (*MongoDestinationStore)(nil)

// NewMongoDestinationStore creates a store over the destinations collection of db.
func NewMongoDestinationStore(db *mongo.Database, logger *slog.Logger) *MongoDestinationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoDestinationStore{
		coll:   db.Collection(DestinationsCollection),
		logger: logger.With(slog.String("component", "destination_store")),
	}
}

func (s *MongoDestinationStore) Create(ctx context.Context, d *domain.Destination) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return err
	}

	if _, err := s.coll.InsertOne(ctx, toDestinationDocument(d)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: destination %s", store.ErrDuplicate, d.ID)
		}
		log.Error("failed to insert destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", d.ID.String()))
		return store.NewStoreError("destination", "create", "insert failed", err)
	}

	log.Info("destination created",
		slog.String("destination_id", d.ID.String()),
		slog.String("owner_id", d.Owner.String()))
	return nil
}

func (s *MongoDestinationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	var doc destinationDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrDestinationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", id.String()))
		return nil, store.NewStoreError("destination", "get", "find failed", err)
	}
	return doc.toDomain()
}

func (s *MongoDestinationStore) List(ctx context.Context) ([]*domain.Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, store.NewStoreError("destination", "list", "find failed", err)
	}

	var docs []destinationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("destination", "list", "decode failed", err)
	}

	out := make([]*domain.Destination, 0, len(docs))
	for _, doc := range docs {
		d, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Update writes every mutable field and the whole activity array in one
// $set. owner and createdAt are left as stored.
func (s *MongoDestinationStore) Update(ctx context.Context, d *domain.Destination) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return err
	}

	doc := toDestinationDocument(d)
	update := bson.M{"$set": bson.M{
		"name":       doc.Name,
		"image":      doc.Image,
		"schedule":   doc.Schedule,
		"latitude":   doc.Latitude,
		"longitude":  doc.Longitude,
		"population": doc.Population,
		"activities": doc.Activities,
		"updatedAt":  doc.UpdatedAt,
	}}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		log.Error("failed to update destination",
			redact.ErrorAttr(err),
			slog.String("destination_id", doc.ID))
		return store.NewStoreError("destination", "update", "update failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrDestinationNotFound
	}
	return nil
}

func (s *MongoDestinationStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return store.NewStoreError("destination", "delete", "delete failed", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrDestinationNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("destination deleted",
		slog.String("destination_id", id.String()))
	return nil
}

// FindActivity matches on the embedded _id and projects only the matching
// array element back.
func (s *MongoDestinationStore) FindActivity(ctx context.Context, activityID uuid.UUID) (*domain.Activity, error) {
	filter := bson.M{"activities._id": activityID.String()}
	opts := options.FindOne().SetProjection(bson.M{"activities.$": 1})

	var doc struct {
		Activities []activityDocument `bson:"activities"`
	}
	err := s.coll.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrActivityNotFound
		}
		return nil, store.NewStoreError("activity", "get", "find failed", err)
	}
	if len(doc.Activities) == 0 {
		return nil, store.ErrActivityNotFound
	}
	return doc.Activities[0].toDomain()
}
