package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SirPenguin555/Whats-That-Color/internal/model"
)

// HistoryRepo stores recorded plays
type HistoryRepo interface {
	Create(ctx context.Context, entry *model.ColorEntry) error
	// List returns a player's entries newest first. A nil minScore disables the overall-score filter.
	List(ctx context.Context, playerID string, limit int, minScore *float64) ([]*model.ColorEntry, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

// NewHistoryRepo creates the Mongo-backed history store
func NewHistoryRepo(db *mongo.Database) HistoryRepo {
	return &historyRepo{
		collection: db.Collection("color_history"),
	}
}

// EnsureHistoryIndexes creates the per-player timeline index
func EnsureHistoryIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("color_history").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *historyRepo) Create(ctx context.Context, entry *model.ColorEntry) error {
	prepareEntry(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *historyRepo) List(ctx context.Context, playerID string, limit int, minScore *float64) ([]*model.ColorEntry, error) {
	filter := bson.M{"playerId": playerID}
	if minScore != nil {
		filter["scores.overall"] = bson.M{"$gte": *minScore}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]*model.ColorEntry, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func prepareEntry(entry *model.ColorEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
}
