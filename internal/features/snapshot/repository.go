package snapshot

import (
	"context"

	"go-bizops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *Snapshot) error
	List(ctx context.Context, limit int64) ([]Snapshot, error)
}

type SnapshotRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSnapshotRepository(mongodb *database.MongodbDB) SnapshotRepository {
	return &SnapshotRepositoryImpl{
		Collection: mongodb.DB.Collection("business_snapshots"),
	}
}

// Upsert keyed by date, so re-running a day's snapshot replaces it.
func (r *SnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot *Snapshot) error {
	filter := bson.M{"date": snapshot.Date}
	update := bson.M{"$set": snapshot}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *SnapshotRepositoryImpl) List(ctx context.Context, limit int64) ([]Snapshot, error) {
	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshots []Snapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
