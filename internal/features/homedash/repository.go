package homedash

import (
	"context"
	"time"

	"go-bizops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DashboardRepository interface {
	Get(ctx context.Context, userID string) (*DashboardRecord, error)
	Upsert(ctx context.Context, userID string, state DashboardState) error
}

type DashboardRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDashboardRepository(mongodb *database.MongodbDB) DashboardRepository {
	return &DashboardRepositoryImpl{
		Collection: mongodb.DB.Collection("home_dashboards"),
	}
}

func (r *DashboardRepositoryImpl) Get(ctx context.Context, userID string) (*DashboardRecord, error) {
	var record DashboardRecord
	err := r.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *DashboardRepositoryImpl) Upsert(ctx context.Context, userID string, state DashboardState) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": DashboardRecord{
		UserID:         userID,
		DashboardState: state,
		UpdatedAt:      time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}
