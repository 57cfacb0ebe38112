package project

import (
	"context"
	"errors"
	"time"

	"go-bizops/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	ListRecent(ctx context.Context, limit int64) ([]Project, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error)
}

type ProjectRepositoryImpl struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *database.MongodbDB) ProjectRepository {
	return &ProjectRepositoryImpl{
		collection: db.DB.Collection("projects"),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *ProjectRepositoryImpl) Get(ctx context.Context, id string) (*Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var project Project
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) ListRecent(ctx context.Context, limit int64) ([]Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"is_opportunity": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
