package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	activitieserrors "github.com/Andrics/Beyond-Earth/internal/activities/errors"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Activities"
)

type mongoActivityRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type ActivityRepository interface {
	FindAvailable(ctx context.Context) ([]*model.Activity, error)
	FindAvailableByType(ctx context.Context, activityType string) (*model.Activity, error)
}

func NewMongoActivityRepository(cfg *config.Config) ActivityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoActivityRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoActivityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoActivityRepository) FindAvailable(ctx context.Context) ([]*model.Activity, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"available": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, nil
}

func (r *mongoActivityRepository) FindAvailableByType(ctx context.Context, activityType string) (*model.Activity, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"type": activityType, "available": true}

	var activity model.Activity
	err := r.collection.FindOne(ctx, filter).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, activitieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	return &activity, nil
}
