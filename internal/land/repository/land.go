package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	landerrors "github.com/Andrics/Beyond-Earth/internal/land/errors"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	mongotx "github.com/Andrics/Beyond-Earth/pkg/db/mongo"
	"github.com/Andrics/Beyond-Earth/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "LandPurchases"
)

type mongoLandRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// LandRepository scopes user-facing reads by owner. A purchase belonging to
// another user reads as not found rather than forbidden.
type LandRepository interface {
	Create(ctx context.Context, purchase *model.LandPurchase) error
	FindByIDAndUser(ctx context.Context, id string, userID string) (*model.LandPurchase, error)
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoLandRepository(cfg *config.Config) LandRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLandRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as we cannot wrap SessionContext
// without breaking transaction semantics.
func (r *mongoLandRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoLandRepository) Create(ctx context.Context, purchase *model.LandPurchase) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	purchase.ID = ""
	purchase.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, purchase)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return landerrors.ErrDuplicateCertificate
		}
		return fmt.Errorf("failed to insert land purchase: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		purchase.ID = oid.Hex()
	}

	return nil
}

func (r *mongoLandRepository) FindByIDAndUser(ctx context.Context, id string, userID string) (*model.LandPurchase, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := ownedFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var purchase model.LandPurchase
	err = r.collection.FindOne(ctx, filter).Decode(&purchase)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, landerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find land purchase: %w", err)
	}

	return &purchase, nil
}

func (r *mongoLandRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.LandPurchase, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find land purchases: %w", err)
	}
	defer cursor.Close(ctx)

	var purchases []*model.LandPurchase
	if err = cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode land purchases: %w", err)
	}

	return purchases, nil
}

func (r *mongoLandRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count land purchases: %w", err)
	}

	return count, nil
}

func (r *mongoLandRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func ownedFilter(id string, userID string) (bson.M, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", landerrors.ErrInvalidID, id)
	}

	return bson.M{"_id": objectID, "user_id": userID}, nil
}
