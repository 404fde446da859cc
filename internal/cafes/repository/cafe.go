package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	cafeserrors "cafebook/internal/cafes/errors"
	"cafebook/pkg/config"
	mongoutil "cafebook/pkg/db/mongo"
	"cafebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "cafe"
)

type CafeRepository interface {
	Create(ctx context.Context, cafe *model.Cafe) error
	FindByID(ctx context.Context, id string) (*model.Cafe, error)
	FindByCity(ctx context.Context, city string, limit int) ([]*model.Cafe, error)
	// FindIDsByOwner returns the hex ids of every cafe owned by ownerID.
	FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type mongoCafeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCafeRepository(db *mongo.Database, cfg *config.Config) CafeRepository {
	return &mongoCafeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCafeRepository) Create(ctx context.Context, cafe *model.Cafe) error {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	cafe.ID = ""
	cafe.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, cafe)
	if err != nil {
		return fmt.Errorf("failed to create cafe: %w", err)
	}

	cafe.ID = mongoutil.HexID(result.InsertedID)
	return nil
}

func (r *mongoCafeRepository) FindByID(ctx context.Context, id string) (*model.Cafe, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(id, cafeserrors.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var cafe model.Cafe
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cafe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cafeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cafe: %w", err)
	}

	return &cafe, nil
}

func (r *mongoCafeRepository) FindByCity(ctx context.Context, city string, limit int) ([]*model.Cafe, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	filter := bson.M{}
	if city != "" {
		filter["city"] = city
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cafes: %w", err)
	}
	defer cursor.Close(ctx)

	cafes := make([]*model.Cafe, 0)
	if err = cursor.All(ctx, &cafes); err != nil {
		return nil, fmt.Errorf("failed to decode cafes: %w", err)
	}

	return cafes, nil
}

func (r *mongoCafeRepository) FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cafes by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cafes: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}

func (r *mongoCafeRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cafes: %w", err)
	}
	return count, nil
}
