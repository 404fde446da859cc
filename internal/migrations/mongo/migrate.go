package mongo

import (
	"context"
	"fmt"

	bookingrepo "cafebook/internal/bookings/repository"
	caferepo "cafebook/internal/cafes/repository"
	"cafebook/internal/migrations/mongo/validators"
	slotrepo "cafebook/internal/slots/repository"
	"cafebook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UserCollectionName = "user"

var (
	CafeIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	SlotIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "cafe_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	BookingIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "cafe_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "slot_id", Value: 1}}},
	}

	UserIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the service expects, in creation order.
func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: caferepo.CollectionName, Indexes: CafeIndexes, Validator: validators.CafeValidator},
		{Name: slotrepo.CollectionName, Indexes: SlotIndexes, Validator: validators.SlotValidator},
		{Name: bookingrepo.CollectionName, Indexes: BookingIndexes, Validator: validators.BookingValidator},
		{Name: UserCollectionName, Indexes: UserIndexes, Validator: validators.UserValidator},
	}
}

// RunMigration creates missing collections with their schema validators and
// ensures indexes. Existing collections get their validator refreshed; no
// stored data is rewritten.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
