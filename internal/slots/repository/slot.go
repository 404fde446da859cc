package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotserrors "cafebook/internal/slots/errors"
	"cafebook/pkg/config"
	mongoutil "cafebook/pkg/db/mongo"
	"cafebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "slot"
)

type SlotRepository interface {
	// InsertMany stores all slots or none. Slot IDs must be preassigned.
	InsertMany(ctx context.Context, slots []*model.Slot) error
	FindByID(ctx context.Context, id string) (*model.Slot, error)
	FindByCafe(ctx context.Context, cafeID string, date string, limit int) ([]*model.Slot, error)
	// Claim flips an available slot to booked for bookingID. Claiming a slot
	// already held by the same bookingID succeeds, so retries are safe.
	Claim(ctx context.Context, slotID string, bookingID string) error
	// Release returns a slot held by bookingID to available. It reports
	// false when the slot was not held by that booking.
	Release(ctx context.Context, slotID string, bookingID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotRepository(db *mongo.Database, cfg *config.Config) SlotRepository {
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSlotRepository) InsertMany(ctx context.Context, slots []*model.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	docs := make([]any, 0, len(slots))
	ids := make([]primitive.ObjectID, 0, len(slots))
	for _, s := range slots {
		oid, err := mongoutil.ParseID(s.ID, slotserrors.ErrInvalidID)
		if err != nil {
			return err
		}
		ids = append(ids, oid)
		docs = append(docs, toDocument(oid, s))
	}

	insertCtx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	_, err := r.collection.InsertMany(insertCtx, docs)
	if err == nil {
		return nil
	}

	// Partial inserts are possible even with ordered writes; remove whatever
	// made it in, even if the caller has gone away.
	cleanupCtx, cleanupCancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.StoreWriteTimeout)
	defer cleanupCancel()

	if _, delErr := r.collection.DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
		return fmt.Errorf("failed to insert slots: %w (rollback failed: %v)", err, delErr)
	}
	return fmt.Errorf("failed to insert slots: %w", err)
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.Slot, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(id, slotserrors.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var slot model.Slot
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, slotserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	return &slot, nil
}

func (r *mongoSlotRepository) FindByCafe(ctx context.Context, cafeID string, date string, limit int) ([]*model.Slot, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	filter := bson.M{"cafe_id": cafeID}
	if date != "" {
		filter["date"] = date
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := make([]*model.Slot, 0)
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}

	return slots, nil
}

func (r *mongoSlotRepository) Claim(ctx context.Context, slotID string, bookingID string) error {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(slotID, slotserrors.ErrInvalidID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id": objectID,
		"$or": bson.A{
			bson.M{"status": config.SlotAvailable},
			bson.M{"booking_id": bookingID},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"status":     config.SlotBooked,
			"booking_id": bookingID,
			"updated_at": now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return slotserrors.ErrSlotUnavailable
	}

	return nil
}

func (r *mongoSlotRepository) Release(ctx context.Context, slotID string, bookingID string) (bool, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(slotID, slotserrors.ErrInvalidID)
	if err != nil {
		return false, err
	}

	filter := bson.M{
		"_id":        objectID,
		"status":     config.SlotBooked,
		"booking_id": bookingID,
	}
	update := bson.M{
		"$set":   bson.M{"status": config.SlotAvailable, "updated_at": now()},
		"$unset": bson.M{"booking_id": ""},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release slot: %w", err)
	}

	return result.MatchedCount == 1, nil
}

func (r *mongoSlotRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

func toDocument(oid primitive.ObjectID, s *model.Slot) bson.M {
	doc := bson.M{
		"_id":        oid,
		"cafe_id":    s.CafeID,
		"date":       s.Date,
		"start_time": s.StartTime,
		"end_time":   s.EndTime,
		"price":      s.Price,
		"status":     s.Status,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
	if s.BookingID != "" {
		doc["booking_id"] = s.BookingID
	}
	return doc
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
