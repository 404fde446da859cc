package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "cafebook/internal/bookings/errors"
	"cafebook/pkg/config"
	mongoutil "cafebook/pkg/db/mongo"
	"cafebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "booking"
)

type BookingRepository interface {
	// Insert stores a booking whose ID has already been assigned.
	Insert(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByCafeIDs(ctx context.Context, cafeIDs []string, limit int) ([]*model.Booking, error)
	// Cancel marks a booking cancelled and returns the updated record. An
	// already cancelled booking is returned together with ErrAlreadyCancelled.
	Cancel(ctx context.Context, id string, at time.Time) (*model.Booking, error)
	Count(ctx context.Context) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database, cfg *config.Config) BookingRepository {
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(booking.ID, bookingserrors.ErrInvalidID)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, toDocument(objectID, booking)); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(id, bookingserrors.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByCafeIDs(ctx context.Context, cafeIDs []string, limit int) ([]*model.Booking, error) {
	if len(cafeIDs) == 0 {
		return []*model.Booking{}, nil
	}

	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"cafe_id": bson.M{"$in": cafeIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Cancel(ctx context.Context, id string, at time.Time) (*model.Booking, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := mongoutil.ParseID(id, bookingserrors.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$ne": config.Cancelled},
	}
	update := bson.M{
		"$set": bson.M{
			"status":       config.Cancelled,
			"cancelled_at": at,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Nothing matched: either missing or already cancelled.
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, bookingserrors.ErrAlreadyCancelled
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func toDocument(oid primitive.ObjectID, b *model.Booking) bson.M {
	doc := bson.M{
		"_id":            oid,
		"cafe_id":        b.CafeID,
		"slot_id":        b.SlotID,
		"customer_name":  b.CustomerName,
		"customer_email": b.CustomerEmail,
		"status":         b.Status,
		"created_at":     b.CreatedAt,
	}
	if b.CustomerPhone != nil {
		doc["customer_phone"] = *b.CustomerPhone
	}
	if b.CancelledAt != nil {
		doc["cancelled_at"] = *b.CancelledAt
	}
	return doc
}
