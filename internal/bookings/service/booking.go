package service

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingserrors "cafebook/internal/bookings/errors"
	"cafebook/internal/bookings/events"
	"cafebook/internal/bookings/repository"
	bookingvalidator "cafebook/internal/bookings/validator"
	slotserrors "cafebook/internal/slots/errors"
	"cafebook/pkg/config"
	mongoutil "cafebook/pkg/db/mongo"
	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/model"
	"cafebook/pkg/sanitizer"
	"cafebook/pkg/validator"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MessageConfirmed = "Booking confirmed"
	MessageCreated   = "Booking created"
	MessageCancelled = "Booking cancelled"
)

// SlotStore is the part of the slot repository bookings depend on.
type SlotStore interface {
	FindByID(ctx context.Context, id string) (*model.Slot, error)
	Claim(ctx context.Context, slotID string, bookingID string) error
	Release(ctx context.Context, slotID string, bookingID string) (bool, error)
}

// CafeStore resolves cafe ownership for the owner dashboard.
type CafeStore interface {
	FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.BookingResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.BookingResult, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	slots     SlotStore
	cafes     CafeStore
	publisher events.Publisher
	validator *bookingvalidator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	slots SlotStore,
	cafes CafeStore,
	publisher events.Publisher,
	validator *bookingvalidator.BookingValidator,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		slots:     slots,
		cafes:     cafes,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
	}
}

// Create reserves a slot and records the booking. The slot is claimed with a
// single conditional update before the booking is written, and released again
// if the write fails, so two requests can never both hold the same slot.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.BookingResult, error) {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	slot, err := s.slots.FindByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) || errors.Is(err, slotserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Slot")
		}
		s.cfg.Log.Error("Failed to retrieve slot", "slot_id", booking.SlotID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slot", err)
	}

	if slot.Status != config.SlotAvailable {
		return nil, apperrors.InvalidState("Slot is not available")
	}

	if booking.CafeID == "" {
		booking.CafeID = slot.CafeID
	} else if booking.CafeID != slot.CafeID {
		s.cfg.Log.Warn("Booking cafe does not match slot",
			"slot_id", booking.SlotID,
			"cafe_id", booking.CafeID,
			"slot_cafe_id", slot.CafeID,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"cafe_id": "cafe_id does not match the slot's cafe",
		})
	}

	booking.ID = primitive.NewObjectID().Hex()
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	booking.CancelledAt = nil

	if err := s.claimSlot(ctx, booking.SlotID, booking.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		stored, lookupErr := s.bookingStored(ctx, booking.ID)
		switch {
		case lookupErr != nil:
			// Unknown outcome: the slot stays claimed by this booking id.
			s.cfg.Log.Error("Failed to create booking, outcome unknown, keeping slot claimed",
				"id", booking.ID,
				"slot_id", booking.SlotID,
				"error", err,
				"lookup_error", lookupErr,
			)
			return nil, apperrors.Internal("Failed to create booking", err)
		case stored:
			s.cfg.Log.Warn("Booking insert reported an error but the booking was stored",
				"id", booking.ID,
				"error", err,
			)
		default:
			s.cfg.Log.Error("Failed to create booking, releasing slot",
				"id", booking.ID,
				"slot_id", booking.SlotID,
				"error", err,
			)
			s.releaseSlot(ctx, booking.SlotID, booking.ID)
			return nil, apperrors.Internal("Failed to create booking", err)
		}
	}

	s.publish(ctx, events.BookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"cafe_id", booking.CafeID,
		"slot_id", booking.SlotID,
		"status", booking.Status,
	)

	return &model.BookingResult{ID: booking.ID, Message: confirmationMessage(booking.Status)}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// Cancel marks the booking cancelled and frees its slot. Cancelling an
// already cancelled booking fails, but still releases a slot left held by an
// earlier interrupted cancellation.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.BookingResult, error) {
	cancelledAt := time.Now().UTC().Truncate(time.Millisecond)

	booking, err := s.repo.Cancel(ctx, id, cancelledAt)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound), errors.Is(err, bookingserrors.ErrInvalidID):
			return nil, apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrAlreadyCancelled):
			if booking != nil {
				s.releaseSlot(ctx, booking.SlotID, booking.ID)
			}
			return nil, apperrors.InvalidState("Booking is already cancelled")
		default:
			s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
			return nil, apperrors.Internal("Failed to cancel booking", err)
		}
	}

	s.releaseSlot(ctx, booking.SlotID, booking.ID)
	s.publish(ctx, events.BookingCancelled, booking)

	s.cfg.Log.Info("Booking cancelled successfully",
		"id", booking.ID,
		"slot_id", booking.SlotID,
	)

	return &model.BookingResult{ID: booking.ID, Message: MessageCancelled}, nil
}

// ListByOwner joins in application code: the owner's cafe ids first, then
// the bookings referencing them.
func (s *bookingService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	cafeIDs, err := s.cafes.FindIDsByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list owner cafes", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve owner cafes", err)
	}
	if len(cafeIDs) == 0 {
		return []*model.Booking{}, nil
	}

	bookings, err := s.repo.FindByCafeIDs(ctx, cafeIDs, config.OwnerBookingListLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list owner bookings", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) claimSlot(ctx context.Context, slotID, bookingID string) error {
	err := s.retry(ctx, "claim", func() error {
		return s.slots.Claim(ctx, slotID, bookingID)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, slotserrors.ErrSlotUnavailable) {
		s.cfg.Log.Info("Slot claimed by a concurrent booking", "slot_id", slotID)
		return apperrors.InvalidState("Slot is not available")
	}
	if errors.Is(err, slotserrors.ErrInvalidID) {
		return apperrors.NotFound("Slot")
	}
	s.cfg.Log.Error("Failed to claim slot", "slot_id", slotID, "booking_id", bookingID, "error", err)
	return apperrors.Internal("Failed to reserve slot", err)
}

// releaseSlot runs even if the caller has gone away; a slot left booked
// without a live booking would be unbookable.
func (s *bookingService) releaseSlot(ctx context.Context, slotID, bookingID string) {
	ctx = context.WithoutCancel(ctx)

	var released bool
	err := s.retry(ctx, "release", func() error {
		var err error
		released, err = s.slots.Release(ctx, slotID, bookingID)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to release slot",
			"slot_id", slotID,
			"booking_id", bookingID,
			"error", err,
		)
		return
	}
	if released {
		s.cfg.Log.Info("Slot released", "slot_id", slotID, "booking_id", bookingID)
	}
}

// bookingStored reports whether a booking whose insert failed was written
// anyway. Only a definite not-found answers false; any other lookup failure is
// returned so the caller keeps the slot claimed.
func (s *bookingService) bookingStored(ctx context.Context, id string) (bool, error) {
	ctx = context.WithoutCancel(ctx)

	err := s.retry(ctx, "lookup", func() error {
		_, err := s.repo.FindByID(ctx, id)
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bookingserrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// retry runs op with exponential backoff, retrying only transient store
// errors.
func (s *bookingService) retry(ctx context.Context, name string, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.SlotClaimInitialBackoff
	policy.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(s.cfg.SlotClaimMaxRetries)), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !mongoutil.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		s.cfg.Log.Warn("Transient store error, retrying", "operation", name, "wait", wait, "error", err)
	})
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if strings.TrimSpace(b.Status) == "" {
		b.Status = config.Confirmed
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.CafeID = strings.TrimSpace(b.CafeID)
	b.SlotID = strings.TrimSpace(b.SlotID)
	b.Status = strings.TrimSpace(b.Status)
	b.CustomerName = sanitizer.NormalizeName(b.CustomerName)
	b.CustomerEmail = sanitizer.NormalizeEmail(b.CustomerEmail)
	b.CustomerPhone = sanitizer.NormalizeOptional(b.CustomerPhone, sanitizer.NormalizePhone)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.ValidateCreate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Booking validation failed", verrs.Details())
		}
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func confirmationMessage(status string) string {
	if status == config.Pending {
		return MessageCreated
	}
	return MessageConfirmed
}
