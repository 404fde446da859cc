package service

import (
	"context"
	"errors"
	"time"

	slotserrors "cafebook/internal/slots/errors"
	"cafebook/internal/slots/repository"
	slotvalidator "cafebook/internal/slots/validator"
	"cafebook/pkg/config"
	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/model"
	"cafebook/pkg/validator"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SlotService interface {
	CreateBulk(ctx context.Context, req *model.BulkSlotsRequest) (int, error)
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	ListByCafe(ctx context.Context, cafeID string, date string) ([]*model.Slot, error)
}

type slotService struct {
	repo      repository.SlotRepository
	validator *slotvalidator.SlotValidator
	cfg       *config.Config
}

func NewSlotService(
	repo repository.SlotRepository,
	validator *slotvalidator.SlotValidator,
	cfg *config.Config,
) SlotService {
	return &slotService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *slotService) CreateBulk(ctx context.Context, req *model.BulkSlotsRequest) (int, error) {
	if !primitive.IsValidObjectID(req.CafeID) {
		return 0, apperrors.InvalidState("Invalid cafe id")
	}

	if err := s.validate(req); err != nil {
		return 0, err
	}

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	slots := make([]*model.Slot, 0, len(req.Slots))
	for _, in := range req.Slots {
		slots = append(slots, &model.Slot{
			ID:        primitive.NewObjectID().Hex(),
			CafeID:    req.CafeID,
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Price:     in.Price,
			Status:    config.SlotAvailable,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		})
	}

	if err := s.repo.InsertMany(ctx, slots); err != nil {
		s.cfg.Log.Error("Failed to create slots",
			"cafe_id", req.CafeID,
			"count", len(slots),
			"error", err,
		)
		return 0, apperrors.Internal("Failed to create slots", err)
	}

	s.cfg.Log.Info("Slots created successfully",
		"cafe_id", req.CafeID,
		"count", len(slots),
	)
	return len(slots), nil
}

func (s *slotService) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) || errors.Is(err, slotserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Slot", id)
		}
		s.cfg.Log.Error("Failed to retrieve slot", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slot", err)
	}

	return slot, nil
}

func (s *slotService) ListByCafe(ctx context.Context, cafeID string, date string) ([]*model.Slot, error) {
	slots, err := s.repo.FindByCafe(ctx, cafeID, date, config.SlotListLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list slots", "cafe_id", cafeID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}

	return slots, nil
}

func (s *slotService) validate(req *model.BulkSlotsRequest) error {
	if err := s.validator.ValidateBulk(req); err != nil {
		s.cfg.Log.Warn("Slot validation failed", "cafe_id", req.CafeID, "error", err)

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Slot validation failed", verrs.Details())
		}
		return apperrors.Validation("Slot validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
