package service

import (
	"context"
	"errors"

	cafeserrors "cafebook/internal/cafes/errors"
	"cafebook/internal/cafes/repository"
	cafevalidator "cafebook/internal/cafes/validator"
	"cafebook/pkg/config"
	apperrors "cafebook/pkg/errors"
	"cafebook/pkg/model"
	"cafebook/pkg/sanitizer"
	"cafebook/pkg/validator"
)

type CafeService interface {
	Create(ctx context.Context, cafe *model.Cafe) error
	GetByID(ctx context.Context, id string) (*model.Cafe, error)
	List(ctx context.Context, city string) ([]*model.Cafe, error)
}

type cafeService struct {
	repo      repository.CafeRepository
	validator *cafevalidator.CafeValidator
	cfg       *config.Config
}

func NewCafeService(
	repo repository.CafeRepository,
	validator *cafevalidator.CafeValidator,
	cfg *config.Config,
) CafeService {
	return &cafeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *cafeService) Create(ctx context.Context, cafe *model.Cafe) error {
	s.sanitize(cafe)
	if err := s.validate(cafe); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, cafe); err != nil {
		s.cfg.Log.Error("Failed to create cafe", "name", cafe.Name, "error", err)
		return apperrors.Internal("Failed to create cafe", err)
	}

	s.cfg.Log.Info("Cafe created successfully",
		"id", cafe.ID,
		"name", cafe.Name,
		"city", cafe.City,
	)
	return nil
}

func (s *cafeService) GetByID(ctx context.Context, id string) (*model.Cafe, error) {
	cafe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, cafeserrors.ErrNotFound) || errors.Is(err, cafeserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Cafe", id)
		}
		s.cfg.Log.Error("Failed to retrieve cafe", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve cafe", err)
	}

	return cafe, nil
}

func (s *cafeService) List(ctx context.Context, city string) ([]*model.Cafe, error) {
	cafes, err := s.repo.FindByCity(ctx, sanitizer.NormalizeCity(city), config.CafeListLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to list cafes", "city", city, "error", err)
		return nil, apperrors.Internal("Failed to retrieve cafes", err)
	}

	return cafes, nil
}

func (s *cafeService) sanitize(c *model.Cafe) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.City = sanitizer.NormalizeCity(c.City)
	c.Address = sanitizer.NormalizeAddress(c.Address)
	c.CoverImage = sanitizer.NormalizeOptional(c.CoverImage, sanitizer.NormalizeURL)
	c.Description = sanitizer.NormalizeOptional(c.Description, sanitizer.TrimAndNormalize)
	c.OwnerID = sanitizer.NormalizeOptional(c.OwnerID, sanitizer.TrimAndNormalize)
}

func (s *cafeService) validate(cafe *model.Cafe) error {
	if err := s.validator.Validate(cafe); err != nil {
		s.cfg.Log.Warn("Cafe validation failed", "error", err)

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Cafe validation failed", verrs.Details())
		}
		return apperrors.Validation("Cafe validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
