package validator

import (
	"cafebook/pkg/logger"
	"cafebook/pkg/model"
	"cafebook/pkg/validator"
)

type CafeValidator struct {
	validator *validator.Validator
	logger    *logger.Logger
}

func NewCafeValidator(log *logger.Logger) *CafeValidator {
	log.Info("Cafe validator initialized successfully")

	return &CafeValidator{
		validator: validator.New(log),
		logger:    log,
	}
}

func (v *CafeValidator) Validate(cafe *model.Cafe) error {
	return v.validator.Struct(cafe)
}
