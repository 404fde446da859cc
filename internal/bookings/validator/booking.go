package validator

import (
	"errors"

	"cafebook/pkg/config"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"
	"cafebook/pkg/validator"
)

type BookingValidator struct {
	validator *validator.Validator
	logger    *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validator: validator.New(log),
		logger:    log,
	}
}

// ValidateCreate checks a new booking request. A booking cannot be created
// already cancelled; cancellation has its own operation.
func (v *BookingValidator) ValidateCreate(booking *model.Booking) error {
	var errs validator.ValidationErrors
	if err := v.validator.Struct(booking); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}

	if booking.Status == config.Cancelled {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending confirmed",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
