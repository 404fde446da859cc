package validator

import (
	"errors"
	"fmt"

	"cafebook/pkg/config"
	"cafebook/pkg/logger"
	"cafebook/pkg/model"
	"cafebook/pkg/validator"
)

type SlotValidator struct {
	validator *validator.Validator
	logger    *logger.Logger
}

func NewSlotValidator(log *logger.Logger) *SlotValidator {
	log.Info("Slot validator initialized successfully")

	return &SlotValidator{
		validator: validator.New(log),
		logger:    log,
	}
}

// ValidateBulk checks every slot of the request and reports all problems at
// once. Nothing is written unless this returns nil.
func (v *SlotValidator) ValidateBulk(req *model.BulkSlotsRequest) error {
	if len(req.Slots) > config.MaxSlotsPerBulk {
		return validator.ValidationErrors{{
			Field:   "slots",
			Message: fmt.Sprintf("slots must be at most %d", config.MaxSlotsPerBulk),
		}}
	}

	var errs validator.ValidationErrors
	if err := v.validator.Struct(req); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}

	for i, s := range req.Slots {
		// HH:MM compares correctly as a string; malformed values are already
		// reported above.
		if len(s.StartTime) == 5 && len(s.EndTime) == 5 && s.EndTime <= s.StartTime {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("slots[%d].end_time", i),
				Message: "end_time must be after start_time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
