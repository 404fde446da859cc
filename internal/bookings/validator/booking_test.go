package validator

import (
	"testing"

	"cafebook/pkg/logger"
	"cafebook/pkg/model"
	"cafebook/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	base := func(status string) *model.Booking {
		return &model.Booking{
			SlotID:        "507f1f77bcf86cd799439012",
			CustomerName:  "Ann",
			CustomerEmail: "a@x.com",
			Status:        status,
		}
	}

	assert.NoError(t, v.ValidateCreate(base("confirmed")))
	assert.NoError(t, v.ValidateCreate(base("pending")))

	var verrs validator.ValidationErrors
	require.ErrorAs(t, v.ValidateCreate(base("cancelled")), &verrs)
	assert.Equal(t, "status must be one of: pending confirmed", verrs.Details()["status"])

	require.ErrorAs(t, v.ValidateCreate(base("done")), &verrs)
	assert.Contains(t, verrs.Details(), "status")

	missing := base("confirmed")
	missing.CustomerName = ""
	missing.SlotID = ""
	require.ErrorAs(t, v.ValidateCreate(missing), &verrs)
	assert.Contains(t, verrs.Details(), "customer_name")
	assert.Contains(t, verrs.Details(), "slot_id")
}
