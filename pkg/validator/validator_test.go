package validator

import (
	"testing"

	"cafebook/pkg/logger"
	"cafebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newValidator() *Validator {
	return New(logger.Discard())
}

func TestSlotInput(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name      string
		slot      model.SlotInput
		wantValid bool
		wantField string
	}{
		{"valid", model.SlotInput{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Price: 10}, true, ""},
		{"zero price is allowed", model.SlotInput{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Price: 0}, true, ""},
		{"negative price", model.SlotInput{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Price: -1}, false, "price"},
		{"bad date", model.SlotInput{Date: "01/01/2024", StartTime: "10:00", EndTime: "11:00"}, false, "date"},
		{"unpadded month", model.SlotInput{Date: "2024-1-01", StartTime: "10:00", EndTime: "11:00"}, false, "date"},
		{"impossible date", model.SlotInput{Date: "2024-02-30", StartTime: "10:00", EndTime: "11:00"}, false, "date"},
		{"unpadded hour", model.SlotInput{Date: "2024-01-01", StartTime: "9:00", EndTime: "11:00"}, false, "start_time"},
		{"hour out of range", model.SlotInput{Date: "2024-01-01", StartTime: "10:00", EndTime: "24:00"}, false, "end_time"},
		{"wrong status literal", model.SlotInput{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Status: "free"}, false, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.slot)
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.Details(), tt.wantField)
		})
	}
}

func TestBulkSlotsRequest_ReportsIndexedField(t *testing.T) {
	v := newValidator()

	req := &model.BulkSlotsRequest{
		CafeID: "507f1f77bcf86cd799439011",
		Slots: []model.SlotInput{
			{Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", Price: 5},
			{Date: "2024-01-01", StartTime: "11:00", EndTime: "12:00", Price: -1},
		},
	}

	var verrs ValidationErrors
	require.ErrorAs(t, v.Struct(req), &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "slots[1].price", verrs[0].Field)
}

func TestBulkSlotsRequest_Empty(t *testing.T) {
	v := newValidator()

	var verrs ValidationErrors
	require.ErrorAs(t, v.Struct(&model.BulkSlotsRequest{CafeID: "507f1f77bcf86cd799439011"}), &verrs)
	assert.Equal(t, "slots", verrs[0].Field)
}

func TestBooking(t *testing.T) {
	v := newValidator()

	valid := func() model.Booking {
		return model.Booking{
			CafeID:        "507f1f77bcf86cd799439011",
			SlotID:        "507f1f77bcf86cd799439012",
			CustomerName:  "Ann",
			CustomerEmail: "a@x.com",
			Status:        "confirmed",
		}
	}

	b := valid()
	assert.NoError(t, v.Struct(&b))

	b = valid()
	b.CafeID = ""
	assert.NoError(t, v.Struct(&b), "cafe_id may be derived from the slot")

	b = valid()
	b.Status = "done"
	assert.Error(t, v.Struct(&b))

	b = valid()
	b.CustomerEmail = "not-an-email"
	assert.Error(t, v.Struct(&b))

	b = valid()
	b.CustomerPhone = strPtr("12345")
	assert.Error(t, v.Struct(&b))

	b = valid()
	b.CustomerPhone = strPtr("+12125551234")
	assert.NoError(t, v.Struct(&b))
}

func TestCafe(t *testing.T) {
	v := newValidator()

	cafe := &model.Cafe{Name: "Arcade1", City: "Metropolis", Address: "1 Main St"}
	assert.NoError(t, v.Struct(cafe))

	cafe.CoverImage = strPtr("not a url")
	assert.Error(t, v.Struct(cafe))

	var verrs ValidationErrors
	require.ErrorAs(t, v.Struct(&model.Cafe{City: "Metropolis", Address: "1 Main St"}), &verrs)
	assert.Equal(t, "name is required", verrs.Details()["name"])
}

func TestUser(t *testing.T) {
	v := newValidator()

	user := &model.User{Name: "Ann", Email: "a@x.com", Role: "customer", IsActive: true}
	assert.NoError(t, v.Struct(user))

	user.Role = "root"
	var verrs ValidationErrors
	require.ErrorAs(t, v.Struct(user), &verrs)
	assert.Contains(t, verrs.Details()["role"], "customer owner admin")
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())
	errs := ValidationErrors{{Field: "price", Message: "price must be greater than or equal to 0"}}
	assert.Contains(t, errs.Error(), "1 error(s)")
}
