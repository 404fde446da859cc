package model

import "time"

// Slot dates are calendar dates (YYYY-MM-DD) and times are 24h wall-clock
// strings (HH:MM) without a timezone, so they sort lexicographically.
type Slot struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CafeID    string    `json:"cafe_id" bson:"cafe_id" validate:"required,mongodb"`
	Date      string    `json:"date" bson:"date" validate:"required,slot_date"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	Price     float64   `json:"price" bson:"price" validate:"gte=0"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=available booked"`
	BookingID string    `json:"booking_id,omitempty" bson:"booking_id,omitempty" validate:"omitempty,mongodb"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SlotInput is one entry of a bulk slot request. cafe_id and status are
// taken from the request envelope and forced to available respectively.
type SlotInput struct {
	CafeID    string  `json:"cafe_id,omitempty"`
	Date      string  `json:"date" validate:"required,slot_date"`
	StartTime string  `json:"start_time" validate:"required,clock_time"`
	EndTime   string  `json:"end_time" validate:"required,clock_time"`
	Price     float64 `json:"price" validate:"gte=0"`
	Status    string  `json:"status,omitempty" validate:"omitempty,oneof=available booked"`
}

type BulkSlotsRequest struct {
	CafeID string      `json:"cafe_id"`
	Slots  []SlotInput `json:"slots" validate:"required,min=1,max=500,dive"`
}

type BulkSlotsResponse struct {
	Created int `json:"created"`
}
