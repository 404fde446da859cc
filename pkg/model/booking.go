package model

import "time"

type Booking struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CafeID        string     `json:"cafe_id" bson:"cafe_id" validate:"omitempty,mongodb"`
	SlotID        string     `json:"slot_id" bson:"slot_id" validate:"required"`
	CustomerName  string     `json:"customer_name" bson:"customer_name" validate:"required,min=1,max=100"`
	CustomerEmail string     `json:"customer_email" bson:"customer_email" validate:"required,email,max=254"`
	CustomerPhone *string    `json:"customer_phone,omitempty" bson:"customer_phone,omitempty" validate:"omitempty,e164"`
	Status        string     `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// BookingResult is returned by the create and cancel operations.
type BookingResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
