package model

import "time"

// User is stored for future access control; nothing enforces Role today.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email,max=254"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=customer owner admin"`
	Phone     *string   `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
