package model

import "time"

type Cafe struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=120"`
	City        string    `json:"city" bson:"city" validate:"required,min=1,max=100"`
	Address     string    `json:"address" bson:"address" validate:"required,min=1,max=250"`
	CoverImage  *string   `json:"cover_image,omitempty" bson:"cover_image,omitempty" validate:"omitempty,url,max=2048"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	OwnerID     *string   `json:"owner_id,omitempty" bson:"owner_id,omitempty" validate:"omitempty,min=1,max=64"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
