package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    *string            `json:"first_name" bson:"first_name" validate:"required,min=2,max=100"`
	LastName     *string            `json:"last_name" bson:"last_name" validate:"required,min=2,max=100"`
	Password     *string            `json:"password" bson:"password" validate:"required,min=6"`
	Email        *string            `json:"email" bson:"email" validate:"required,email"`
	Token        *string            `json:"token,omitempty" bson:"token,omitempty"`
	Role         *string            `json:"role" bson:"role"`
	RefreshToken *string            `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	ResetToken   *string            `json:"-" bson:"reset_token,omitempty"`
	ResetExpires *time.Time         `json:"-" bson:"reset_expires,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	UserID       string             `json:"user_id" bson:"user_id"`
}

// AnonymousUserID identifies local-only usage when no remote store is
// configured. Data written under it lives only in local storage.
const AnonymousUserID = "local"
