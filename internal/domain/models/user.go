package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an administrator account allowed to sign in.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// RefreshToken is a long-lived, single-use credential exchanged for a new
// access token.
type RefreshToken struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"user_id" json:"userId"`
	Email     string    `bson:"email" json:"email"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
}
