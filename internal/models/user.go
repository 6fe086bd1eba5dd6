package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string
type UserType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserTypeFan       UserType = "fan"
	UserTypeCelebrity UserType = "celebrity"
	UserTypeAdmin     UserType = "admin"
)

// User is the platform account. Balance is mutated exclusively through the
// ledger service; no other component writes it.
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName       string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName        string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Phone           string             `json:"phone" bson:"phone"`
	Password        string             `json:"-" bson:"password"`
	ProfilePicture  string             `json:"profile_picture" bson:"profile_picture"`
	UserType        UserType           `json:"user_type" bson:"user_type" validate:"required"`
	Status          UserStatus         `json:"status" bson:"status" default:"active"`
	Balance         float64            `json:"balance" bson:"balance" default:"0"`
	Currency        string             `json:"currency" bson:"currency" default:"USD"`
	IsEmailVerified bool               `json:"is_email_verified" bson:"is_email_verified" default:"false"`
	LastLoginAt     *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time         `json:"deleted_at" bson:"deleted_at"`
}
