package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusFulfilled BookingStatus = "fulfilled"
)

// Booking is a paid engagement of a celebrity for an event. It exists only
// if the debit that paid for it succeeded; the two are written in one
// transaction.
type Booking struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	CelebrityID primitive.ObjectID `json:"celebrity_id" bson:"celebrity_id" validate:"required"`
	EventName   string             `json:"event_name" bson:"event_name" validate:"required"`
	EventDate   time.Time          `json:"event_date" bson:"event_date"`
	Amount      float64            `json:"amount" bson:"amount" validate:"required"`
	Currency    string             `json:"currency" bson:"currency" default:"USD"`
	Status      BookingStatus      `json:"status" bson:"status" default:"confirmed"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
