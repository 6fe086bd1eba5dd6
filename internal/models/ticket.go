package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketStatusActive   TicketStatus = "active"
	TicketStatusRefunded TicketStatus = "refunded"
	TicketStatusUsed     TicketStatus = "used"
)

// Ticket is a paid admission purchase for an event.
type Ticket struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	EventID    primitive.ObjectID `json:"event_id" bson:"event_id" validate:"required"`
	EventName  string             `json:"event_name" bson:"event_name"`
	Quantity   int                `json:"quantity" bson:"quantity" validate:"required"`
	UnitPrice  float64            `json:"unit_price" bson:"unit_price" validate:"required"`
	Total      float64            `json:"total" bson:"total"`
	Currency   string             `json:"currency" bson:"currency" default:"USD"`
	Status     TicketStatus       `json:"status" bson:"status" default:"active"`
	RefundedAt *time.Time         `json:"refunded_at,omitempty" bson:"refunded_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
