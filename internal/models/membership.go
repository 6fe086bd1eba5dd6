package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusExpired MembershipStatus = "expired"
)

// PlanSnapshot freezes the plan terms at subscription time so later plan
// edits never change what an existing member paid for.
type PlanSnapshot struct {
	PlanID       primitive.ObjectID `json:"plan_id" bson:"plan_id"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	DurationDays int                `json:"duration_days" bson:"duration_days"`
}

type Membership struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Plan      PlanSnapshot       `json:"plan" bson:"plan"`
	Status    MembershipStatus   `json:"status" bson:"status" default:"active"`
	StartsAt  time.Time          `json:"starts_at" bson:"starts_at"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
