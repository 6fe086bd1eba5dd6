package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string
type NotificationStatus string

const (
	NotificationTypeDepositApproved  NotificationType = "deposit_approved"
	NotificationTypeDepositRejected  NotificationType = "deposit_rejected"
	NotificationTypeBookingPaid      NotificationType = "booking_paid"
	NotificationTypeBookingRefunded  NotificationType = "booking_refunded"
	NotificationTypeTicketPurchased  NotificationType = "ticket_purchased"
	NotificationTypeMembershipActive NotificationType = "membership_active"
	NotificationTypePaymentMethod    NotificationType = "payment_method"
	NotificationTypeAdjustment       NotificationType = "adjustment"
	NotificationTypeGeneral          NotificationType = "general"

	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

type Notification struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id" bson:"user_id" validate:"required"`
	Type      NotificationType       `json:"type" bson:"type" validate:"required"`
	Status    NotificationStatus     `json:"status" bson:"status" default:"unread"`
	Title     string                 `json:"title" bson:"title" validate:"required"`
	Message   string                 `json:"message" bson:"message" validate:"required"`
	Data      map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	ReadAt    *time.Time             `json:"read_at" bson:"read_at"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updated_at"`
}
