package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionApprove AuditAction = "approve"
	AuditActionReject  AuditAction = "reject"
	AuditActionCredit  AuditAction = "credit"
	AuditActionDebit   AuditAction = "debit"
)

// AuditLog is one append-only event describing a state-changing operation.
// Events are emitted best-effort by the services and persisted here.
type AuditLog struct {
	ID          primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	ActorID     *primitive.ObjectID    `json:"actor_id" bson:"actor_id"`
	Action      AuditAction            `json:"action" bson:"action" validate:"required"`
	Resource    string                 `json:"resource" bson:"resource" validate:"required"`
	ResourceID  string                 `json:"resource_id" bson:"resource_id"`
	Description string                 `json:"description" bson:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
}
