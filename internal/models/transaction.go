package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionType string
type TransactionPurpose string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"

	TransactionPurposeBookingPayment    TransactionPurpose = "booking_payment"
	TransactionPurposeBookingRefund     TransactionPurpose = "booking_refund"
	TransactionPurposeTicketPurchase    TransactionPurpose = "ticket_purchase"
	TransactionPurposeTicketRefund      TransactionPurpose = "ticket_refund"
	TransactionPurposeMembershipPayment TransactionPurpose = "membership_payment"
	TransactionPurposeTopUp             TransactionPurpose = "top_up"
	TransactionPurposeAdjustment        TransactionPurpose = "adjustment"
)

// Transaction is one immutable ledger entry. BalanceBefore/BalanceAfter are
// captured at the instant of the balance mutation, so every entry is
// independently auditable. Entries are never updated or deleted.
type Transaction struct {
	ID            primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID     `json:"user_id" bson:"user_id" validate:"required"`
	Type          TransactionType        `json:"type" bson:"type" validate:"required"`
	Purpose       TransactionPurpose     `json:"purpose" bson:"purpose" validate:"required"`
	Amount        float64                `json:"amount" bson:"amount" validate:"required"`
	Currency      string                 `json:"currency" bson:"currency" default:"USD"`
	Description   string                 `json:"description" bson:"description"`
	BalanceBefore float64                `json:"balance_before" bson:"balance_before"`
	BalanceAfter  float64                `json:"balance_after" bson:"balance_after"`
	RelatedModel  string                 `json:"related_model,omitempty" bson:"related_model,omitempty"`
	RelatedID     *primitive.ObjectID    `json:"related_id,omitempty" bson:"related_id,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at" bson:"created_at"`
}

var validPurposes = map[TransactionPurpose]bool{
	TransactionPurposeBookingPayment:    true,
	TransactionPurposeBookingRefund:     true,
	TransactionPurposeTicketPurchase:    true,
	TransactionPurposeTicketRefund:      true,
	TransactionPurposeMembershipPayment: true,
	TransactionPurposeTopUp:             true,
	TransactionPurposeAdjustment:        true,
}

func (p TransactionPurpose) IsValid() bool {
	return validPurposes[p]
}
