package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusCompleted DepositStatus = "completed"
	DepositStatusFailed    DepositStatus = "failed"
)

// DepositPayment snapshots the chosen payment method at submission time so
// later edits to the method never retroactively alter a historical deposit.
type DepositPayment struct {
	PaymentMethodID primitive.ObjectID `json:"payment_method_id" bson:"payment_method_id"`
	MethodType      PaymentMethodType  `json:"method_type" bson:"method_type"`
	MethodLabel     string             `json:"method_label" bson:"method_label"`
	MethodDetails   interface{}        `json:"method_details,omitempty" bson:"method_details,omitempty"`
	ProofOfPayment  string             `json:"proof_of_payment" bson:"proof_of_payment"`
	Amount          float64            `json:"amount" bson:"amount"`
}

// Deposit is a user-submitted top-up request. Lifecycle:
// pending -> completed | failed; terminal states are immutable and the
// pending -> completed flip credits the ledger exactly once.
type Deposit struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	Amount      float64             `json:"amount" bson:"amount" validate:"required"`
	Currency    string              `json:"currency" bson:"currency" default:"USD"`
	Payment     DepositPayment      `json:"payment" bson:"payment"`
	Status      DepositStatus       `json:"status" bson:"status" default:"pending"`
	Notes       string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreditedAt  *time.Time          `json:"credited_at,omitempty" bson:"credited_at,omitempty"`
	ProcessedBy *primitive.ObjectID `json:"processed_by,omitempty" bson:"processed_by,omitempty"`
	ProcessedAt *time.Time          `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether the deposit reached a final state.
func (d *Deposit) IsTerminal() bool {
	return d.Status == DepositStatusCompleted || d.Status == DepositStatusFailed
}
