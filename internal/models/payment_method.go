package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethodType string

const (
	PaymentMethodTypeBank   PaymentMethodType = "bank_account"
	PaymentMethodTypeCrypto PaymentMethodType = "crypto_wallet"
	PaymentMethodTypeMobile PaymentMethodType = "mobile_payment"
)

var (
	ErrUnknownPaymentMethodType = errors.New("unknown payment method type")
)

// BankAccountDetails are required when Type is bank_account.
type BankAccountDetails struct {
	BankName      string `json:"bank_name" bson:"bank_name"`
	AccountName   string `json:"account_name" bson:"account_name"`
	AccountNumber string `json:"account_number" bson:"account_number"`
	SwiftCode     string `json:"swift_code,omitempty" bson:"swift_code,omitempty"`
}

// CryptoWalletDetails are required when Type is crypto_wallet.
type CryptoWalletDetails struct {
	WalletAddress string `json:"wallet_address" bson:"wallet_address"`
	Network       string `json:"network,omitempty" bson:"network,omitempty"`
}

// MobilePaymentDetails are required when Type is mobile_payment.
type MobilePaymentDetails struct {
	Provider string `json:"provider" bson:"provider"`
	Handle   string `json:"handle" bson:"handle"`
}

// PaymentMethod is an admin-configured payment destination. The variant
// details are a tagged union keyed by Type; exactly one of Bank, Crypto or
// Mobile must be populated and complete. At most one method per Type may
// carry IsDefault=true at any time.
type PaymentMethod struct {
	ID        primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	Type      PaymentMethodType     `json:"type" bson:"type" validate:"required"`
	Label     string                `json:"label" bson:"label"`
	Bank      *BankAccountDetails   `json:"bank,omitempty" bson:"bank,omitempty"`
	Crypto    *CryptoWalletDetails  `json:"crypto,omitempty" bson:"crypto,omitempty"`
	Mobile    *MobilePaymentDetails `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Fee       float64               `json:"fee" bson:"fee" default:"0"`
	Status    bool                  `json:"status" bson:"status" default:"true"`
	IsDefault bool                  `json:"is_default" bson:"is_default" default:"false"`
	CreatedBy primitive.ObjectID    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time             `json:"updated_at" bson:"updated_at"`
}

// Validate checks the envelope and the variant details for the effective
// type. Callers must run it after merging any partial update so a patch can
// never strip a required variant field.
func (m *PaymentMethod) Validate() error {
	if m.Fee < 0 {
		return errors.New("fee must not be negative")
	}

	switch m.Type {
	case PaymentMethodTypeBank:
		if m.Bank == nil {
			return errors.New("bank details required for bank_account")
		}
		if m.Bank.BankName == "" {
			return errors.New("bank_name required for bank_account")
		}
		if m.Bank.AccountName == "" {
			return errors.New("account_name required for bank_account")
		}
		if m.Bank.AccountNumber == "" {
			return errors.New("account_number required for bank_account")
		}
	case PaymentMethodTypeCrypto:
		if m.Crypto == nil || m.Crypto.WalletAddress == "" {
			return errors.New("wallet_address required for crypto_wallet")
		}
	case PaymentMethodTypeMobile:
		if m.Mobile == nil {
			return errors.New("mobile details required for mobile_payment")
		}
		if m.Mobile.Provider == "" {
			return errors.New("provider required for mobile_payment")
		}
		if m.Mobile.Handle == "" {
			return errors.New("handle required for mobile_payment")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPaymentMethodType, m.Type)
	}

	return nil
}

// Details returns the variant payload for the method's type, used when
// snapshotting a method into a deposit.
func (m *PaymentMethod) Details() interface{} {
	switch m.Type {
	case PaymentMethodTypeBank:
		return m.Bank
	case PaymentMethodTypeCrypto:
		return m.Crypto
	case PaymentMethodTypeMobile:
		return m.Mobile
	}
	return nil
}
