package models

import (
	"errors"
	"testing"
)

func validBank() *PaymentMethod {
	return &PaymentMethod{
		Type:  PaymentMethodTypeBank,
		Label: "Main bank",
		Bank: &BankAccountDetails{
			BankName:      "First National",
			AccountName:   "Starbook Inc",
			AccountNumber: "12345678",
		},
	}
}

func TestValidateBankVariant(t *testing.T) {
	method := validBank()
	if err := method.Validate(); err != nil {
		t.Fatalf("valid bank method rejected: %v", err)
	}

	method.Bank.AccountNumber = ""
	if err := method.Validate(); err == nil {
		t.Error("bank method without account number accepted")
	}

	method = validBank()
	method.Bank = nil
	if err := method.Validate(); err == nil {
		t.Error("bank method without details accepted")
	}
}

func TestValidateCryptoVariant(t *testing.T) {
	method := &PaymentMethod{
		Type:   PaymentMethodTypeCrypto,
		Label:  "BTC",
		Crypto: &CryptoWalletDetails{WalletAddress: "bc1qxyz"},
	}
	if err := method.Validate(); err != nil {
		t.Fatalf("valid crypto method rejected: %v", err)
	}

	method.Crypto.WalletAddress = ""
	if err := method.Validate(); err == nil {
		t.Error("crypto method without wallet address accepted")
	}
}

func TestValidateMobileVariant(t *testing.T) {
	method := &PaymentMethod{
		Type:   PaymentMethodTypeMobile,
		Label:  "Pay app",
		Mobile: &MobilePaymentDetails{Provider: "cashapp", Handle: "$starbook"},
	}
	if err := method.Validate(); err != nil {
		t.Fatalf("valid mobile method rejected: %v", err)
	}

	method.Mobile.Handle = ""
	if err := method.Validate(); err == nil {
		t.Error("mobile method without handle accepted")
	}
}

func TestValidateUnknownType(t *testing.T) {
	method := &PaymentMethod{Type: PaymentMethodType("carrier_pigeon")}
	if err := method.Validate(); !errors.Is(err, ErrUnknownPaymentMethodType) {
		t.Fatalf("expected ErrUnknownPaymentMethodType, got %v", err)
	}
}

func TestValidateNegativeFee(t *testing.T) {
	method := validBank()
	method.Fee = -0.5
	if err := method.Validate(); err == nil {
		t.Error("negative fee accepted")
	}
}

func TestDetailsReturnsVariantPayload(t *testing.T) {
	method := validBank()
	if method.Details() != method.Bank {
		t.Error("Details should return the bank payload for bank methods")
	}

	crypto := &PaymentMethod{
		Type:   PaymentMethodTypeCrypto,
		Crypto: &CryptoWalletDetails{WalletAddress: "bc1qxyz"},
	}
	if crypto.Details() != crypto.Crypto {
		t.Error("Details should return the crypto payload for crypto methods")
	}
}
