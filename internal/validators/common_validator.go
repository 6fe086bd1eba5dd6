package validators

import (
	"errors"
	"fmt"
	"strings"

	"starbook/internal/models"
	"starbook/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("deposit_amount", validateDepositAmount)
	validate.RegisterValidation("payment_method_type", validatePaymentMethodType)
	validate.RegisterValidation("transaction_purpose", validateTransactionPurpose)
	validate.RegisterValidation("currency_code", validateCurrencyCode)
}

var (
	ErrInvalidObjectID = errors.New("invalid object ID format")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   strings.ToLower(err.Field()),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "object_id":
		return ErrInvalidObjectID.Error()
	case "deposit_amount":
		return fmt.Sprintf("must be between %.2f and %.2f", utils.MinDepositAmount, utils.MaxDepositAmount)
	case "payment_method_type":
		return "must be one of bank_account, crypto_wallet, mobile_payment"
	case "transaction_purpose":
		return "unknown transaction purpose"
	case "currency_code":
		return ErrInvalidCurrency.Error()
	default:
		return fmt.Sprintf("failed validation for tag '%s'", err.Tag())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	if id, ok := fl.Field().Interface().(primitive.ObjectID); ok {
		return !id.IsZero()
	}
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validateDepositAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().Float()
	return amount >= utils.MinDepositAmount && amount <= utils.MaxDepositAmount
}

func validatePaymentMethodType(fl validator.FieldLevel) bool {
	switch models.PaymentMethodType(fl.Field().String()) {
	case models.PaymentMethodTypeBank, models.PaymentMethodTypeCrypto, models.PaymentMethodTypeMobile:
		return true
	}
	return false
}

func validateTransactionPurpose(fl validator.FieldLevel) bool {
	return models.TransactionPurpose(fl.Field().String()).IsValid()
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
