package utils

import "time"

// Application Constants
const (
	AppName    = "Starbook"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Ledger Constants
	MinDepositAmount = 1.0
	MaxDepositAmount = 100000.0
	MaxTicketsPerBuy = 10

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"

	// Cache keys and TTLs
	CacheKeyActivePaymentMethods = "payment_methods:active"
	CacheTTLPaymentMethods       = 10 * time.Minute

	// Notification channels
	NotificationChannelPrefix = "notifications:"

	// Related model names recorded on ledger entries
	RelatedModelDeposit    = "deposit"
	RelatedModelBooking    = "booking"
	RelatedModelTicket     = "ticket"
	RelatedModelMembership = "membership"
)
