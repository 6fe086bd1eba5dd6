package routes

import (
	"starbook/internal/handlers"
	"starbook/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Wallet        *handlers.WalletHandler
	Deposit       *handlers.DepositHandler
	PaymentMethod *handlers.PaymentMethodHandler
	Audit         *handlers.AuditHandler
	Booking       *handlers.BookingHandler
	Ticket        *handlers.TicketHandler
	Membership    *handlers.MembershipHandler
	Notification  *handlers.NotificationHandler
}

// Setup mounts all API routes under /api/v1.
func Setup(r *gin.Engine, h *Handlers, jwtSecret string) {
	v1 := r.Group("/api/v1")

	SetupWalletRoutes(v1, h.Wallet, jwtSecret)
	SetupDepositRoutes(v1, h.Deposit, jwtSecret)
	SetupPaymentMethodRoutes(v1, h.PaymentMethod, jwtSecret)
	SetupAuditRoutes(v1, h.Audit, jwtSecret)
	SetupPurchaseRoutes(v1, h.Booking, h.Ticket, h.Membership, jwtSecret)
	SetupNotificationRoutes(v1, h.Notification, jwtSecret)
}

// SetupWalletRoutes sets up balance and statement routes.
func SetupWalletRoutes(r *gin.RouterGroup, walletHandler *handlers.WalletHandler, jwtSecret string) {
	wallet := r.Group("/wallet")
	wallet.Use(middleware.AuthRequired(jwtSecret))
	{
		wallet.GET("/balance", walletHandler.GetBalance)
		wallet.GET("/transactions", walletHandler.GetStatement)
		wallet.GET("/transactions/:id", walletHandler.GetTransaction)
	}

	admin := r.Group("/admin/wallet")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/adjust", walletHandler.AdjustBalance)
		admin.GET("/transactions/purpose/:purpose", walletHandler.ListByPurpose)
		admin.GET("/transactions/related/:model/:id", walletHandler.ListByRelated)
	}
}

// SetupDepositRoutes sets up deposit submission and review routes.
func SetupDepositRoutes(r *gin.RouterGroup, depositHandler *handlers.DepositHandler, jwtSecret string) {
	deposits := r.Group("/deposits")
	deposits.Use(middleware.AuthRequired(jwtSecret))
	{
		deposits.POST("/", depositHandler.Create)
		deposits.GET("/", depositHandler.GetMyDeposits)
		deposits.GET("/:id", depositHandler.GetMyDeposit)
	}

	admin := r.Group("/admin/deposits")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", depositHandler.List)
		admin.GET("/:id", depositHandler.Get)
		admin.PUT("/:id/approve", depositHandler.Approve)
		admin.PUT("/:id/reject", depositHandler.Reject)
	}
}

// SetupPaymentMethodRoutes sets up the payment method registry routes.
func SetupPaymentMethodRoutes(r *gin.RouterGroup, paymentMethodHandler *handlers.PaymentMethodHandler, jwtSecret string) {
	methods := r.Group("/payment-methods")
	methods.Use(middleware.AuthRequired(jwtSecret))
	{
		methods.GET("/", paymentMethodHandler.ListActive)
	}

	admin := r.Group("/admin/payment-methods")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", paymentMethodHandler.List)
		admin.GET("/:id", paymentMethodHandler.Get)
		admin.POST("/", paymentMethodHandler.Create)
		admin.PUT("/:id", paymentMethodHandler.Update)
		admin.PUT("/:id/toggle", paymentMethodHandler.ToggleStatus)
		admin.PUT("/:id/default", paymentMethodHandler.SetDefault)
		admin.DELETE("/:id", paymentMethodHandler.Delete)
	}
}

// SetupAuditRoutes sets up admin-only audit trail routes.
func SetupAuditRoutes(r *gin.RouterGroup, auditHandler *handlers.AuditHandler, jwtSecret string) {
	admin := r.Group("/admin/audit-logs")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/", auditHandler.List)
		admin.GET("/:id", auditHandler.Get)
		admin.GET("/resource/:resource/:id", auditHandler.GetResourceHistory)
	}
}

// SetupPurchaseRoutes sets up booking, ticket and membership routes.
func SetupPurchaseRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, ticketHandler *handlers.TicketHandler, membershipHandler *handlers.MembershipHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("/", bookingHandler.Book)
		bookings.GET("/", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id/cancel", bookingHandler.Cancel)
		bookings.GET("/celebrity", bookingHandler.GetCelebrityBookings)
	}

	tickets := r.Group("/tickets")
	tickets.Use(middleware.AuthRequired(jwtSecret))
	{
		tickets.POST("/", ticketHandler.Buy)
		tickets.GET("/", ticketHandler.GetMyTickets)
		tickets.GET("/:id", ticketHandler.Get)
		tickets.PUT("/:id/refund", ticketHandler.Refund)
	}

	memberships := r.Group("/memberships")
	memberships.Use(middleware.AuthRequired(jwtSecret))
	{
		memberships.POST("/", membershipHandler.Subscribe)
		memberships.GET("/active", membershipHandler.GetActive)
		memberships.GET("/", membershipHandler.GetHistory)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/events/:id/tickets", ticketHandler.GetEventTickets)
		admin.POST("/memberships/expire", membershipHandler.ExpireOverdue)
	}
}

// SetupNotificationRoutes sets up in-app notification routes.
func SetupNotificationRoutes(r *gin.RouterGroup, notificationHandler *handlers.NotificationHandler, jwtSecret string) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthRequired(jwtSecret))
	{
		notifications.GET("/", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.CountUnread)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}
}
