package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starbook/internal/config"
	"starbook/internal/handlers"
	"starbook/internal/middleware"
	"starbook/internal/repositories/mongodb"
	"starbook/internal/services"
	"starbook/pkg/cache"
	"starbook/pkg/database"
	"starbook/pkg/logger"
	"starbook/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Database)
	if err := migrator.Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	txnRepo := mongodb.NewTransactionRepository(db.Database)
	depositRepo := mongodb.NewDepositRepository(db.Database)
	paymentMethodRepo := mongodb.NewPaymentMethodRepository(db.Database, redisCache)
	auditRepo := mongodb.NewAuditLogRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	ticketRepo := mongodb.NewTicketRepository(db.Database)
	membershipRepo := mongodb.NewMembershipRepository(db.Database)

	// Services
	auditService := services.NewAuditService(auditRepo, appLogger)
	notificationService := services.NewNotificationService(notificationRepo, redisCache, appLogger)
	ledgerService := services.NewLedgerService(userRepo, txnRepo, auditService, db, appLogger)
	depositService := services.NewDepositService(depositRepo, paymentMethodRepo, ledgerService, auditService, notificationService, db, appLogger)
	paymentMethodService := services.NewPaymentMethodService(paymentMethodRepo, depositRepo, auditService, notificationService, db, appLogger)
	bookingService := services.NewBookingService(bookingRepo, ledgerService, auditService, notificationService, db, appLogger)
	ticketService := services.NewTicketService(ticketRepo, ledgerService, auditService, notificationService, db, appLogger)
	membershipService := services.NewMembershipService(membershipRepo, ledgerService, auditService, notificationService, db, appLogger)

	// Handlers
	h := &routes.Handlers{
		Wallet:        handlers.NewWalletHandler(ledgerService),
		Deposit:       handlers.NewDepositHandler(depositService),
		PaymentMethod: handlers.NewPaymentMethodHandler(paymentMethodService),
		Audit:         handlers.NewAuditHandler(auditService),
		Booking:       handlers.NewBookingHandler(bookingService),
		Ticket:        handlers.NewTicketHandler(ticketService),
		Membership:    handlers.NewMembershipHandler(membershipService),
		Notification:  handlers.NewNotificationHandler(notificationService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(appLogger))

	routes.Setup(router, h, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Periodic membership expiry sweep.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := membershipService.ExpireOverdue(sweepCtx); err != nil {
					appLogger.WithError(err).Error("Membership expiry sweep failed")
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}
