package services

import (
	"context"
	"fmt"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService pays for celebrity engagements out of the user's balance.
// The debit and the booking record are written in one transaction; a
// cancellation refunds through the same ledger under the same guarantee.
type BookingService interface {
	Book(ctx context.Context, userID primitive.ObjectID, request *BookRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetCelebrityBookings(ctx context.Context, celebrityID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type BookRequest struct {
	CelebrityID primitive.ObjectID `json:"celebrity_id" validate:"required"`
	EventName   string             `json:"event_name" validate:"required"`
	EventDate   time.Time          `json:"event_date" validate:"required"`
	Amount      float64            `json:"amount" validate:"required,gt=0"`
	Notes       string             `json:"notes"`
}

type bookingService struct {
	bookingRepo         interfaces.BookingRepository
	ledgerService       LedgerService
	auditService        AuditService
	notificationService NotificationService
	transactor          Transactor
	logger              *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	ledgerService LedgerService,
	auditService AuditService,
	notificationService NotificationService,
	transactor Transactor,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:         bookingRepo,
		ledgerService:       ledgerService,
		auditService:        auditService,
		notificationService: notificationService,
		transactor:          transactor,
		logger:              logger,
	}
}

func (s *bookingService) Book(ctx context.Context, userID primitive.ObjectID, request *BookRequest) (*models.Booking, error) {
	if request.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	booking := &models.Booking{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CelebrityID: request.CelebrityID,
		EventName:   request.EventName,
		EventDate:   request.EventDate,
		Amount:      request.Amount,
		Currency:    "USD",
		Status:      models.BookingStatusConfirmed,
		Notes:       request.Notes,
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := s.ledgerService.Debit(ctx, userID, request.Amount, models.TransactionPurposeBookingPayment, &LedgerEntryParams{
			Description:  fmt.Sprintf("booking: %s", request.EventName),
			RelatedModel: utils.RelatedModelBooking,
			RelatedID:    &booking.ID,
		})
		if err != nil {
			return err
		}
		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionCreate,
		Resource:    utils.RelatedModelBooking,
		ResourceID:  booking.ID.Hex(),
		Description: fmt.Sprintf("booking of %s for %.2f", request.EventName, request.Amount),
	})

	s.notificationService.Notify(ctx, userID, models.NotificationTypeBookingPaid,
		"Booking confirmed",
		fmt.Sprintf("Your booking for %s is confirmed. %.2f %s was deducted from your balance.", request.EventName, booking.Amount, booking.Currency),
		map[string]interface{}{"booking_id": booking.ID.Hex()},
	)

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrBookingNotFound
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		cancelled, err := s.bookingRepo.CancelConfirmed(ctx, bookingID)
		if err != nil {
			return err
		}
		if !cancelled {
			return models.ErrBookingNotActive
		}

		_, err = s.ledgerService.Credit(ctx, booking.UserID, booking.Amount, models.TransactionPurposeBookingRefund, &LedgerEntryParams{
			Description:  fmt.Sprintf("refund: %s", booking.EventName),
			RelatedModel: utils.RelatedModelBooking,
			RelatedID:    &bookingID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionUpdate,
		Resource:    utils.RelatedModelBooking,
		ResourceID:  bookingID.Hex(),
		Description: fmt.Sprintf("booking cancelled, %.2f refunded", booking.Amount),
	})

	s.notificationService.Notify(ctx, booking.UserID, models.NotificationTypeBookingRefunded,
		"Booking cancelled",
		fmt.Sprintf("Your booking for %s was cancelled and %.2f %s refunded.", booking.EventName, booking.Amount, booking.Currency),
		map[string]interface{}{"booking_id": bookingID.Hex()},
	)

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByUserID(ctx, userID, params)
}

func (s *bookingService) GetCelebrityBookings(ctx context.Context, celebrityID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByCelebrityID(ctx, celebrityID, params)
}
