package services

import (
	"context"
	"fmt"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketService sells event admissions against the user's balance. Purchase
// debits and record creation share one transaction; refunds credit the full
// purchase total back.
type TicketService interface {
	Buy(ctx context.Context, userID primitive.ObjectID, request *BuyTicketRequest) (*models.Ticket, error)
	Refund(ctx context.Context, ticketID, userID primitive.ObjectID) (*models.Ticket, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	GetUserTickets(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error)
	GetEventTickets(ctx context.Context, eventID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error)
}

type BuyTicketRequest struct {
	EventID   primitive.ObjectID `json:"event_id" validate:"required"`
	EventName string             `json:"event_name" validate:"required"`
	Quantity  int                `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64            `json:"unit_price" validate:"required,gt=0"`
}

type ticketService struct {
	ticketRepo          interfaces.TicketRepository
	ledgerService       LedgerService
	auditService        AuditService
	notificationService NotificationService
	transactor          Transactor
	logger              *logger.Logger
}

func NewTicketService(
	ticketRepo interfaces.TicketRepository,
	ledgerService LedgerService,
	auditService AuditService,
	notificationService NotificationService,
	transactor Transactor,
	logger *logger.Logger,
) TicketService {
	return &ticketService{
		ticketRepo:          ticketRepo,
		ledgerService:       ledgerService,
		auditService:        auditService,
		notificationService: notificationService,
		transactor:          transactor,
		logger:              logger,
	}
}

func (s *ticketService) Buy(ctx context.Context, userID primitive.ObjectID, request *BuyTicketRequest) (*models.Ticket, error) {
	if request.Quantity <= 0 || request.Quantity > utils.MaxTicketsPerBuy {
		return nil, models.ErrInvalidAmount
	}
	if request.UnitPrice <= 0 {
		return nil, models.ErrInvalidAmount
	}

	total := float64(request.Quantity) * request.UnitPrice

	ticket := &models.Ticket{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		EventID:   request.EventID,
		EventName: request.EventName,
		Quantity:  request.Quantity,
		UnitPrice: request.UnitPrice,
		Total:     total,
		Currency:  "USD",
		Status:    models.TicketStatusActive,
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := s.ledgerService.Debit(ctx, userID, total, models.TransactionPurposeTicketPurchase, &LedgerEntryParams{
			Description:  fmt.Sprintf("%d ticket(s): %s", request.Quantity, request.EventName),
			RelatedModel: utils.RelatedModelTicket,
			RelatedID:    &ticket.ID,
		})
		if err != nil {
			return err
		}
		return s.ticketRepo.Create(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionCreate,
		Resource:    utils.RelatedModelTicket,
		ResourceID:  ticket.ID.Hex(),
		Description: fmt.Sprintf("%d ticket(s) for %s, total %.2f", request.Quantity, request.EventName, total),
	})

	s.notificationService.Notify(ctx, userID, models.NotificationTypeTicketPurchased,
		"Tickets purchased",
		fmt.Sprintf("You bought %d ticket(s) for %s. %.2f %s was deducted from your balance.", request.Quantity, request.EventName, total, ticket.Currency),
		map[string]interface{}{"ticket_id": ticket.ID.Hex()},
	)

	return ticket, nil
}

func (s *ticketService) Refund(ctx context.Context, ticketID, userID primitive.ObjectID) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, models.ErrTicketNotFound
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		refunded, err := s.ticketRepo.RefundActive(ctx, ticketID)
		if err != nil {
			return err
		}
		if !refunded {
			return models.ErrTicketNotActive
		}

		_, err = s.ledgerService.Credit(ctx, ticket.UserID, ticket.Total, models.TransactionPurposeTicketRefund, &LedgerEntryParams{
			Description:  fmt.Sprintf("ticket refund: %s", ticket.EventName),
			RelatedModel: utils.RelatedModelTicket,
			RelatedID:    &ticketID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionUpdate,
		Resource:    utils.RelatedModelTicket,
		ResourceID:  ticketID.Hex(),
		Description: fmt.Sprintf("ticket refunded, %.2f credited", ticket.Total),
	})

	return s.ticketRepo.GetByID(ctx, ticketID)
}

func (s *ticketService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

func (s *ticketService) GetUserTickets(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	return s.ticketRepo.GetByUserID(ctx, userID, params)
}

func (s *ticketService) GetEventTickets(ctx context.Context, eventID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	return s.ticketRepo.GetByEventID(ctx, eventID, params)
}
