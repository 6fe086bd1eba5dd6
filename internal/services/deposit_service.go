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

// DepositService drives the manual top-up workflow: a user submits a
// deposit against an active payment method, an admin approves or rejects
// it. Approval flips the deposit and credits the ledger in one transaction,
// guarded so a deposit can never be credited twice.
type DepositService interface {
	Create(ctx context.Context, userID primitive.ObjectID, request *CreateDepositRequest) (*models.Deposit, error)
	Approve(ctx context.Context, depositID, adminID primitive.ObjectID, notes string) (*models.Deposit, error)
	Reject(ctx context.Context, depositID, adminID primitive.ObjectID, notes string) (*models.Deposit, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Deposit, error)
	GetUserDeposit(ctx context.Context, id, userID primitive.ObjectID) (*models.Deposit, error)
	GetUserDeposits(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Deposit, int64, error)
	ListByStatus(ctx context.Context, status models.DepositStatus, params *utils.PaginationParams) ([]*models.Deposit, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Deposit, int64, error)
}

type CreateDepositRequest struct {
	Amount          float64            `json:"amount" validate:"required,gt=0"`
	PaymentMethodID primitive.ObjectID `json:"payment_method_id" validate:"required"`
	ProofOfPayment  string             `json:"proof_of_payment" validate:"required"`
}

type depositService struct {
	depositRepo         interfaces.DepositRepository
	paymentMethodRepo   interfaces.PaymentMethodRepository
	ledgerService       LedgerService
	auditService        AuditService
	notificationService NotificationService
	transactor          Transactor
	logger              *logger.Logger
}

func NewDepositService(
	depositRepo interfaces.DepositRepository,
	paymentMethodRepo interfaces.PaymentMethodRepository,
	ledgerService LedgerService,
	auditService AuditService,
	notificationService NotificationService,
	transactor Transactor,
	logger *logger.Logger,
) DepositService {
	return &depositService{
		depositRepo:         depositRepo,
		paymentMethodRepo:   paymentMethodRepo,
		ledgerService:       ledgerService,
		auditService:        auditService,
		notificationService: notificationService,
		transactor:          transactor,
		logger:              logger,
	}
}

func (s *depositService) Create(ctx context.Context, userID primitive.ObjectID, request *CreateDepositRequest) (*models.Deposit, error) {
	if request.Amount < utils.MinDepositAmount || request.Amount > utils.MaxDepositAmount {
		return nil, models.ErrInvalidAmount
	}

	method, err := s.paymentMethodRepo.GetByID(ctx, request.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if !method.Status {
		return nil, models.ErrPaymentMethodInactive
	}

	deposit := &models.Deposit{
		UserID:   userID,
		Amount:   request.Amount,
		Currency: utils.DefaultCurrency,
		Status:   models.DepositStatusPending,
		Payment: models.DepositPayment{
			PaymentMethodID: method.ID,
			MethodType:      method.Type,
			MethodLabel:     method.Label,
			MethodDetails:   method.Details(),
			ProofOfPayment:  request.ProofOfPayment,
			Amount:          request.Amount,
		},
	}

	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	s.logger.LogDepositEvent(deposit.ID, "submitted", deposit.Amount, map[string]interface{}{
		"user_id":     userID.Hex(),
		"method_type": method.Type,
	})

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionCreate,
		Resource:    utils.RelatedModelDeposit,
		ResourceID:  deposit.ID.Hex(),
		Description: fmt.Sprintf("deposit of %.2f submitted via %s", deposit.Amount, method.Label),
	})

	return deposit, nil
}

func (s *depositService) Approve(ctx context.Context, depositID, adminID primitive.ObjectID, notes string) (*models.Deposit, error) {
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		flipped, err := s.depositRepo.CompletePending(ctx, depositID, adminID, notes)
		if err != nil {
			return err
		}
		if !flipped {
			return s.classifyMissedFlip(ctx, depositID)
		}

		deposit, err := s.depositRepo.GetByID(ctx, depositID)
		if err != nil {
			return err
		}

		_, err = s.ledgerService.Credit(ctx, deposit.UserID, deposit.Amount, models.TransactionPurposeTopUp, &LedgerEntryParams{
			Description:  fmt.Sprintf("deposit via %s", deposit.Payment.MethodLabel),
			RelatedModel: utils.RelatedModelDeposit,
			RelatedID:    &depositID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	deposit, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	s.logger.LogDepositEvent(depositID, "approved", deposit.Amount, map[string]interface{}{
		"admin_id": adminID.Hex(),
	})

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &adminID,
		Action:      models.AuditActionApprove,
		Resource:    utils.RelatedModelDeposit,
		ResourceID:  depositID.Hex(),
		Description: notes,
		Metadata: map[string]interface{}{
			"amount":  deposit.Amount,
			"user_id": deposit.UserID.Hex(),
		},
	})

	s.notificationService.Notify(ctx, deposit.UserID, models.NotificationTypeDepositApproved,
		"Deposit approved",
		fmt.Sprintf("Your deposit of %.2f %s has been credited to your balance.", deposit.Amount, deposit.Currency),
		map[string]interface{}{"deposit_id": depositID.Hex()},
	)

	return deposit, nil
}

func (s *depositService) Reject(ctx context.Context, depositID, adminID primitive.ObjectID, notes string) (*models.Deposit, error) {
	flipped, err := s.depositRepo.FailPending(ctx, depositID, adminID, notes)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, s.classifyMissedFlip(ctx, depositID)
	}

	deposit, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return nil, err
	}

	s.logger.LogDepositEvent(depositID, "rejected", deposit.Amount, map[string]interface{}{
		"admin_id": adminID.Hex(),
	})

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &adminID,
		Action:      models.AuditActionReject,
		Resource:    utils.RelatedModelDeposit,
		ResourceID:  depositID.Hex(),
		Description: notes,
	})

	s.notificationService.Notify(ctx, deposit.UserID, models.NotificationTypeDepositRejected,
		"Deposit rejected",
		fmt.Sprintf("Your deposit of %.2f %s was rejected. %s", deposit.Amount, deposit.Currency, notes),
		map[string]interface{}{"deposit_id": depositID.Hex()},
	)

	return deposit, nil
}

// classifyMissedFlip turns a compare-and-swap miss into the right business
// error: the deposit either does not exist or already reached a terminal
// state.
func (s *depositService) classifyMissedFlip(ctx context.Context, depositID primitive.ObjectID) error {
	if _, err := s.depositRepo.GetByID(ctx, depositID); err != nil {
		return err
	}
	return models.ErrDepositNotPending
}

func (s *depositService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Deposit, error) {
	return s.depositRepo.GetByID(ctx, id)
}

func (s *depositService) GetUserDeposit(ctx context.Context, id, userID primitive.ObjectID) (*models.Deposit, error) {
	deposit, err := s.depositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deposit.UserID != userID {
		return nil, models.ErrDepositNotFound
	}
	return deposit, nil
}

func (s *depositService) GetUserDeposits(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	return s.depositRepo.GetByUserID(ctx, userID, params)
}

func (s *depositService) ListByStatus(ctx context.Context, status models.DepositStatus, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	return s.depositRepo.GetByStatus(ctx, status, params)
}

func (s *depositService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	return s.depositRepo.List(ctx, params)
}
