package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService is the only component allowed to move balances. Every
// mutation atomically pairs the balance change with an immutable
// transaction entry; no caller can produce one without the other.
type LedgerService interface {
	Credit(ctx context.Context, userID primitive.ObjectID, amount float64, purpose models.TransactionPurpose, params *LedgerEntryParams) (*models.Transaction, error)
	Debit(ctx context.Context, userID primitive.ObjectID, amount float64, purpose models.TransactionPurpose, params *LedgerEntryParams) (*models.Transaction, error)

	// Adjust applies a signed admin correction. Positive amounts credit,
	// negative amounts debit; either direction records purpose=adjustment.
	Adjust(ctx context.Context, adminID, userID primitive.ObjectID, amount float64, reason string) (*models.Transaction, error)

	GetBalance(ctx context.Context, userID primitive.ObjectID) (float64, error)
	GetEntry(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	GetStatement(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
	GetStatementByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
	GetByPurpose(ctx context.Context, purpose models.TransactionPurpose, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
	GetByRelated(ctx context.Context, relatedModel string, relatedID primitive.ObjectID) ([]*models.Transaction, error)
}

// LedgerEntryParams carries the optional descriptive fields of an entry.
type LedgerEntryParams struct {
	Description  string
	RelatedModel string
	RelatedID    *primitive.ObjectID
	Metadata     map[string]interface{}
}

type ledgerService struct {
	userRepo     interfaces.UserRepository
	txnRepo      interfaces.TransactionRepository
	auditService AuditService
	transactor   Transactor
	logger       *logger.Logger
}

func NewLedgerService(
	userRepo interfaces.UserRepository,
	txnRepo interfaces.TransactionRepository,
	auditService AuditService,
	transactor Transactor,
	logger *logger.Logger,
) LedgerService {
	return &ledgerService{
		userRepo:     userRepo,
		txnRepo:      txnRepo,
		auditService: auditService,
		transactor:   transactor,
		logger:       logger,
	}
}

func (s *ledgerService) Credit(ctx context.Context, userID primitive.ObjectID, amount float64, purpose models.TransactionPurpose, params *LedgerEntryParams) (*models.Transaction, error) {
	return s.apply(ctx, userID, models.TransactionTypeCredit, amount, purpose, params)
}

func (s *ledgerService) Debit(ctx context.Context, userID primitive.ObjectID, amount float64, purpose models.TransactionPurpose, params *LedgerEntryParams) (*models.Transaction, error) {
	return s.apply(ctx, userID, models.TransactionTypeDebit, amount, purpose, params)
}

func (s *ledgerService) apply(ctx context.Context, userID primitive.ObjectID, txnType models.TransactionType, amount float64, purpose models.TransactionPurpose, params *LedgerEntryParams) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if !purpose.IsValid() {
		return nil, models.ErrInvalidPurpose
	}
	if params == nil {
		params = &LedgerEntryParams{}
	}

	delta := amount
	if txnType == models.TransactionTypeDebit {
		delta = -amount
	}

	var txn *models.Transaction
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		before, err := s.userRepo.ApplyBalanceDelta(ctx, userID, delta)
		if err != nil {
			return err
		}

		txn = &models.Transaction{
			UserID:        userID,
			Type:          txnType,
			Purpose:       purpose,
			Amount:        amount,
			Currency:      before.Currency,
			Description:   params.Description,
			BalanceBefore: before.Balance,
			BalanceAfter:  before.Balance + delta,
			RelatedModel:  params.RelatedModel,
			RelatedID:     params.RelatedID,
			Metadata:      params.Metadata,
		}

		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to record ledger entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogLedgerEvent(userID, string(txnType), string(purpose), amount, txn.BalanceAfter)

	return txn, nil
}

func (s *ledgerService) Adjust(ctx context.Context, adminID, userID primitive.ObjectID, amount float64, reason string) (*models.Transaction, error) {
	if amount == 0 {
		return nil, models.ErrInvalidAmount
	}

	txnType := models.TransactionTypeCredit
	action := models.AuditActionCredit
	if amount < 0 {
		txnType = models.TransactionTypeDebit
		action = models.AuditActionDebit
	}

	params := &LedgerEntryParams{
		Description: reason,
		Metadata: map[string]interface{}{
			"admin_id": adminID.Hex(),
		},
	}

	txn, err := s.apply(ctx, userID, txnType, math.Abs(amount), models.TransactionPurposeAdjustment, params)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &adminID,
		Action:      action,
		Resource:    "user_balance",
		ResourceID:  userID.Hex(),
		Description: reason,
		Metadata: map[string]interface{}{
			"transaction_id": txn.ID.Hex(),
			"amount":         amount,
		},
	})

	return txn, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	return user.Balance, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	return s.txnRepo.GetByID(ctx, id)
}

func (s *ledgerService) GetStatement(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	return s.txnRepo.GetByUserID(ctx, userID, params)
}

func (s *ledgerService) GetStatementByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	return s.txnRepo.GetByDateRange(ctx, userID, startDate, endDate, params)
}

func (s *ledgerService) GetByPurpose(ctx context.Context, purpose models.TransactionPurpose, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	if !purpose.IsValid() {
		return nil, 0, models.ErrInvalidPurpose
	}
	return s.txnRepo.GetByPurpose(ctx, purpose, params)
}

func (s *ledgerService) GetByRelated(ctx context.Context, relatedModel string, relatedID primitive.ObjectID) ([]*models.Transaction, error) {
	return s.txnRepo.GetByRelated(ctx, relatedModel, relatedID)
}
