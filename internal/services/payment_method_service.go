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

// PaymentMethodService manages the admin-configured registry of payment
// destinations. Default promotion demotes siblings of the same type in the
// same transaction, so at most one default per type is observable at any
// instant.
type PaymentMethodService interface {
	Create(ctx context.Context, adminID primitive.ObjectID, request *CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	Update(ctx context.Context, adminID, id primitive.ObjectID, request *UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	ToggleStatus(ctx context.Context, adminID, id primitive.ObjectID) (*models.PaymentMethod, error)
	SetDefault(ctx context.Context, adminID, id primitive.ObjectID) (*models.PaymentMethod, error)
	Delete(ctx context.Context, adminID, id primitive.ObjectID) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentMethod, error)
	List(ctx context.Context, filter *interfaces.PaymentMethodFilter, params *utils.PaginationParams) ([]*models.PaymentMethod, int64, error)
	ListActive(ctx context.Context) ([]*models.PaymentMethod, error)
}

type CreatePaymentMethodRequest struct {
	Type      models.PaymentMethodType     `json:"type" validate:"required"`
	Label     string                       `json:"label" validate:"required"`
	Bank      *models.BankAccountDetails   `json:"bank,omitempty"`
	Crypto    *models.CryptoWalletDetails  `json:"crypto,omitempty"`
	Mobile    *models.MobilePaymentDetails `json:"mobile,omitempty"`
	Fee       float64                      `json:"fee"`
	IsDefault bool                         `json:"is_default"`
}

// UpdatePaymentMethodRequest is a partial update; nil fields keep the
// stored value. Type is immutable after creation.
type UpdatePaymentMethodRequest struct {
	Label  *string                      `json:"label,omitempty"`
	Bank   *models.BankAccountDetails   `json:"bank,omitempty"`
	Crypto *models.CryptoWalletDetails  `json:"crypto,omitempty"`
	Mobile *models.MobilePaymentDetails `json:"mobile,omitempty"`
	Fee    *float64                     `json:"fee,omitempty"`
	Status *bool                        `json:"status,omitempty"`
}

type paymentMethodService struct {
	paymentMethodRepo   interfaces.PaymentMethodRepository
	depositRepo         interfaces.DepositRepository
	auditService        AuditService
	notificationService NotificationService
	transactor          Transactor
	logger              *logger.Logger
}

func NewPaymentMethodService(
	paymentMethodRepo interfaces.PaymentMethodRepository,
	depositRepo interfaces.DepositRepository,
	auditService AuditService,
	notificationService NotificationService,
	transactor Transactor,
	logger *logger.Logger,
) PaymentMethodService {
	return &paymentMethodService{
		paymentMethodRepo:   paymentMethodRepo,
		depositRepo:         depositRepo,
		auditService:        auditService,
		notificationService: notificationService,
		transactor:          transactor,
		logger:              logger,
	}
}

func (s *paymentMethodService) Create(ctx context.Context, adminID primitive.ObjectID, request *CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{
		Type:      request.Type,
		Label:     request.Label,
		Bank:      request.Bank,
		Crypto:    request.Crypto,
		Mobile:    request.Mobile,
		Fee:       request.Fee,
		Status:    true,
		IsDefault: request.IsDefault,
		CreatedBy: adminID,
	}

	if err := method.Validate(); err != nil {
		return nil, err
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if method.IsDefault {
			if err := s.paymentMethodRepo.ClearDefault(ctx, method.Type, primitive.NilObjectID); err != nil {
				return err
			}
		}
		return s.paymentMethodRepo.Create(ctx, method)
	})
	if err != nil {
		return nil, err
	}

	s.paymentMethodRepo.InvalidateActiveCache(ctx)
	s.recordAdminAction(ctx, adminID, models.AuditActionCreate, method, "payment method created")

	return method, nil
}

func (s *paymentMethodService) Update(ctx context.Context, adminID, id primitive.ObjectID, request *UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	method, err := s.paymentMethodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Label != nil {
		method.Label = *request.Label
	}
	if request.Bank != nil {
		method.Bank = request.Bank
	}
	if request.Crypto != nil {
		method.Crypto = request.Crypto
	}
	if request.Mobile != nil {
		method.Mobile = request.Mobile
	}
	if request.Fee != nil {
		method.Fee = *request.Fee
	}
	if request.Status != nil {
		method.Status = *request.Status
	}

	// Validate the merged document, not the patch: a partial update must
	// never leave the effective method in an invalid shape.
	if err := method.Validate(); err != nil {
		return nil, err
	}

	if err := s.paymentMethodRepo.Update(ctx, method); err != nil {
		return nil, err
	}

	s.paymentMethodRepo.InvalidateActiveCache(ctx)
	s.recordAdminAction(ctx, adminID, models.AuditActionUpdate, method, "payment method updated")

	return method, nil
}

func (s *paymentMethodService) ToggleStatus(ctx context.Context, adminID, id primitive.ObjectID) (*models.PaymentMethod, error) {
	method, err := s.paymentMethodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	method.Status = !method.Status
	if err := s.paymentMethodRepo.Update(ctx, method); err != nil {
		return nil, err
	}

	s.paymentMethodRepo.InvalidateActiveCache(ctx)
	s.recordAdminAction(ctx, adminID, models.AuditActionUpdate, method,
		fmt.Sprintf("payment method status set to %t", method.Status))

	return method, nil
}

func (s *paymentMethodService) SetDefault(ctx context.Context, adminID, id primitive.ObjectID) (*models.PaymentMethod, error) {
	var method *models.PaymentMethod
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		method, err = s.paymentMethodRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.paymentMethodRepo.ClearDefault(ctx, method.Type, id); err != nil {
			return err
		}

		if err := s.paymentMethodRepo.SetDefault(ctx, id); err != nil {
			return err
		}
		method.IsDefault = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.paymentMethodRepo.InvalidateActiveCache(ctx)
	s.recordAdminAction(ctx, adminID, models.AuditActionUpdate, method, "payment method promoted to default")

	return method, nil
}

func (s *paymentMethodService) Delete(ctx context.Context, adminID, id primitive.ObjectID) error {
	method, err := s.paymentMethodRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pending, err := s.depositRepo.CountPendingByMethod(ctx, id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return models.ErrPaymentMethodInUse
	}

	if err := s.paymentMethodRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.paymentMethodRepo.InvalidateActiveCache(ctx)
	s.recordAdminAction(ctx, adminID, models.AuditActionDelete, method, "payment method deleted")

	return nil
}

func (s *paymentMethodService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentMethod, error) {
	return s.paymentMethodRepo.GetByID(ctx, id)
}

func (s *paymentMethodService) List(ctx context.Context, filter *interfaces.PaymentMethodFilter, params *utils.PaginationParams) ([]*models.PaymentMethod, int64, error) {
	return s.paymentMethodRepo.List(ctx, filter, params)
}

func (s *paymentMethodService) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	return s.paymentMethodRepo.ListActive(ctx)
}

func (s *paymentMethodService) recordAdminAction(ctx context.Context, adminID primitive.ObjectID, action models.AuditAction, method *models.PaymentMethod, description string) {
	s.logger.LogAdminAction(adminID, string(action), "payment_method", map[string]interface{}{
		"method_id": method.ID.Hex(),
		"type":      method.Type,
		"label":     method.Label,
	})

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &adminID,
		Action:      action,
		Resource:    "payment_method",
		ResourceID:  method.ID.Hex(),
		Description: description,
		Metadata: map[string]interface{}{
			"type":  method.Type,
			"label": method.Label,
		},
	})

	s.notificationService.Notify(ctx, adminID, models.NotificationTypePaymentMethod,
		"Payment method "+string(action)+"d", description, map[string]interface{}{
			"method_id": method.ID.Hex(),
			"type":      method.Type,
			"label":     method.Label,
		})
}
