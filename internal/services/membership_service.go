package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipService sells time-boxed membership plans. The plan terms are
// frozen into the membership at purchase so later plan edits never affect
// existing members.
type MembershipService interface {
	Subscribe(ctx context.Context, userID primitive.ObjectID, request *SubscribeRequest) (*models.Membership, error)

	GetActive(ctx context.Context, userID primitive.ObjectID) (*models.Membership, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Membership, int64, error)

	// ExpireOverdue sweeps active memberships past their expiry. Meant to
	// run from a periodic job.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type SubscribeRequest struct {
	PlanID       primitive.ObjectID `json:"plan_id" validate:"required"`
	PlanName     string             `json:"plan_name" validate:"required"`
	Price        float64            `json:"price" validate:"required,gt=0"`
	DurationDays int                `json:"duration_days" validate:"required,gt=0"`
}

type membershipService struct {
	membershipRepo      interfaces.MembershipRepository
	ledgerService       LedgerService
	auditService        AuditService
	notificationService NotificationService
	transactor          Transactor
	logger              *logger.Logger
}

func NewMembershipService(
	membershipRepo interfaces.MembershipRepository,
	ledgerService LedgerService,
	auditService AuditService,
	notificationService NotificationService,
	transactor Transactor,
	logger *logger.Logger,
) MembershipService {
	return &membershipService{
		membershipRepo:      membershipRepo,
		ledgerService:       ledgerService,
		auditService:        auditService,
		notificationService: notificationService,
		transactor:          transactor,
		logger:              logger,
	}
}

func (s *membershipService) Subscribe(ctx context.Context, userID primitive.ObjectID, request *SubscribeRequest) (*models.Membership, error) {
	if request.Price <= 0 || request.DurationDays <= 0 {
		return nil, models.ErrInvalidAmount
	}

	existing, err := s.membershipRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrMembershipNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrMembershipActive
	}

	now := time.Now()
	membership := &models.Membership{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Plan: models.PlanSnapshot{
			PlanID:       request.PlanID,
			Name:         request.PlanName,
			Price:        request.Price,
			DurationDays: request.DurationDays,
		},
		Status:    models.MembershipStatusActive,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, 0, request.DurationDays),
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := s.ledgerService.Debit(ctx, userID, request.Price, models.TransactionPurposeMembershipPayment, &LedgerEntryParams{
			Description:  fmt.Sprintf("membership: %s", request.PlanName),
			RelatedModel: utils.RelatedModelMembership,
			RelatedID:    &membership.ID,
		})
		if err != nil {
			return err
		}
		return s.membershipRepo.Create(ctx, membership)
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &AuditEntry{
		ActorID:     &userID,
		Action:      models.AuditActionCreate,
		Resource:    utils.RelatedModelMembership,
		ResourceID:  membership.ID.Hex(),
		Description: fmt.Sprintf("membership %s for %.2f, %d days", request.PlanName, request.Price, request.DurationDays),
	})

	s.notificationService.Notify(ctx, userID, models.NotificationTypeMembershipActive,
		"Membership active",
		fmt.Sprintf("Your %s membership is active until %s.", request.PlanName, membership.ExpiresAt.Format("2006-01-02")),
		map[string]interface{}{"membership_id": membership.ID.Hex()},
	)

	return membership, nil
}

func (s *membershipService) GetActive(ctx context.Context, userID primitive.ObjectID) (*models.Membership, error) {
	return s.membershipRepo.GetActiveByUserID(ctx, userID)
}

func (s *membershipService) GetHistory(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Membership, int64, error) {
	return s.membershipRepo.GetByUserID(ctx, userID, params)
}

func (s *membershipService) ExpireOverdue(ctx context.Context) (int64, error) {
	expired, err := s.membershipRepo.ExpireOverdue(ctx)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.logger.WithField("count", expired).Info("Expired overdue memberships")
	}
	return expired, nil
}
