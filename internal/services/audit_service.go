package services

import (
	"context"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditService records state-changing operations. Recording is best-effort:
// a failed audit write is logged but never fails the operation it describes.
type AuditService interface {
	Record(ctx context.Context, entry *AuditEntry)

	GetLog(ctx context.Context, id primitive.ObjectID) (*models.AuditLog, error)
	ListByActor(ctx context.Context, actorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	ListByAction(ctx context.Context, action models.AuditAction, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	ListByResource(ctx context.Context, resource string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	GetResourceHistory(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
}

type AuditEntry struct {
	ActorID     *primitive.ObjectID
	Action      models.AuditAction
	Resource    string
	ResourceID  string
	Description string
	Metadata    map[string]interface{}
}

type auditService struct {
	auditRepo interfaces.AuditLogRepository
	logger    *logger.Logger
}

func NewAuditService(auditRepo interfaces.AuditLogRepository, logger *logger.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *auditService) Record(_ context.Context, entry *AuditEntry) {
	// Detached from the caller's context so a committed operation is
	// recorded even when the request context is already cancelled.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		auditLog := &models.AuditLog{
			ActorID:     entry.ActorID,
			Action:      entry.Action,
			Resource:    entry.Resource,
			ResourceID:  entry.ResourceID,
			Description: entry.Description,
			Metadata:    entry.Metadata,
		}

		if err := s.auditRepo.Create(ctx, auditLog); err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"action":   entry.Action,
				"resource": entry.Resource,
			}).Error("Failed to record audit log")
		}
	}()
}

func (s *auditService) GetLog(ctx context.Context, id primitive.ObjectID) (*models.AuditLog, error) {
	return s.auditRepo.GetByID(ctx, id)
}

func (s *auditService) ListByActor(ctx context.Context, actorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.GetByActorID(ctx, actorID, params)
}

func (s *auditService) ListByAction(ctx context.Context, action models.AuditAction, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.GetByAction(ctx, action, params)
}

func (s *auditService) ListByResource(ctx context.Context, resource string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.GetByResource(ctx, resource, params)
}

func (s *auditService) GetResourceHistory(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.GetResourceHistory(ctx, resource, resourceID, params)
}

func (s *auditService) ListByDateRange(ctx context.Context, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.GetByDateRange(ctx, startDate, endDate, params)
}
