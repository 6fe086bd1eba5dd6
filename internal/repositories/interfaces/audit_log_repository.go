package interfaces

import (
	"context"
	"time"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLogRepository interface {
	Create(ctx context.Context, auditLog *models.AuditLog) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AuditLog, error)

	GetByActorID(ctx context.Context, actorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	GetByAction(ctx context.Context, action models.AuditAction, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	GetByResource(ctx context.Context, resource string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	GetResourceHistory(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
}
