package interfaces

import (
	"context"
	"time"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRepository is append-only: entries are created and read, never
// updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)

	// Statement feed
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Transaction, error)

	// Filtering
	GetByPurpose(ctx context.Context, purpose models.TransactionPurpose, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
	GetByRelated(ctx context.Context, relatedModel string, relatedID primitive.ObjectID) ([]*models.Transaction, error)
	GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.Transaction, int64, error)
}
