package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepositRepository interface {
	Create(ctx context.Context, deposit *models.Deposit) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Deposit, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Deposit, int64, error)
	GetByStatus(ctx context.Context, status models.DepositStatus, params *utils.PaginationParams) ([]*models.Deposit, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Deposit, int64, error)

	// State transitions. Both are compare-and-swap updates matched on
	// status=pending; they report false when no pending document matched,
	// leaving the caller to distinguish not-found from terminal.
	CompletePending(ctx context.Context, id, adminID primitive.ObjectID, notes string) (bool, error)
	FailPending(ctx context.Context, id, adminID primitive.ObjectID, notes string) (bool, error)

	// CountPendingByMethod backs the payment-method delete guard.
	CountPendingByMethod(ctx context.Context, methodID primitive.ObjectID) (int64, error)
}
