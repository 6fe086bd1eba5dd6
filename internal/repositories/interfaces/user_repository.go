package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)

	// Balance primitive. ApplyBalanceDelta atomically adds delta to the
	// account's balance, guarded so the result can never go below zero,
	// and returns the document as it was immediately before the change.
	// It fails with models.ErrInsufficientFunds when the guard rejects
	// the write and models.ErrAccountNotFound when the account does not
	// exist.
	ApplyBalanceDelta(ctx context.Context, id primitive.ObjectID, delta float64) (*models.User, error)
}
