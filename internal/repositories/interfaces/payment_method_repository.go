package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethodFilter narrows the admin list view.
type PaymentMethodFilter struct {
	Type   *models.PaymentMethodType
	Status *bool
}

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *models.PaymentMethod) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentMethod, error)

	// Update writes the mutable fields of the merged document. It never
	// touches is_default: only Create, ClearDefault and SetDefault own
	// that flag, so a stale read-modify-write cannot undo a concurrent
	// promotion or demotion.
	Update(ctx context.Context, method *models.PaymentMethod) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, filter *PaymentMethodFilter, params *utils.PaginationParams) ([]*models.PaymentMethod, int64, error)
	ListActive(ctx context.Context) ([]*models.PaymentMethod, error)

	// ClearDefault demotes every method of the given type except excludeID.
	// Callers run it in the same transaction as the promotion so default
	// uniqueness holds at every observable instant.
	ClearDefault(ctx context.Context, methodType models.PaymentMethodType, excludeID primitive.ObjectID) error

	// SetDefault raises is_default on a single method. Pair with
	// ClearDefault in one transaction.
	SetDefault(ctx context.Context, id primitive.ObjectID) error

	// InvalidateActiveCache drops the cached active list. Callers invoke
	// it after their transaction commits; invalidating mid-transaction
	// would let a concurrent read repopulate the cache with pre-commit
	// state.
	InvalidateActiveCache(ctx context.Context)
}
