package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByCelebrityID(ctx context.Context, celebrityID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// CancelConfirmed flips confirmed -> cancelled via compare-and-swap
	// and reports false when no confirmed document matched.
	CancelConfirmed(ctx context.Context, id primitive.ObjectID) (bool, error)
}
