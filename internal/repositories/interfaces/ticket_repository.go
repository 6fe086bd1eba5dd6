package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error)
	GetByEventID(ctx context.Context, eventID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error)

	// RefundActive flips active -> refunded via compare-and-swap and
	// reports false when no active document matched.
	RefundActive(ctx context.Context, id primitive.ObjectID) (bool, error)
}
