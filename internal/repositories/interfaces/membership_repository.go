package interfaces

import (
	"context"

	"starbook/internal/models"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Membership, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Membership, int64, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}
