package mongodb

import (
	"context"
	"fmt"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type membershipRepository struct {
	collection *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) interfaces.MembershipRepository {
	return &membershipRepository{
		collection: db.Collection("memberships"),
	}
}

func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	if membership.ID.IsZero() {
		membership.ID = primitive.NewObjectID()
	}
	membership.CreatedAt = time.Now()
	membership.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, membership)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Membership, error) {
	var membership models.Membership
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&membership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Membership, error) {
	filter := bson.M{
		"user_id":    userID,
		"status":     models.MembershipStatusActive,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var membership models.Membership
	err := r.collection.FindOne(ctx, filter).Decode(&membership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get active membership: %w", err)
	}

	return &membership, nil
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Membership, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find memberships: %w", err)
	}
	defer cursor.Close(ctx)

	var memberships []*models.Membership
	for cursor.Next(ctx) {
		var membership models.Membership
		if err := cursor.Decode(&membership); err != nil {
			return nil, 0, fmt.Errorf("failed to decode membership: %w", err)
		}
		memberships = append(memberships, &membership)
	}

	return memberships, total, nil
}

func (r *membershipRepository) ExpireOverdue(ctx context.Context) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{
			"status":     models.MembershipStatusActive,
			"expires_at": bson.M{"$lte": time.Now()},
		},
		bson.M{"$set": bson.M{
			"status":     models.MembershipStatusExpired,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire memberships: %w", err)
	}

	return result.ModifiedCount, nil
}
