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

type depositRepository struct {
	collection *mongo.Collection
}

func NewDepositRepository(db *mongo.Database) interfaces.DepositRepository {
	return &depositRepository{
		collection: db.Collection("deposits"),
	}
}

func (r *depositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	deposit.ID = primitive.NewObjectID()
	deposit.Status = models.DepositStatusPending
	deposit.CreatedAt = time.Now()
	deposit.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, deposit)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	return nil
}

func (r *depositRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Deposit, error) {
	var deposit models.Deposit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&deposit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}

	return &deposit, nil
}

func (r *depositRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	filter := bson.M{"user_id": userID}
	return r.findDepositsWithFilter(ctx, filter, params)
}

func (r *depositRepository) GetByStatus(ctx context.Context, status models.DepositStatus, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	filter := bson.M{"status": status}
	return r.findDepositsWithFilter(ctx, filter, params)
}

func (r *depositRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	return r.findDepositsWithFilter(ctx, bson.M{}, params)
}

// CompletePending flips pending -> completed. The status in the filter makes
// the update a compare-and-swap: a deposit already in a terminal state never
// matches, so a retried approval cannot credit twice.
func (r *depositRepository) CompletePending(ctx context.Context, id, adminID primitive.ObjectID, notes string) (bool, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":       models.DepositStatusCompleted,
			"credited_at":  now,
			"processed_by": adminID,
			"processed_at": now,
			"notes":        notes,
			"updated_at":   now,
		},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.DepositStatusPending},
		update,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete deposit: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *depositRepository) FailPending(ctx context.Context, id, adminID primitive.ObjectID, notes string) (bool, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":       models.DepositStatusFailed,
			"processed_by": adminID,
			"processed_at": now,
			"notes":        notes,
			"updated_at":   now,
		},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.DepositStatusPending},
		update,
	)
	if err != nil {
		return false, fmt.Errorf("failed to reject deposit: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *depositRepository) CountPendingByMethod(ctx context.Context, methodID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"payment.payment_method_id": methodID,
		"status":                    models.DepositStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending deposits: %w", err)
	}

	return count, nil
}

func (r *depositRepository) findDepositsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Deposit, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count deposits: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find deposits: %w", err)
	}
	defer cursor.Close(ctx)

	var deposits []*models.Deposit
	for cursor.Next(ctx) {
		var deposit models.Deposit
		if err := cursor.Decode(&deposit); err != nil {
			return nil, 0, fmt.Errorf("failed to decode deposit: %w", err)
		}
		deposits = append(deposits, &deposit)
	}

	return deposits, total, nil
}
