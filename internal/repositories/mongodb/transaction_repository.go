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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) interfaces.TransactionRepository {
	return &transactionRepository{
		collection: db.Collection("transactions"),
	}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, transaction)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &transaction, nil
}

func (r *transactionRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	filter := bson.M{"user_id": userID}
	return r.findTransactionsWithFilter(ctx, filter, params)
}

func (r *transactionRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Transaction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}

	return &transaction, nil
}

func (r *transactionRepository) GetByPurpose(ctx context.Context, purpose models.TransactionPurpose, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	filter := bson.M{"purpose": purpose}
	return r.findTransactionsWithFilter(ctx, filter, params)
}

func (r *transactionRepository) GetByRelated(ctx context.Context, relatedModel string, relatedID primitive.ObjectID) ([]*models.Transaction, error) {
	filter := bson.M{
		"related_model": relatedModel,
		"related_id":    relatedID,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find related transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	for cursor.Next(ctx) {
		var transaction models.Transaction
		if err := cursor.Decode(&transaction); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, nil
}

func (r *transactionRepository) GetByDateRange(ctx context.Context, userID primitive.ObjectID, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	filter := bson.M{
		"user_id": userID,
		"created_at": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}
	return r.findTransactionsWithFilter(ctx, filter, params)
}

func (r *transactionRepository) findTransactionsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Transaction, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	for cursor.Next(ctx) {
		var transaction models.Transaction
		if err := cursor.Decode(&transaction); err != nil {
			return nil, 0, fmt.Errorf("failed to decode transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, total, nil
}
