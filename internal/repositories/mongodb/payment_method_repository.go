package mongodb

import (
	"context"
	"fmt"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"

	"starbook/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentMethodRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

func NewPaymentMethodRepository(db *mongo.Database, redisCache *cache.RedisCache) interfaces.PaymentMethodRepository {
	return &paymentMethodRepository{
		collection: db.Collection("payment_methods"),
		cache:      redisCache,
	}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	if method.ID.IsZero() {
		method.ID = primitive.NewObjectID()
	}
	method.CreatedAt = time.Now()
	method.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, method)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return nil
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&method)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return &method, nil
}

// Update replaces the mutable fields with the already-merged document. The
// service validates the merged shape before calling, so a partial patch can
// never leave a variant incomplete in storage. is_default is deliberately
// absent from the $set: writing it back here would let a stale in-memory
// copy undo a concurrent ClearDefault.
func (r *paymentMethodRepository) Update(ctx context.Context, method *models.PaymentMethod) error {
	method.UpdatedAt = time.Now()

	updates := bson.M{
		"type":       method.Type,
		"label":      method.Label,
		"bank":       method.Bank,
		"crypto":     method.Crypto,
		"mobile":     method.Mobile,
		"fee":        method.Fee,
		"status":     method.Status,
		"updated_at": method.UpdatedAt,
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": method.ID},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrPaymentMethodNotFound
	}

	return nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrPaymentMethodNotFound
	}

	return nil
}

func (r *paymentMethodRepository) List(ctx context.Context, filter *interfaces.PaymentMethodFilter, params *utils.PaginationParams) ([]*models.PaymentMethod, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Type != nil {
			query["type"] = *filter.Type
		}
		if filter.Status != nil {
			query["status"] = *filter.Status
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payment methods: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find payment methods: %w", err)
	}
	defer cursor.Close(ctx)

	var methods []*models.PaymentMethod
	for cursor.Next(ctx) {
		var method models.PaymentMethod
		if err := cursor.Decode(&method); err != nil {
			return nil, 0, fmt.Errorf("failed to decode payment method: %w", err)
		}
		methods = append(methods, &method)
	}

	return methods, total, nil
}

func (r *paymentMethodRepository) ListActive(ctx context.Context) ([]*models.PaymentMethod, error) {
	// Cache-aside: the active list is the hottest read on the platform.
	if r.cache != nil {
		var cached []*models.PaymentMethod
		if err := r.cache.Get(ctx, utils.CacheKeyActivePaymentMethods, &cached); err == nil {
			return cached, nil
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active payment methods: %w", err)
	}
	defer cursor.Close(ctx)

	var methods []*models.PaymentMethod
	for cursor.Next(ctx) {
		var method models.PaymentMethod
		if err := cursor.Decode(&method); err != nil {
			return nil, fmt.Errorf("failed to decode payment method: %w", err)
		}
		methods = append(methods, &method)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheKeyActivePaymentMethods, methods, utils.CacheTTLPaymentMethods)
	}

	return methods, nil
}

func (r *paymentMethodRepository) ClearDefault(ctx context.Context, methodType models.PaymentMethodType, excludeID primitive.ObjectID) error {
	filter := bson.M{
		"type":       methodType,
		"is_default": true,
	}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	_, err := r.collection.UpdateMany(
		ctx,
		filter,
		bson.M{"$set": bson.M{"is_default": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear default payment methods: %w", err)
	}

	return nil
}

func (r *paymentMethodRepository) SetDefault(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set default payment method: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrPaymentMethodNotFound
	}

	return nil
}

func (r *paymentMethodRepository) InvalidateActiveCache(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheKeyActivePaymentMethods)
	}
}
