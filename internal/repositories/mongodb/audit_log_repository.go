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

type auditLogRepository struct {
	collection *mongo.Collection
}

func NewAuditLogRepository(db *mongo.Database) interfaces.AuditLogRepository {
	return &auditLogRepository{
		collection: db.Collection("audit_logs"),
	}
}

func (r *auditLogRepository) Create(ctx context.Context, auditLog *models.AuditLog) error {
	auditLog.ID = primitive.NewObjectID()
	auditLog.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, auditLog)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

func (r *auditLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AuditLog, error) {
	var auditLog models.AuditLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&auditLog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("audit log not found")
		}
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}

	return &auditLog, nil
}

func (r *auditLogRepository) GetByActorID(ctx context.Context, actorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	filter := bson.M{"actor_id": actorID}
	return r.findAuditLogsWithFilter(ctx, filter, params)
}

func (r *auditLogRepository) GetByAction(ctx context.Context, action models.AuditAction, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	filter := bson.M{"action": action}
	return r.findAuditLogsWithFilter(ctx, filter, params)
}

func (r *auditLogRepository) GetByResource(ctx context.Context, resource string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	filter := bson.M{"resource": resource}
	return r.findAuditLogsWithFilter(ctx, filter, params)
}

func (r *auditLogRepository) GetResourceHistory(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	filter := bson.M{
		"resource":    resource,
		"resource_id": resourceID,
	}
	return r.findAuditLogsWithFilter(ctx, filter, params)
}

func (r *auditLogRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	filter := bson.M{
		"created_at": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}
	return r.findAuditLogsWithFilter(ctx, filter, params)
}

func (r *auditLogRepository) findAuditLogsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	opts := params.GetSortOptions()
	// Audit logs read newest-first by default.
	if params.Sort == "created_at" || params.Sort == "" {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*models.AuditLog
	for cursor.Next(ctx) {
		var log models.AuditLog
		if err := cursor.Decode(&log); err != nil {
			return nil, 0, fmt.Errorf("failed to decode audit log: %w", err)
		}
		logs = append(logs, &log)
	}

	return logs, total, nil
}
