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

type ticketRepository struct {
	collection *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) interfaces.TicketRepository {
	return &ticketRepository{
		collection: db.Collection("tickets"),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if ticket.ID.IsZero() {
		ticket.ID = primitive.NewObjectID()
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

func (r *ticketRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	filter := bson.M{"user_id": userID}
	return r.findTicketsWithFilter(ctx, filter, params)
}

func (r *ticketRepository) GetByEventID(ctx context.Context, eventID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	filter := bson.M{"event_id": eventID}
	return r.findTicketsWithFilter(ctx, filter, params)
}

func (r *ticketRepository) RefundActive(ctx context.Context, id primitive.ObjectID) (bool, error) {
	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.TicketStatusActive},
		bson.M{"$set": bson.M{
			"status":      models.TicketStatusRefunded,
			"refunded_at": now,
			"updated_at":  now,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to refund ticket: %w", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *ticketRepository) findTicketsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Ticket, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	for cursor.Next(ctx) {
		var ticket models.Ticket
		if err := cursor.Decode(&ticket); err != nil {
			return nil, 0, fmt.Errorf("failed to decode ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, total, nil
}
