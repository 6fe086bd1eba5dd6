package services

import (
	"context"
	"fmt"
	"time"

	"starbook/internal/models"
	"starbook/internal/repositories/interfaces"
	"starbook/internal/utils"
	"starbook/pkg/cache"
	"starbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService persists in-app notifications and publishes them on a
// per-user redis channel for live delivery. Both are best-effort: a failure
// is logged and never propagates to the operation that triggered it.
type NotificationService interface {
	Notify(ctx context.Context, userID primitive.ObjectID, notifType models.NotificationType, title, message string, data map[string]interface{})

	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type notificationService struct {
	notificationRepo interfaces.NotificationRepository
	cache            *cache.RedisCache
	logger           *logger.Logger
}

func NewNotificationService(notificationRepo interfaces.NotificationRepository, cache *cache.RedisCache, logger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (s *notificationService) Notify(_ context.Context, userID primitive.ObjectID, notifType models.NotificationType, title, message string, data map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		notification := &models.Notification{
			UserID:  userID,
			Type:    notifType,
			Title:   title,
			Message: message,
			Data:    data,
		}

		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.WithError(err).WithUserID(userID).Error("Failed to persist notification")
			return
		}

		channel := fmt.Sprintf("%s%s", utils.NotificationChannelPrefix, userID.Hex())
		if err := s.cache.Publish(ctx, channel, notification); err != nil {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to publish notification")
		}
	}()
}

func (s *notificationService) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetByUserID(ctx, userID, params)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
