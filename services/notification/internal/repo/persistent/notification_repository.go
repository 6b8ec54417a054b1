package persistent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myshop/pkg/logger"
	"myshop/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	broadcastListKey    = "broadcasts"
	broadcastChannel    = "broadcasts"
	maxStoredPerUser    = 99
	maxStoredBroadcasts = 49
	retention           = 30 * 24 * time.Hour
)

type NotificationRepository interface {
	Append(ctx context.Context, userID string, notification entity.Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	AppendBroadcast(ctx context.Context, broadcast entity.Broadcast) error
	ListBroadcasts(ctx context.Context, limit int) ([]entity.Broadcast, error)
}

type notificationRepository struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationRepository(redisClient *redis.Client, logger *logger.Logger) NotificationRepository {
	return &notificationRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func userNotificationsKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func userNotificationsChannel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Append pushes one notification onto the user's list without touching
// existing entries, so a retried or duplicated write can never clobber state.
func (r *notificationRepository) Append(ctx context.Context, userID string, notification entity.Notification) error {
	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := userNotificationsKey(userID)
	if err := r.redisClient.LPush(ctx, key, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	r.redisClient.LTrim(ctx, key, 0, maxStoredPerUser)
	r.redisClient.Expire(ctx, key, retention)

	// Publish for realtime delivery; stored copy is the source of truth
	if err := r.redisClient.Publish(ctx, userNotificationsChannel(userID), notificationJSON).Err(); err != nil {
		r.logger.Warn("Failed to publish notification for user %s: %v", userID, err)
	}

	return nil
}

func (r *notificationRepository) List(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error) {
	key := userNotificationsKey(userID)

	raw, err := r.redisClient.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(raw))
	for _, notifJSON := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(notifJSON), &notification); err == nil {
			notifications = append(notifications, notification)
		}
	}

	totalCount, _ := r.redisClient.LLen(ctx, key).Result()

	return notifications, totalCount, nil
}

// MarkAllRead rewrites the user's personal list with is_read set on every
// entry. Broadcasts are shared documents and are not touched here.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	key := userNotificationsKey(userID)

	raw, err := r.redisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	if len(raw) == 0 {
		return 0, nil
	}

	updated := 0
	rewritten := make([]interface{}, 0, len(raw))
	for _, notifJSON := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(notifJSON), &notification); err != nil {
			rewritten = append(rewritten, notifJSON)
			continue
		}
		if !notification.IsRead {
			notification.IsRead = true
			updated++
		}
		updatedJSON, err := json.Marshal(notification)
		if err != nil {
			rewritten = append(rewritten, notifJSON)
			continue
		}
		rewritten = append(rewritten, string(updatedJSON))
	}

	pipe := r.redisClient.TxPipeline()
	pipe.Del(ctx, key)
	// RPush preserves the original newest-first ordering of the list
	pipe.RPush(ctx, key, rewritten...)
	pipe.Expire(ctx, key, retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to rewrite notifications: %w", err)
	}

	return updated, nil
}

func (r *notificationRepository) AppendBroadcast(ctx context.Context, broadcast entity.Broadcast) error {
	broadcastJSON, err := json.Marshal(broadcast)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast: %w", err)
	}

	if err := r.redisClient.LPush(ctx, broadcastListKey, broadcastJSON).Err(); err != nil {
		return fmt.Errorf("failed to append broadcast: %w", err)
	}
	r.redisClient.LTrim(ctx, broadcastListKey, 0, maxStoredBroadcasts)

	if err := r.redisClient.Publish(ctx, broadcastChannel, broadcastJSON).Err(); err != nil {
		r.logger.Warn("Failed to publish broadcast %s: %v", broadcast.ID, err)
	}

	return nil
}

// ListBroadcasts returns the newest broadcasts first; the list is stored
// newest-first already, so no re-sort is needed.
func (r *notificationRepository) ListBroadcasts(ctx context.Context, limit int) ([]entity.Broadcast, error) {
	raw, err := r.redisClient.LRange(ctx, broadcastListKey, 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get broadcasts: %w", err)
	}

	broadcasts := make([]entity.Broadcast, 0, len(raw))
	for _, broadcastJSON := range raw {
		var broadcast entity.Broadcast
		if err := json.Unmarshal([]byte(broadcastJSON), &broadcast); err == nil {
			broadcasts = append(broadcasts, broadcast)
		}
	}

	return broadcasts, nil
}
