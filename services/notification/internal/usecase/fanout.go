package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myshop/pkg/activity"
	"myshop/pkg/batch"
	"myshop/pkg/logger"
	"myshop/pkg/queue"
	"myshop/services/notification/internal/entity"
	"myshop/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized    = errors.New("only admins can send notifications")
	ErrInvalidArgument = errors.New("notification title and message are required")
	ErrDirectoryFetch  = errors.New("failed to fetch recipient directory")

	// ErrDeliveryTimeout marks a per-recipient write that did not settle in
	// time. The underlying write may still land later; the append-only store
	// makes the resulting duplicate harmless.
	ErrDeliveryTimeout = errors.New("notification delivery timed out")
)

const (
	maxTitleLen   = 100
	maxMessageLen = 500
)

// EmailPublisher is the outbound email queue; *queue.Client satisfies it.
type EmailPublisher interface {
	PublishEmailTask(task queue.EmailTask) error
}

type NotificationUseCase interface {
	SendToAll(ctx context.Context, callerRole, title, message string, onProgress func(text string)) (entity.SendSummary, error)
	GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.DisplayNotification, int, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	recipientRepo    persistent.RecipientRepository
	emailPublisher   EmailPublisher
	tracker          *activity.Tracker
	logger           *logger.Logger
	concurrency      int
	writeTimeout     time.Duration
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	recipientRepo persistent.RecipientRepository,
	emailPublisher EmailPublisher,
	tracker *activity.Tracker,
	logger *logger.Logger,
	concurrency int,
	writeTimeout time.Duration,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		recipientRepo:    recipientRepo,
		emailPublisher:   emailPublisher,
		tracker:          tracker,
		logger:           logger,
		concurrency:      concurrency,
		writeTimeout:     writeTimeout,
	}
}

// SendToAll delivers one announcement to every user in the directory with
// bounded concurrency, then records a single shared broadcast copy so users
// whose per-user write failed still see the message. Per-recipient failures
// are aggregated into the summary, never raised; only authorization, input
// validation and the directory fetch are fatal.
func (uc *notificationUseCase) SendToAll(ctx context.Context, callerRole, title, message string, onProgress func(text string)) (entity.SendSummary, error) {
	if callerRole != "admin" {
		return entity.SendSummary{}, ErrUnauthorized
	}

	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" || len(title) > maxTitleLen || len(message) > maxMessageLen {
		return entity.SendSummary{}, ErrInvalidArgument
	}

	var summary entity.SendSummary
	err := uc.tracker.Do(func() error {
		reportProgress(onProgress, "Fetching recipients...")

		recipients, err := uc.recipientRepo.ListRecipients()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDirectoryFetch, err)
		}

		total := len(recipients)
		if total == 0 {
			reportProgress(onProgress, "No recipients found")
			uc.logger.Warn("Fan-out skipped: recipient directory is empty")
			return nil
		}

		sentAt := time.Now().UTC()
		reportProgress(onProgress, fmt.Sprintf("Sending 0/%d", total))

		outcomes, err := batch.Run(ctx, recipients, func(ctx context.Context, recipient entity.Recipient, index int) (struct{}, error) {
			notification := entity.Notification{
				ID:        fmt.Sprintf("%d_%s", sentAt.UnixNano(), recipient.ID),
				Title:     title,
				Message:   message,
				Timestamp: time.Now().UTC(),
				IsRead:    false,
			}
			if err := uc.writeTo(ctx, recipient.ID, notification); err != nil {
				uc.logger.Error("Failed to deliver notification to user %s: %v", recipient.ID, err)
				return struct{}{}, err
			}
			uc.sendEmailAsync(recipient, title, message)
			return struct{}{}, nil
		}, uc.concurrency, func(text string) {
			reportProgress(onProgress, "Sending "+text)
		})
		if err != nil {
			// Only invalid concurrency reaches here; treat as caller error
			return err
		}

		failed := batch.FailureCount(outcomes)

		// Always write the shared broadcast copy, regardless of per-user
		// outcomes. Its failure degrades the fallback guarantee but never
		// fails the send.
		broadcastOk := true
		broadcast := entity.Broadcast{
			ID:        uuid.New().String(),
			Title:     title,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
		if err := uc.notificationRepo.AppendBroadcast(ctx, broadcast); err != nil {
			broadcastOk = false
			uc.logger.Warn("Broadcast write failed (non-blocking): %v", err)
		}

		switch {
		case failed == 0:
			uc.logger.Info("Notification fan-out fully delivered to %d users", total)
		case failed == total && broadcastOk:
			reportProgress(onProgress, "Sent via broadcast")
			uc.logger.Warn("All %d per-user writes failed; delivery via broadcast only", total)
		default:
			uc.logger.Warn("Notification fan-out finished with %d/%d failures (broadcast_ok=%v)", failed, total, broadcastOk)
		}

		summary = entity.SendSummary{
			Total:       total,
			Failed:      failed,
			BroadcastOk: broadcastOk,
		}
		return nil
	})
	if err != nil {
		return entity.SendSummary{}, err
	}

	return summary, nil
}

// writeTo races the per-user append against the write timeout. On timeout
// the write itself is not cancelled, so it may still complete server-side;
// the caller must count that as a failure anyway (at-least-once delivery).
func (uc *notificationUseCase) writeTo(ctx context.Context, recipientID string, notification entity.Notification) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- uc.notificationRepo.Append(ctx, recipientID, notification)
	}()

	timer := time.NewTimer(uc.writeTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.C:
		return fmt.Errorf("%w after %s (user %s)", ErrDeliveryTimeout, uc.writeTimeout, recipientID)
	}
}

// sendEmailAsync queues a best-effort email copy. Failures are logged and
// never influence the delivery outcome.
func (uc *notificationUseCase) sendEmailAsync(recipient entity.Recipient, title, message string) {
	if uc.emailPublisher == nil || recipient.Email == "" {
		return
	}
	go func() {
		task := queue.EmailTask{
			To:      recipient.Email,
			Subject: title,
			Body:    message,
		}
		if err := uc.emailPublisher.PublishEmailTask(task); err != nil {
			uc.logger.Warn("Failed to queue email for %s: %v", recipient.Email, err)
		}
	}()
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.DisplayNotification, int, error) {
	personal, _, err := uc.notificationRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	broadcasts, err := uc.notificationRepo.ListBroadcasts(ctx, limit)
	if err != nil {
		// Broadcasts are a fallback channel; a read failure there should not
		// hide the personal list
		uc.logger.Warn("Failed to load broadcasts for user %s: %v", userID, err)
		broadcasts = nil
	}

	merged := MergeNotifications(personal, broadcasts)
	return merged, UnreadCount(personal), nil
}

func (uc *notificationUseCase) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("Marked %d notifications as read for user %s", updated, userID)
	return updated, nil
}

func reportProgress(onProgress func(string), text string) {
	if onProgress != nil {
		onProgress(text)
	}
}
