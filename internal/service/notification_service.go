// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"plaza/internal/middleware"
	"plaza/internal/models"
	"plaza/internal/notifications"
	"plaza/internal/observability"
	"plaza/internal/repository"
)

// deliverTimeout bounds one detached delivery; the triggering request never
// waits on it.
const deliverTimeout = 5 * time.Second

// DispatchInput describes one notification to be created.
type DispatchInput struct {
	RecipientID uint
	SenderID    uint
	SenderName  string
	Type        models.NotificationType
	BlogID      *uint
	CommentID   *uint
	Priority    models.NotificationPriority
	ExpiresAt   *time.Time
}

// NotificationDispatcher is the side-effect boundary the other services
// depend on. Dispatch must never block or fail the caller.
type NotificationDispatcher interface {
	Dispatch(input DispatchInput)
}

// NotificationService persists notifications and exposes the recipient's
// read-state surface. It implements NotificationDispatcher as a
// fire-and-forget task with its own error boundary.
type NotificationService struct {
	repo     repository.NotificationRepository
	notifier *notifications.Notifier
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{repo: repo, notifier: notifier}
}

// Dispatch creates the notification in a detached task. Failures are
// counted, logged and dropped; they are never observed by the caller and
// never retried.
func (s *NotificationService) Dispatch(input DispatchInput) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				middleware.Logger.Error("PANIC in notification dispatch",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()

		if err := s.deliver(ctx, input); err != nil {
			observability.NotificationFailures.WithLabelValues(string(input.Type)).Inc()
			middleware.Logger.WarnContext(ctx, "notification dropped",
				slog.String("type", string(input.Type)),
				slog.Uint64("recipient_id", uint64(input.RecipientID)),
				slog.String("error", err.Error()))
		}
	}()
}

// deliver is the synchronous core of Dispatch: persist, then best-effort
// publish to the recipient's Redis channel.
func (s *NotificationService) deliver(ctx context.Context, input DispatchInput) error {
	title, content := renderNotification(input)

	priority := input.Priority
	if priority == "" {
		priority = models.NotificationPriorityNormal
	}

	senderID := input.SenderID
	notification := &models.Notification{
		RecipientID: input.RecipientID,
		SenderID:    &senderID,
		Type:        input.Type,
		Title:       title,
		Content:     content,
		BlogID:      input.BlogID,
		CommentID:   input.CommentID,
		Priority:    priority,
		ExpiresAt:   input.ExpiresAt,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}
	observability.NotificationsDispatched.WithLabelValues(string(input.Type)).Inc()

	if err := s.notifier.PublishUser(ctx, notification); err != nil {
		// The row is the source of truth; a failed publish only costs realtime delivery.
		middleware.Logger.DebugContext(ctx, "notification publish failed",
			slog.Uint64("recipient_id", uint64(input.RecipientID)),
			slog.String("error", err.Error()))
	}

	// Opportunistic TTL cleanup rides along with dispatch traffic.
	if _, err := s.repo.PurgeExpired(ctx, time.Now()); err != nil {
		middleware.Logger.DebugContext(ctx, "expired notification purge failed",
			slog.String("error", err.Error()))
	}
	return nil
}

func renderNotification(input DispatchInput) (title, content string) {
	switch input.Type {
	case models.NotificationComment:
		return "New comment", fmt.Sprintf("%s commented on your blog", input.SenderName)
	case models.NotificationReply:
		return "New reply", fmt.Sprintf("%s replied to your comment", input.SenderName)
	case models.NotificationLike:
		return "New like", fmt.Sprintf("%s liked your comment", input.SenderName)
	case models.NotificationFollow:
		return "New follower", fmt.Sprintf("%s started following you", input.SenderName)
	default:
		return "Notification", fmt.Sprintf("You have a new notification from %s", input.SenderName)
	}
}

// ListForUser returns the recipient's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
}

// UnreadCount returns the recipient's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}

// MarkRead marks one of the recipient's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uint) error {
	return s.repo.MarkRead(ctx, recipientID, notificationID)
}

// MarkAllRead marks all of the recipient's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

// PurgeExpired removes notifications past their TTL and returns the number
// deleted. The opportunistic purge in deliver keeps the table roughly
// bounded; this gives operators an explicit sweep.
func (s *NotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.PurgeExpired(ctx, time.Now())
}
