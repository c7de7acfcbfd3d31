package server

import (
	"strings"

	"plaza/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the authenticated user's notifications, newest
// first. ?unread=true restricts to unread ones.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	unreadOnly := c.QueryBool("unread", false)

	items, err := s.notificationService.ListForUser(
		c.UserContext(), currentUserID(c), unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, items)
}

// GetUnreadCount returns the authenticated user's unread notification count.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"unread_count": count})
}

// MarkNotificationRead marks one of the authenticated user's notifications
// as read.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), notificationID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "notification marked as read")
}

// MarkAllNotificationsRead marks all of the authenticated user's
// notifications as read.
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "all notifications marked as read")
}

// PurgeExpiredNotifications deletes notifications past their TTL. Admin only.
func (s *Server) PurgeExpiredNotifications(c *fiber.Ctx) error {
	removed, err := s.notificationService.PurgeExpired(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"removed": removed})
}

// BroadcastAnnouncement publishes a realtime announcement to every
// subscribed client. Nothing is persisted; offline users never see it.
func (s *Server) BroadcastAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return fail(c, models.NewValidationError("message is required"))
	}

	if err := s.notifier.PublishBroadcast(c.UserContext(), req.Message); err != nil {
		return fail(c, models.NewInternalError(err))
	}
	return respondMessage(c, fiber.StatusOK, "announcement broadcast")
}
