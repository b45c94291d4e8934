package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	service service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := ginutil.Pagination(c)
	list, err := h.service.List(middleware.GetUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, list)
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.service.UnreadCount(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, gin.H{"unread_count": n})
}

// MarkSeen handles POST /api/v1/notifications/:id/seen
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkSeen(middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// MarkAllSeen handles POST /api/v1/notifications/seen-all
func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	if err := h.service.MarkAllSeen(middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}
