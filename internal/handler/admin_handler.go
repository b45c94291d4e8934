package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
)

// AdminHandler handles staff moderation requests.
// Actions respond {"success":true} or the error envelope.
type AdminHandler struct {
	service service.ModerationService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service service.ModerationService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListReports handles GET /api/admin/reports
func (h *AdminHandler) ListReports(c *gin.Context) {
	page, limit := ginutil.Pagination(c)
	reports, total, err := h.service.ListReports(actorOf(c), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessWithMeta(c, reports, common.NewMeta(page, limit, total))
}

// moderate runs a staff action on the :id path parameter
func (h *AdminHandler) moderate(c *gin.Context, action func(service.Actor, uint64) error) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := action(actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// DismissReport handles POST /api/admin/reports/:id/dismiss
func (h *AdminHandler) DismissReport(c *gin.Context) {
	h.moderate(c, h.service.Dismiss)
}

// DeleteQuestion handles POST /api/admin/questions/:id/delete
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	h.moderate(c, h.service.DeleteQuestion)
}

// ResolveQuestion handles POST /api/admin/questions/:id/resolve
func (h *AdminHandler) ResolveQuestion(c *gin.Context) {
	h.moderate(c, h.service.ResolveQuestion)
}

// DeleteAnswer handles POST /api/admin/answers/:id/delete
func (h *AdminHandler) DeleteAnswer(c *gin.Context) {
	h.moderate(c, h.service.DeleteAnswer)
}

// DeleteReply handles POST /api/admin/replies/:id/delete
func (h *AdminHandler) DeleteReply(c *gin.Context) {
	h.moderate(c, h.service.DeleteReply)
}
