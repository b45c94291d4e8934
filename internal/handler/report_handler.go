package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/service"
)

// ReportHandler handles user reports
type ReportHandler struct {
	service service.ModerationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service service.ModerationService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req service.ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.Report(actorOf(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, report)
}
