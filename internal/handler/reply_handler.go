package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/service"
)

// ReplyHandler handles reply requests
type ReplyHandler struct {
	service service.ReplyService
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(service service.ReplyService) *ReplyHandler {
	return &ReplyHandler{service: service}
}

// List handles GET /api/v1/answers/:id/replies
func (h *ReplyHandler) List(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListByAnswer(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, items)
}

// Create handles POST /api/v1/answers/:id/replies
func (h *ReplyHandler) Create(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.service.Create(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, reply)
}

// Update handles PUT /api/v1/replies/:id
func (h *ReplyHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.service.Update(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, reply)
}

// Delete handles DELETE /api/v1/replies/:id
func (h *ReplyHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}
