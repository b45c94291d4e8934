package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
)

// ProfileHandler serves profiles, karma history and the leaderboard
type ProfileHandler struct {
	identity service.IdentityService
	votes    service.VoteService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(identity service.IdentityService, votes service.VoteService) *ProfileHandler {
	return &ProfileHandler{identity: identity, votes: votes}
}

// RoleRequest role change payload
type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Get handles GET /api/v1/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id == middleware.GetUserID(c) {
		p, err := h.identity.GetProfile(id)
		if err != nil {
			respondError(c, err)
			return
		}
		common.Success(c, p)
		return
	}
	p, err := h.identity.GetPublicProfile(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, p)
}

// UpdateMe handles PUT /api/v1/profiles/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.identity.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, p)
}

// Karma handles GET /api/v1/profiles/:id/karma
func (h *ProfileHandler) Karma(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, limit := ginutil.Pagination(c)
	logs, total, err := h.votes.KarmaHistory(id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessWithMeta(c, logs, common.NewMeta(page, limit, total))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	entries, err := h.votes.Leaderboard(ginutil.QueryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, entries)
}

// SetRole handles PUT /api/admin/profiles/:id/role
func (h *ProfileHandler) SetRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.identity.SetRole(actorOf(c), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, p)
}
