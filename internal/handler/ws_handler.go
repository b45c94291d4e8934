package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/ws"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
)

// WSHandler handles WebSocket connections
type WSHandler struct {
	hub            *ws.Hub
	jwtManager     *jwt.Manager
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *ws.Hub, jwtManager *jwt.Manager, allowedOrigins string) *WSHandler {
	h := &WSHandler{
		hub:            hub,
		jwtManager:     jwtManager,
		allowedOrigins: parseOrigins(allowedOrigins),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// parseOrigins parses comma-separated origins string
func parseOrigins(origins string) []string {
	if origins == "" || origins == "*" {
		return nil
	}
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// checkOrigin validates the request origin against allowed origins
func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// userFromRequest reads the access token from the Authorization header or,
// for browsers that cannot set headers on upgrade, the token query parameter
func (h *WSHandler) userFromRequest(c *gin.Context) uint64 {
	if id := middleware.GetUserID(c); id != 0 {
		return id
	}
	token, err := middleware.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		token = c.Query("token")
	}
	if token == "" {
		return 0
	}
	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		return 0
	}
	return claims.UserID
}

// Connect handles GET /ws/notifications
func (h *WSHandler) Connect(c *gin.Context) {
	userID := h.userFromRequest(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, common.ErrUnauthorized.Error(), nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
