package events

import (
	"log"
	"net/http"

	jwtsvc "assetdesk/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// dev setting; tighten origin checks in production
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub        *Hub
	jwtService *jwtsvc.Service
}

func NewWSHandler(hub *Hub, jwtService *jwtsvc.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client goes away. Auth travels in the query string because browsers cannot
// set headers on websocket upgrades.
//
// Endpoint: GET /ws/events?token=JWT_TOKEN
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID, conn)

	// drain control frames; clients only listen on this socket
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
