package feed

import (
	"log"
	"net/http"
	"time"

	jwtsvc "cospace/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Origin checks are delegated to the CORS layer in front.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler exposes the availability feed over a websocket.
//
// Endpoint: GET /ws/availability?token=JWT_TOKEN
//
// Browsers cannot set headers on websocket dials, so the token rides the
// query string.
type WSHandler struct {
	hub        *Hub
	jwtService *jwtsvc.Service
}

func NewWSHandler(hub *Hub, jwtService *jwtsvc.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

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
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed_upgrade_failed user_id=%d error=%q", claims.UserID, err)
		return
	}

	h.hub.Register(conn)
	log.Printf("feed_connected user_id=%d total=%d", claims.UserID, h.hub.ConnectionCount())

	defer func() {
		h.hub.Unregister(conn)
		log.Printf("feed_disconnected user_id=%d", claims.UserID)
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	go h.pingLoop(conn)

	// The feed is one-way; the read loop only notices the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHandler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}
