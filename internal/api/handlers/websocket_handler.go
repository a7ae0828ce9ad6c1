package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/auth"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/socket"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Longest the server waits between pings before dropping the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub   *socket.Hub
	Store store.Store
	Cfg   config.Config
}

// ServeWs upgrades a dashboard connection to a websocket. Browsers
// cannot set an Authorization header on the upgrade request, so the
// token rides in the query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseJWT(h.Cfg.JWT.Secret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	// Same revocation check as the bearer middleware; a logged-out
	// token must not open the feed either.
	var revoked models.RevokedSession
	err = h.Store.Get(c.Request.Context(), h.Cfg.Tables.Sessions, store.Key{"token_id": claims.ID}, &revoked)
	if err == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token: " + err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	connID := uuid.New().String()
	h.Hub.Register(connID, conn)

	defer func() {
		h.Hub.Unregister(connID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	// A PING from the client extends the deadline; gorilla answers
	// with PONG on its own.
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error: %v", err)
			}
			break
		}
	}
}
