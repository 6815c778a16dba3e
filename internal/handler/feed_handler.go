package handler

import (
	"log/slog"
	"net/http"
	"time"

	"caseflow/internal/changefeed"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const ( // ping pong (2-way heartbeat) to keep connection alive
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of this handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandler upgrades authenticated requests to a websocket carrying
// the owner-scoped change feed.
type FeedHandler struct {
	hub    *changefeed.Hub
	logger *slog.Logger
}

func NewFeedHandler(hub *changefeed.Hub, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{hub: hub, logger: logger}
}

func (h *FeedHandler) Serve(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sub := h.hub.Subscribe(userID.(string))

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump pushes feed events to the peer and keeps the heartbeat.
func (h *FeedHandler) writePump(conn *websocket.Conn, sub *changefeed.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages; it exists to notice the peer
// going away and to answer pongs.
func (h *FeedHandler) readPump(conn *websocket.Conn, sub *changefeed.Subscriber) {
	defer h.hub.Unsubscribe(sub)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
