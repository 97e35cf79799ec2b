package player

import (
	"net/http"
	"time"

	"ead-service/internal/middleware"
	"ead-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type StreamHandler struct {
	handler *PlayerHandler
	logger  *zap.Logger
}

func NewStreamHandler(handler *PlayerHandler, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{handler: handler, logger: logger}
}

// Stream pushes one progress event per watch tick over a WebSocket while
// the subscribed lesson is playing.
func (h *StreamHandler) Stream(c *gin.Context) {
	principal := middleware.MustGetPrincipal(c)
	lessonID := c.Query("lesson")
	if lessonID == "" {
		response.ValidationError(c, "lesson query parameter required", nil)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}
	defer conn.Close()

	events, cancel := h.handler.player.Subscribe(principal, lessonID)
	defer cancel()

	// Discard client frames but keep the pong handler alive.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case event := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
			if event.Completed {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
