package ws

import (
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yusufemrebilgin/multithreaded-chat-room/internal/chat"
)

// NewServer builds the optional HTTP server exposing the WebSocket
// transport and a health endpoint. Upgraded connections go through the same
// worker and command path as TCP ones.
func NewServer(addr string, hub *chat.Hub, logger zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", handleWS(hub, logger))

	return &stdhttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func handleWS(hub *chat.Hub, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("ws accept error")
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error") //nolint:errcheck

		// Blocks for the whole session; the handler goroutine is the worker.
		hub.ServeConn(newConn(c.Request.Context(), conn))

		_ = conn.Close(websocket.StatusNormalClosure, "closing")
	}
}
