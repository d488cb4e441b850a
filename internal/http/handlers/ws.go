package handlers

import (
	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"

	"github.com/CGAJAY/chat-app/internal/ws"
)

type WSHandler struct {
	Hub *ws.Hub
	// AllowedOrigin is the frontend origin permitted to open sockets.
	AllowedOrigin string
}

// Handle upgrades the request and parks it until the client goes away.
// The userId query parameter is optional: without it the connection is
// accepted but stays invisible to presence and can never receive a
// targeted delivery.
func (h *WSHandler) Handle(c *gin.Context) {
	userID := c.Query("userId")

	opts := &websocket.AcceptOptions{}
	if h.AllowedOrigin != "" {
		opts.OriginPatterns = []string{h.AllowedOrigin}
	}

	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		// Accept already wrote the error response
		return
	}

	// Push-only socket: reading just keeps control frames flowing. The
	// returned context ends when the peer closes or the read fails, which
	// is the only disconnect signal once the connection is hijacked.
	readCtx := conn.CloseRead(c.Request.Context())

	client := h.Hub.Attach(userID, ws.NewConn(conn))
	defer h.Hub.Detach(client)

	<-readCtx.Done()
}
