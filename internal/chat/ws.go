package chat

import (
	"context"
	"net/http"
	"strings"
	"time"

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

// wsRequest is one incoming chat message over the socket.
type wsRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// wsEvent is one outgoing frame: a status update, a content chunk, or the
// end-of-reply marker.
type wsEvent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// WSHandler streams chat replies over a websocket. Each client message
// produces a sequence of status and content frames ending with done.
type WSHandler struct {
	router  *Router
	logger  *zap.Logger
	timeout time.Duration
}

// NewWSHandler creates a WSHandler around a Router.
func NewWSHandler(router *Router, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		router:  router,
		timeout: 2 * time.Minute,
		logger:  logger,
	}
}

// ServeHTTP upgrades the connection and serves chat messages until the
// client disconnects.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		if req.UserID == "" || req.Message == "" {
			_ = conn.WriteJSON(wsEvent{Type: "error", Text: "user_id and message are required"})
			continue
		}

		h.handleMessage(r.Context(), conn, req)
	}
}

func (h *WSHandler) handleMessage(ctx context.Context, conn *websocket.Conn, req wsRequest) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.router.Stream(ctx, Request{UserID: req.UserID, Message: req.Message}, func(chunk string) {
		ev := wsEvent{Type: "content", Text: chunk}
		if strings.HasPrefix(chunk, StatusPrefix) {
			ev = wsEvent{Type: "status", Text: strings.TrimPrefix(chunk, StatusPrefix)}
		}
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
		}
	})

	_ = conn.WriteJSON(wsEvent{Type: "done"})
}
