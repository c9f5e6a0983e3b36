package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
)

// ConversationWatcher is what the handler needs from the messaging layer: a
// live subscription delivering the full conversation snapshot on every change.
type ConversationWatcher interface {
	WatchConversations(ctx context.Context, userID string, fn func([]model.Conversation)) (func(), error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated requests to websockets and feeds each one
// the caller's conversation snapshots.
type Handler struct {
	hub      *Hub
	watcher  ConversationWatcher
	sessions ports.IdentityStore
}

// HandlerArgs carries the dependencies of NewHandler.
type HandlerArgs struct {
	Hub      *Hub
	Watcher  ConversationWatcher
	Sessions ports.IdentityStore
}

func NewHandler(args HandlerArgs) *Handler {
	return &Handler{
		hub:      args.Hub,
		watcher:  args.Watcher,
		sessions: args.Sessions,
	}
}

// snapshotEnvelope is the wire frame pushed on every conversation change.
type snapshotEnvelope struct {
	Type          string               `json:"type"`
	Conversations []model.Conversation `json:"conversations"`
}

// ServeConversations handles GET /ws/conversations. The session token comes
// in the "token" query parameter because browsers cannot set headers on
// websocket dials.
func (h *Handler) ServeConversations(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("X-Session-Token")
	}
	raw, ok := h.sessions.Get(token)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}
	session, ok := raw.(model.Session)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	conn := newConnection(ws, session.UserID)
	// The request context dies when this handler returns, so the watch runs
	// on its own context and is stopped through the bound stop func.
	stop, err := h.watcher.WatchConversations(context.Background(), session.UserID, func(snapshot []model.Conversation) {
		payload, err := json.Marshal(snapshotEnvelope{Type: "conversations", Conversations: snapshot})
		if err != nil {
			log.WithError(err).Error("error marshalling conversation snapshot")
			return
		}
		conn.deliver(payload)
	})
	if err != nil {
		log.WithError(err).Error("error starting conversation watch")
		conn.close()
		return
	}
	conn.bindStopWatch(stop)

	h.hub.register <- conn
	go conn.writeLoop()
	go conn.readLoop(func() {
		h.hub.unregister <- conn
	})
}
