package ws

import (
	"chat-relay/auth"
	"chat-relay/contract"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated HTTP requests into live sessions.
// The token travels in the query string because browser websocket
// clients cannot set headers on the handshake.
type Handler struct {
	hub        *Hub
	users      contract.UserDirectory
	tokens     *auth.TokenManager
	bufferSize int
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

func NewHandler(hub *Hub, users contract.UserDirectory, tokens *auth.TokenManager,
	bufferSize int, log *slog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		users:      users,
		tokens:     tokens,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Resolve(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	client := NewClient(r.Context(), conn, user, h.bufferSize, h.log)
	h.hub.Register(client)

	go client.writePump()
	client.readPump(h.hub)
}
