package ws

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime"
	"chat-relay/services"
	"context"
	"log/slog"
	"sync"
)

var _ contract.Worker = (*Hub)(nil)

// Hub owns session membership. Register and unregister funnel through
// one run loop so the registry sees a consistent ordering; message
// routing itself happens on the read loops, not here.
type Hub struct {
	registry      *runtime.Registry
	router        services.IRouterService
	register      chan *Client
	unregister    chan *Client
	done          chan struct{}
	stopOnce      sync.Once
	maxContentLen int
	log           *slog.Logger
}

func NewHub(registry *runtime.Registry, router services.IRouterService,
	maxContentLen int, log *slog.Logger) *Hub {
	return &Hub{
		registry:      registry,
		router:        router,
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		done:          make(chan struct{}),
		maxContentLen: maxContentLen,
		log:           log,
	}
}

// Register hands the session to the run loop. A hub that already stopped
// refuses the session instead of blocking the handshake goroutine.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

// Unregister hands the session to the run loop. Once the hub stopped the
// read loops still tear their sessions down directly; the registry is
// safe for that.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		h.registry.Unsubscribe(c.user.ID, c.sessionID)
		c.close()
	}
}

func (h *Hub) Run(ctx context.Context) error {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-h.register:
			h.registry.Subscribe(c.user.ID, c.sessionID, c)
			h.log.Info("session connected", "user_id", c.user.ID, "session_id", c.sessionID)
		case c := <-h.unregister:
			h.registry.Unsubscribe(c.user.ID, c.sessionID)
			c.close()
			h.log.Info("session disconnected", "user_id", c.user.ID, "session_id", c.sessionID)
		}
	}
}

// handle routes one inbound envelope from a session. Runs on the
// session's read loop: a slow send from one client never stalls another.
func (h *Hub) handle(c *Client, env Envelope) {
	switch env.Event {
	case domain.EventDirectMessage:
		var body directMessageBody
		if err := decodeBody(env.Data, &body); err != nil {
			h.reject(c, kindInvalidPayload, "invalid direct message payload")
			return
		}
		if len(body.Message) > h.maxContentLen {
			h.reject(c, kindInvalidPayload, "message too long")
			return
		}

		msg, err := h.router.SendDirect(c.ctx, c.user, domain.DirectMessageCommand{
			To:      body.To,
			Content: body.Message,
		})
		if err != nil {
			h.log.Warn("direct send rejected", "user_id", c.user.ID, "error", err)
			h.reject(c, kindOf(err), err.Error())
			return
		}
		_ = c.Deliver(EventAck, msg)

	case domain.EventRoomMessage:
		var body roomMessageBody
		if err := decodeBody(env.Data, &body); err != nil {
			h.reject(c, kindInvalidPayload, "invalid room message payload")
			return
		}
		if len(body.Message) > h.maxContentLen {
			h.reject(c, kindInvalidPayload, "message too long")
			return
		}

		receipt, err := h.router.SendRoom(c.ctx, c.user, domain.RoomMessageCommand{
			RoomID:  body.RoomID,
			Content: body.Message,
		})
		if err != nil {
			h.log.Warn("room send rejected", "user_id", c.user.ID, "error", err)
			h.reject(c, kindOf(err), err.Error())
			return
		}
		_ = c.Deliver(EventAck, receipt)

	default:
		h.reject(c, kindUnknownEvent, "unknown event: "+env.Event)
	}
}

func (h *Hub) reject(c *Client, kind, message string) {
	_ = c.Deliver(EventError, errorBody{Kind: kind, Message: message})
}
