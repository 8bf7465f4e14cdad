package ws

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var _ contract.LiveSink = (*Client)(nil)

var (
	errSlowClient    = fmt.Errorf("client send buffer full")
	errSessionClosed = fmt.Errorf("session closed")
)

// Client is one live session. All writes to the connection go through
// the buffered send channel so the write pump is the only writer. The
// context is the connection's: router calls issued by this session stop
// when the session does.
type Client struct {
	sessionID string
	user      domain.User
	ctx       context.Context
	conn      *websocket.Conn
	log       *slog.Logger

	mu     sync.Mutex
	closed bool
	send   chan Frame
}

func NewClient(ctx context.Context, conn *websocket.Conn, user domain.User,
	bufferSize int, log *slog.Logger) *Client {
	return &Client{
		sessionID: uuid.NewString(),
		user:      user,
		ctx:       ctx,
		conn:      conn,
		send:      make(chan Frame, bufferSize),
		log:       log,
	}
}

// Deliver queues a frame for this session. A session that cannot keep up
// loses the frame rather than blocking the caller. Delivery may race the
// session's teardown: a sink snapshot taken before unregistration can
// deliver after close, which must stay an error, never a panic.
func (c *Client) Deliver(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errSessionClosed
	}
	select {
	case c.send <- Frame{Event: event, Data: payload}:
		return nil
	default:
		return errSlowClient
	}
}

// close releases the send channel exactly once, whichever of the read
// loop or the hub gets there first. The mutex keeps a concurrent Deliver
// from sending on the closed channel.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send channel into the connection until the
// channel is closed or a write fails.
func (c *Client) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		if err := c.conn.WriteJSON(frame); err != nil {
			c.log.Debug("ws write failed", "user_id", c.user.ID, "error", err)
			return
		}
	}
}

// readPump decodes inbound envelopes and hands them to the hub until the
// peer goes away.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("ws read failed", "user_id", c.user.ID, "error", err)
			}
			return
		}
		h.handle(c, env)
	}
}
