package signalr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second

	// messageBuffer absorbs short consumer stalls without dropping the
	// in-order delivery guarantee.
	messageBuffer = 64
)

// Channel owns one WebSocket connection to the hub. Outbound invocations
// are numbered sequentially starting at 1 within the session; inbound
// frames are decoded once and delivered in arrival order on Messages.
// The messages channel closes when the connection ends for any reason;
// Err then reports the terminal error, or nil after a caller-driven Close.
type Channel struct {
	conn    *websocket.Conn
	hub     string
	logger  *slog.Logger
	session uuid.UUID

	idMu    sync.Mutex
	lastID  int64
	writeMu sync.Mutex

	messages chan Message
	done     chan struct{}

	closeOnce sync.Once
	closeErr  error

	errMu sync.Mutex
	err   error
}

// Dial opens a WebSocket connection to a negotiated endpoint and starts
// the receive loop.
func Dial(ctx context.Context, endpoint *Endpoint, hub string, logger *slog.Logger) (*Channel, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, endpoint.SocketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnection, err)
	}

	c := &Channel{
		conn:     conn,
		hub:      hub,
		logger:   logger,
		session:  uuid.New(),
		messages: make(chan Message, messageBuffer),
		done:     make(chan struct{}),
	}

	c.logger.Debug("channel connected", "session", c.session, "hub", hub)

	go c.readLoop()

	return c, nil
}

// Call transmits a hub invocation with the next sequential id and returns
// that id for result correlation.
func (c *Channel) Call(ctx context.Context, method string, args any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	select {
	case <-c.done:
		return 0, ErrChannelClosed
	default:
	}

	c.idMu.Lock()
	c.lastID++
	id := c.lastID
	c.idMu.Unlock()

	data, err := json.Marshal(outboundFrame{
		Hub:    c.hub,
		Method: method,
		Args:   args,
		ID:     id,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal invocation: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return 0, fmt.Errorf("%w: write: %v", ErrConnection, err)
	}

	c.logger.Debug("invocation sent", "session", c.session, "method", method, "id", id)

	return id, nil
}

// Messages returns the inbound message channel. It is closed when the
// connection terminates; check Err afterwards.
func (c *Channel) Messages() <-chan Message {
	return c.messages
}

// Err returns the terminal error after Messages has closed. It is nil
// when the channel ended through a caller-driven Close.
func (c *Channel) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close releases the underlying socket. It is idempotent and safe to call
// from any goroutine; no frame is sent after it returns.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)

		c.writeMu.Lock()
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.closeErr = c.conn.Close()
		c.writeMu.Unlock()

		c.logger.Debug("channel closed", "session", c.session)
	})
	return c.closeErr
}

// fail records the terminal error and releases the socket. The first
// failure wins.
func (c *Channel) fail(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()

	c.Close()
}

// readLoop reads and classifies frames until the connection ends. Every
// exit path closes the messages channel and leaves the socket released.
func (c *Channel) readLoop() {
	defer close(c.messages)

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Caller-driven close; not a failure.
			default:
				if _, closed := err.(*websocket.CloseError); closed {
					c.fail(fmt.Errorf("%w: %v", ErrConnectionClosed, err))
				} else {
					c.fail(fmt.Errorf("%w: %v", ErrConnection, err))
				}
			}
			return
		}

		if msgType != websocket.TextMessage {
			c.fail(fmt.Errorf("%w: unexpected non-text frame", ErrConnectionClosed))
			return
		}

		msgs, err := decodeFrame(data)
		if err != nil {
			c.fail(err)
			return
		}

		for _, msg := range msgs {
			select {
			case c.messages <- msg:
			case <-c.done:
				return
			}
		}
	}
}
