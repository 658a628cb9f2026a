package signalr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors
var (
	ErrConnectionClosed = errors.New("websocket closed by remote")
	ErrConnection       = errors.New("websocket transport error")
	ErrChannelClosed    = errors.New("channel already closed")
)

// NegotiationError reports a failed or malformed negotiation handshake.
type NegotiationError struct {
	StatusCode int
	Reason     string
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("negotiation failed [%d]: %s", e.StatusCode, e.Reason)
}

// SocketError carries an explicit protocol-level error from the hub, or a
// frame the hub sent that violates the protocol.
type SocketError struct {
	Message string
}

func (e *SocketError) Error() string {
	return "socket error: " + e.Message
}

// Endpoint is the result of a successful negotiation. It is immutable and
// read by every subsequent connection attempt.
type Endpoint struct {
	ProtocolVersion string
	ConnectionToken string
	SocketURL       string
}

// MessageKind discriminates the inbound message union.
type MessageKind int

const (
	// KindResult is a response correlated to a prior invocation.
	KindResult MessageKind = iota + 1
	// KindCallback is a pushed hub event, not correlated to any invocation.
	KindCallback
)

// Message is one decoded inbound message. The wire shape is inspected
// exactly once per frame; downstream code switches on Kind only.
type Message struct {
	Kind MessageKind

	// KindResult
	InvocationID int64
	Result       json.RawMessage

	// KindCallback
	Method string
	Args   []json.RawMessage
}

// outboundFrame is a numbered hub invocation.
type outboundFrame struct {
	Hub    string `json:"H"`
	Method string `json:"M"`
	Args   any    `json:"A"`
	ID     int64  `json:"I"`
}

// inboundFrame covers every frame shape the hub sends: E for protocol
// errors, I/R for correlated results, M for pushed callback batches.
// Keepalive frames carry none of these.
type inboundFrame struct {
	Err   *string         `json:"E"`
	ID    json.RawMessage `json:"I"`
	Res   json.RawMessage `json:"R"`
	Calls []inboundCall   `json:"M"`
}

type inboundCall struct {
	Hub    string            `json:"H"`
	Method string            `json:"M"`
	Args   []json.RawMessage `json:"A"`
}

// decodeFrame classifies one raw text frame. A nested callback list
// expands to one Message per inner call entry, preserving order. A
// keepalive or unrecognized frame yields no messages. A non-nil error is
// terminal for the channel.
func decodeFrame(data []byte) ([]Message, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, &SocketError{Message: fmt.Sprintf("malformed frame: %v", err)}
	}

	if frame.Err != nil {
		return nil, &SocketError{Message: *frame.Err}
	}

	if len(frame.ID) > 0 && string(frame.ID) != "null" {
		id, err := parseInvocationID(frame.ID)
		if err != nil {
			return nil, &SocketError{Message: fmt.Sprintf("malformed invocation id %s", frame.ID)}
		}
		return []Message{{Kind: KindResult, InvocationID: id, Result: frame.Res}}, nil
	}

	if len(frame.Calls) > 0 {
		msgs := make([]Message, 0, len(frame.Calls))
		for _, call := range frame.Calls {
			msgs = append(msgs, Message{Kind: KindCallback, Method: call.Method, Args: call.Args})
		}
		return msgs, nil
	}

	return nil, nil
}

// parseInvocationID accepts the correlation id as either a JSON number or
// a quoted string; the hub sends both depending on server version.
func parseInvocationID(raw json.RawMessage) (int64, error) {
	return strconv.ParseInt(strings.Trim(string(raw), `"`), 10, 64)
}
