package bittrex

import (
	"fmt"

	"github.com/tmalkov/bittrex-stream/internal/codec"
	"github.com/tmalkov/bittrex-stream/internal/signalr"
)

// Streaming error taxonomy. All are terminal for the channel that raised
// them; none triggers an internal retry.
type (
	// NegotiationError reports a failed or malformed negotiation handshake.
	NegotiationError = signalr.NegotiationError

	// SocketError carries an explicit protocol error frame from the hub,
	// or a rejected authentication result.
	SocketError = signalr.SocketError
)

var (
	// ErrConnectionClosed reports that the remote closed the socket.
	ErrConnectionClosed = signalr.ErrConnectionClosed

	// ErrConnection reports a transport-level WebSocket failure.
	ErrConnection = signalr.ErrConnection

	// ErrDecode reports a payload that failed base64, deflate or JSON
	// decoding. A decode failure mid-stream fails the whole feed.
	ErrDecode = codec.ErrDecode
)

// APIError is a REST response whose envelope reports success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "bittrex api error: " + e.Message
}

// ResponseError is a REST response whose body is not valid JSON.
type ResponseError struct {
	StatusCode int
	Content    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("bittrex response error [%d]: %q", e.StatusCode, e.Content)
}
