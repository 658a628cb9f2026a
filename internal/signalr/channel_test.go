package signalr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newSocketServer starts a WebSocket server that hands each accepted
// connection to handle, and returns an endpoint pointing at it.
func newSocketServer(t *testing.T, handle func(conn *websocket.Conn)) *Endpoint {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(server.Close)

	return &Endpoint{
		ProtocolVersion: "1.5",
		ConnectionToken: "tok",
		SocketURL:       "ws" + strings.TrimPrefix(server.URL, "http"),
	}
}

func waitMessage(t *testing.T, c *Channel) (Message, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.Messages():
		return msg, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}, false
	}
}

func TestChannelCallFraming(t *testing.T) {
	frames := make(chan outboundFrame, 3)
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		for i := 0; i < 3; i++ {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var frame outboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				t.Errorf("unmarshal frame: %v", err)
				return
			}
			frames <- frame
		}
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	for want := int64(1); want <= 3; want++ {
		id, err := c.Call(context.Background(), "SubscribeToExchangeDeltas", []string{"BTC-ETH"})
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if id != want {
			t.Errorf("invocation id = %d, want %d", id, want)
		}
	}

	for want := int64(1); want <= 3; want++ {
		select {
		case frame := <-frames:
			if frame.Hub != "c2" {
				t.Errorf("hub = %q, want c2", frame.Hub)
			}
			if frame.Method != "SubscribeToExchangeDeltas" {
				t.Errorf("method = %q", frame.Method)
			}
			if frame.ID != want {
				t.Errorf("frame id = %d, want %d", frame.ID, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for frame")
		}
	}
}

func TestChannelResultDelivery(t *testing.T) {
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		// String and numeric correlation ids are both in the wild.
		conn.WriteMessage(websocket.TextMessage, []byte(`{"I":"1","R":{"ok":true}}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"I":2,"R":"payload"}`))
		conn.ReadMessage()
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	first, ok := waitMessage(t, c)
	if !ok {
		t.Fatal("messages closed early")
	}
	if first.Kind != KindResult || first.InvocationID != 1 {
		t.Errorf("first = %+v, want result with id 1", first)
	}

	second, ok := waitMessage(t, c)
	if !ok {
		t.Fatal("messages closed early")
	}
	if second.Kind != KindResult || second.InvocationID != 2 {
		t.Errorf("second = %+v, want result with id 2", second)
	}
	if string(second.Result) != `"payload"` {
		t.Errorf("result = %s, want \"payload\"", second.Result)
	}
}

func TestChannelCallbackExpansion(t *testing.T) {
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		// Keepalives interleaved with a callback batch.
		conn.WriteMessage(websocket.TextMessage, []byte(`{}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"C":"d-1","M":[{"H":"c2","M":"uE","A":["first"]},{"H":"c2","M":"uS","A":["second"]}]}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{}`))
		conn.ReadMessage()
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	first, _ := waitMessage(t, c)
	if first.Kind != KindCallback || first.Method != "uE" {
		t.Errorf("first = %+v, want uE callback", first)
	}
	if len(first.Args) != 1 || string(first.Args[0]) != `"first"` {
		t.Errorf("first args = %v", first.Args)
	}

	second, _ := waitMessage(t, c)
	if second.Kind != KindCallback || second.Method != "uS" {
		t.Errorf("second = %+v, want uS callback", second)
	}
}

func TestChannelErrorFrame(t *testing.T) {
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"E":"hub exploded"}`))
		conn.ReadMessage()
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if _, ok := waitMessage(t, c); ok {
		t.Fatal("expected messages to close without delivery")
	}

	var sockErr *SocketError
	if !errors.As(c.Err(), &sockErr) {
		t.Fatalf("Err() = %v, want *SocketError", c.Err())
	}
	if sockErr.Message != "hub exploded" {
		t.Errorf("message = %q, want hub exploded", sockErr.Message)
	}
}

func TestChannelRemoteClose(t *testing.T) {
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"),
			time.Now().Add(time.Second),
		)
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	if _, ok := waitMessage(t, c); ok {
		t.Fatal("expected messages to close")
	}
	if !errors.Is(c.Err(), ErrConnectionClosed) {
		t.Errorf("Err() = %v, want ErrConnectionClosed", c.Err())
	}
}

func TestChannelCloseIdempotent(t *testing.T) {
	endpoint := newSocketServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	c, err := Dial(context.Background(), endpoint, "c2", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if _, ok := waitMessage(t, c); ok {
		t.Fatal("expected messages to close")
	}
	if c.Err() != nil {
		t.Errorf("Err() after caller close = %v, want nil", c.Err())
	}

	if _, err := c.Call(context.Background(), "QuerySummaryState", ""); !errors.Is(err, ErrChannelClosed) {
		t.Errorf("Call after close = %v, want ErrChannelClosed", err)
	}
}

func TestDecodeFrameKeepalive(t *testing.T) {
	msgs, err := decodeFrame([]byte(`{}`))
	if err != nil {
		t.Fatalf("decodeFrame: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("keepalive produced %d messages", len(msgs))
	}
}

func TestDecodeFrameMalformed(t *testing.T) {
	_, err := decodeFrame([]byte(`{not json`))
	var sockErr *SocketError
	if !errors.As(err, &sockErr) {
		t.Fatalf("decodeFrame error = %v, want *SocketError", err)
	}
}
