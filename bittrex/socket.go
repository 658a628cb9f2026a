package bittrex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmalkov/bittrex-stream/internal/auth"
	"github.com/tmalkov/bittrex-stream/internal/codec"
	"github.com/tmalkov/bittrex-stream/internal/keymap"
	"github.com/tmalkov/bittrex-stream/internal/signalr"
)

const (
	// DefaultSocketURL is the signalr base of the Bittrex push service.
	DefaultSocketURL = "https://socket.bittrex.com/signalr/"

	// SocketHub is the hub every invocation and callback is addressed to.
	SocketHub = "c2"
)

// Hub callback names, one per feed type.
const (
	cbExchangeDelta = "uE"
	cbSummaryDelta  = "uS"
	cbSummaryLite   = "uL"
	cbBalanceDelta  = "uB"
	cbOrderDelta    = "uO"
)

// Hub invocation methods.
const (
	methodQueryExchangeState = "QueryExchangeState"
	methodQuerySummaryState  = "QuerySummaryState"
	methodSubscribeExchange  = "SubscribeToExchangeDeltas"
	methodSubscribeSummary   = "SubscribeToSummaryDeltas"
	methodSubscribeLite      = "SubscribeToSummaryLiteDeltas"
	methodGetAuthContext     = "GetAuthContext"
	methodAuthenticate       = "Authenticate"
)

// Socket is the streaming client. Each query or listen call opens its own
// channel; the negotiated endpoint is resolved once per Socket instance
// and shared by all of them.
type Socket struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	hub        string
	httpClient *http.Client
	logger     *slog.Logger

	negotiator *signalr.Negotiator
}

// SocketOption configures a Socket.
type SocketOption func(*Socket)

// WithCredentials sets the API key and secret required by ListenAccount.
func WithCredentials(key, secret string) SocketOption {
	return func(s *Socket) {
		s.apiKey = key
		s.apiSecret = secret
	}
}

// WithSocketURL overrides the signalr base URL (trailing slash included).
func WithSocketURL(u string) SocketOption {
	return func(s *Socket) {
		s.baseURL = u
	}
}

// WithSocketHTTPClient sets the HTTP client used for negotiation.
func WithSocketHTTPClient(hc *http.Client) SocketOption {
	return func(s *Socket) {
		s.httpClient = hc
	}
}

// WithSocketLogger sets the logger.
func WithSocketLogger(logger *slog.Logger) SocketOption {
	return func(s *Socket) {
		s.logger = logger
	}
}

// NewSocket creates a streaming client.
func NewSocket(opts ...SocketOption) *Socket {
	s := &Socket{
		baseURL: DefaultSocketURL,
		hub:     SocketHub,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.negotiator = signalr.NewNegotiator(s.baseURL, s.hub, s.httpClient, s.logger)

	return s
}

// dial resolves the memoized endpoint and opens a fresh channel on it.
func (s *Socket) dial(ctx context.Context) (*signalr.Channel, error) {
	endpoint, err := s.negotiator.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return signalr.Dial(ctx, endpoint, s.hub, s.logger)
}

// GetMarket fetches the current order book state (buys, sells, fills) for
// each requested market, keyed by market name. The channel is closed once
// every requested market has answered.
func (s *Socket) GetMarket(ctx context.Context, markets []string) (map[string]any, error) {
	ch, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	byID := make(map[int64]string, len(markets))
	for _, market := range markets {
		id, err := ch.Call(ctx, methodQueryExchangeState, []string{market})
		if err != nil {
			return nil, err
		}
		byID[id] = market
	}

	result := make(map[string]any, len(markets))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case msg, ok := <-ch.Messages():
			if !ok {
				if err := ch.Err(); err != nil {
					return nil, err
				}
				return result, nil
			}
			if msg.Kind != signalr.KindResult {
				continue
			}
			market, wanted := byID[msg.InvocationID]
			if !wanted {
				continue
			}
			state, err := decodePayload(msg.Result)
			if err != nil {
				return nil, err
			}
			result[market] = state
			if len(result) >= len(markets) {
				return result, nil
			}
		}
	}
}

// GetSummary fetches the current 24h summary snapshot for all markets.
func (s *Socket) GetSummary(ctx context.Context) (any, error) {
	ch, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer ch.Close()

	if _, err := ch.Call(ctx, methodQuerySummaryState, ""); err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case msg, ok := <-ch.Messages():
			if !ok {
				if err := ch.Err(); err != nil {
					return nil, err
				}
				return nil, ErrConnectionClosed
			}
			if msg.Kind != signalr.KindResult {
				continue
			}
			return decodePayload(msg.Result)
		}
	}
}

// ListenMarket subscribes to order book deltas for the given markets.
// Callback: uE. The market identity of each event comes from the decoded
// payload, not from any per-market filtering.
func (s *Socket) ListenMarket(ctx context.Context, markets []string) (*Feed, error) {
	ch, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	for _, market := range markets {
		if _, err := ch.Call(ctx, methodSubscribeExchange, []string{market}); err != nil {
			ch.Close()
			return nil, err
		}
	}

	feed := newFeed(ch)
	go feed.run(callbackDecoder(cbExchangeDelta))
	return feed, nil
}

// ListenSummary subscribes to full market summary deltas. Callback: uS.
func (s *Socket) ListenSummary(ctx context.Context) (*Feed, error) {
	return s.listenSummary(ctx, methodSubscribeSummary, cbSummaryDelta)
}

// ListenSummaryLite subscribes to the lightweight summary delta feed
// (market name, last price, base volume). Callback: uL.
func (s *Socket) ListenSummaryLite(ctx context.Context) (*Feed, error) {
	return s.listenSummary(ctx, methodSubscribeLite, cbSummaryLite)
}

func (s *Socket) listenSummary(ctx context.Context, method, callback string) (*Feed, error) {
	ch, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := ch.Call(ctx, method, ""); err != nil {
		ch.Close()
		return nil, err
	}

	feed := newFeed(ch)
	go feed.run(callbackDecoder(callback))
	return feed, nil
}

// ListenAccount authenticates the channel with a challenge/response
// exchange and streams account balance (uB) and order (uO) deltas. No
// explicit subscribe call is needed beyond authentication.
func (s *Socket) ListenAccount(ctx context.Context) (*Feed, error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return nil, errors.New("api credentials are required for the account feed")
	}

	ch, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	authID, err := s.authenticate(ctx, ch)
	if err != nil {
		ch.Close()
		return nil, err
	}

	feed := newFeed(ch)
	decode := callbackDecoder(cbBalanceDelta, cbOrderDelta)
	go feed.run(func(msg signalr.Message) ([]any, error) {
		// The hub answers Authenticate on the same channel as the feed;
		// a non-true result means the signature was rejected.
		if msg.Kind == signalr.KindResult && msg.InvocationID == authID {
			var accepted bool
			if err := json.Unmarshal(msg.Result, &accepted); err != nil || !accepted {
				return nil, &SocketError{Message: "authentication rejected"}
			}
			return nil, nil
		}
		return decode(msg)
	})
	return feed, nil
}

// authenticate runs the challenge/response handshake on an open channel
// and returns the invocation id of the Authenticate call.
func (s *Socket) authenticate(ctx context.Context, ch *signalr.Channel) (int64, error) {
	challengeID, err := ch.Call(ctx, methodGetAuthContext, []string{s.apiKey})
	if err != nil {
		return 0, err
	}

	var challenge string
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case msg, ok := <-ch.Messages():
			if !ok {
				if err := ch.Err(); err != nil {
					return 0, err
				}
				return 0, ErrConnectionClosed
			}
			if msg.Kind != signalr.KindResult || msg.InvocationID != challengeID {
				continue
			}
			if err := json.Unmarshal(msg.Result, &challenge); err != nil {
				return 0, &SocketError{Message: "malformed auth challenge"}
			}
		}
		break
	}

	signature := auth.Sign([]byte(challenge), []byte(s.apiSecret))
	return ch.Call(ctx, methodAuthenticate, []string{s.apiKey, signature})
}

// decodePayload unpacks one compressed payload argument: the raw JSON
// string is base64+deflate-decoded, parsed, and its short field codes
// translated to semantic names.
func decodePayload(raw json.RawMessage) (any, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("%w: payload is not a string: %v", ErrDecode, err)
	}

	value, err := codec.Decode(encoded)
	if err != nil {
		return nil, err
	}

	return keymap.Translate(value), nil
}
