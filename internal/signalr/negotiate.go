package signalr

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	clientProtocol = "1.5"
	transportID    = "3"
)

// Negotiator performs the HTTP handshake that establishes the protocol
// version and connection token, and derives the WebSocket URL from them.
// The result is cached for the lifetime of the instance: the first caller
// performs the request, concurrent callers share the in-flight result, and
// a successful endpoint is never recomputed.
type Negotiator struct {
	baseURL    string
	hub        string
	httpClient *http.Client
	logger     *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cached *Endpoint
}

// NewNegotiator creates a Negotiator for the given signalr base URL
// (trailing slash included, e.g. "https://socket.bittrex.com/signalr/")
// and hub name.
func NewNegotiator(baseURL, hub string, httpClient *http.Client, logger *slog.Logger) *Negotiator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Negotiator{
		baseURL:    baseURL,
		hub:        hub,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Resolve returns the negotiated endpoint, performing the handshake on
// first use.
func (n *Negotiator) Resolve(ctx context.Context) (*Endpoint, error) {
	n.mu.RLock()
	cached := n.cached
	n.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := n.group.Do("negotiate", func() (any, error) {
		n.mu.RLock()
		cached := n.cached
		n.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		endpoint, err := n.negotiate(ctx)
		if err != nil {
			return nil, err
		}

		n.mu.Lock()
		n.cached = endpoint
		n.mu.Unlock()

		return endpoint, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Endpoint), nil
}

// negotiateResponse is the body of a successful negotiation request.
type negotiateResponse struct {
	ProtocolVersion string `json:"ProtocolVersion"`
	ConnectionToken string `json:"ConnectionToken"`
}

func (n *Negotiator) negotiate(ctx context.Context) (*Endpoint, error) {
	connData, err := json.Marshal([]map[string]string{{"name": n.hub}})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("clientProtocol", clientProtocol)
	query.Set("connectionData", string(connData))
	query.Set("_", strconv.FormatInt(time.Now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"negotiate?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, &NegotiationError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Reason: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	var conf negotiateResponse
	if err := json.Unmarshal(body, &conf); err != nil {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Reason: "malformed response body"}
	}
	if conf.ProtocolVersion == "" || conf.ConnectionToken == "" {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Reason: "response missing ProtocolVersion or ConnectionToken"}
	}

	socketURL, err := n.socketURL(conf, string(connData))
	if err != nil {
		return nil, &NegotiationError{StatusCode: resp.StatusCode, Reason: err.Error()}
	}

	n.logger.Debug("negotiated endpoint",
		"protocol_version", conf.ProtocolVersion,
		"url", socketURL,
	)

	return &Endpoint{
		ProtocolVersion: conf.ProtocolVersion,
		ConnectionToken: conf.ConnectionToken,
		SocketURL:       socketURL,
	}, nil
}

// socketURL derives the WebSocket connect URL: same host and path as the
// negotiation endpoint with the scheme swapped to ws(s).
func (n *Negotiator) socketURL(conf negotiateResponse, connData string) (string, error) {
	u, err := url.Parse(n.baseURL + "connect")
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}

	query := url.Values{}
	query.Set("transport", "webSockets")
	query.Set("clientProtocol", conf.ProtocolVersion)
	query.Set("connectionToken", conf.ConnectionToken)
	query.Set("connectionData", connData)
	query.Set("tid", transportID)
	u.RawQuery = query.Encode()

	return u.String(), nil
}
