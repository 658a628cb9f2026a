package bittrex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/tmalkov/bittrex-stream/internal/auth"
)

// DefaultAPIURL is the base of the Bittrex REST API.
const DefaultAPIURL = "https://bittrex.com/api"

const (
	apiVersion1 = "v1.1"
	apiVersion2 = "v2.0"
)

// The documented call limit is 60 requests per minute.
const (
	rateLimitCalls = 60
	rateLimitSpan  = time.Minute
)

// API is the REST query client. Authenticated endpoints sign the full
// request URL with hex HMAC-SHA512 in the apisign header, the same
// signature scheme the socket authentication handshake uses.
type API struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// APIOption configures an API client.
type APIOption func(*API)

// WithAPIURL overrides the REST base URL.
func WithAPIURL(u string) APIOption {
	return func(a *API) {
		a.baseURL = u
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) APIOption {
	return func(a *API) {
		a.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) APIOption {
	return func(a *API) {
		a.httpClient = hc
	}
}

// WithLimiter replaces the default 60-calls-per-minute limiter.
func WithLimiter(l *rate.Limiter) APIOption {
	return func(a *API) {
		a.limiter = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) APIOption {
	return func(a *API) {
		a.logger = logger
	}
}

// NewAPI creates a REST client. Key and secret may be empty for public
// endpoints only.
func NewAPI(apiKey, apiSecret string, opts ...APIOption) *API {
	a := &API{
		baseURL:   DefaultAPIURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(rateLimitSpan/rateLimitCalls), rateLimitCalls),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// get performs a throttled GET against <base>/<version>/<path>, unwraps
// the {success, message, result} envelope and unmarshals result.
// Authenticated calls add apikey and a millisecond nonce to the query and
// sign the full URL.
func (a *API) get(ctx context.Context, version, path string, options url.Values, authenticate bool, result any) error {
	if options == nil {
		options = url.Values{}
	}
	if authenticate {
		options.Set("apikey", a.apiKey)
		options.Set("nonce", strconv.FormatInt(time.Now().UnixMilli(), 10))
	}

	fullURL := a.baseURL + "/" + version + "/" + path
	if len(options) > 0 {
		fullURL += "?" + options.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if authenticate {
		req.Header.Set("apisign", auth.Sign([]byte(fullURL), []byte(a.apiSecret)))
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &ResponseError{StatusCode: resp.StatusCode, Content: string(body)}
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = "Unknown error"
		}
		a.logger.Debug("api call rejected", "path", path, "message", message)
		return &APIError{Message: message}
	}

	if result != nil && len(envelope.Result) > 0 && !bytes.Equal(envelope.Result, []byte("null")) {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
