package signalr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNegotiatorResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/negotiate") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("clientProtocol") != "1.5" {
			t.Errorf("clientProtocol = %q, want 1.5", q.Get("clientProtocol"))
		}
		if q.Get("connectionData") != `[{"name":"c2"}]` {
			t.Errorf("connectionData = %q", q.Get("connectionData"))
		}
		if q.Get("_") == "" {
			t.Error("cache-busting parameter missing")
		}
		fmt.Fprint(w, `{"ProtocolVersion":"1.5","ConnectionToken":"tok-123"}`)
	}))
	defer server.Close()

	n := NewNegotiator(server.URL+"/signalr/", "c2", server.Client(), nil)

	endpoint, err := n.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if endpoint.ProtocolVersion != "1.5" {
		t.Errorf("ProtocolVersion = %q, want 1.5", endpoint.ProtocolVersion)
	}
	if endpoint.ConnectionToken != "tok-123" {
		t.Errorf("ConnectionToken = %q, want tok-123", endpoint.ConnectionToken)
	}

	socketURL, err := url.Parse(endpoint.SocketURL)
	if err != nil {
		t.Fatalf("parse socket url: %v", err)
	}
	if socketURL.Scheme != "ws" {
		t.Errorf("scheme = %q, want ws", socketURL.Scheme)
	}
	if !strings.HasSuffix(socketURL.Path, "/signalr/connect") {
		t.Errorf("path = %q, want /signalr/connect suffix", socketURL.Path)
	}
	q := socketURL.Query()
	if q.Get("transport") != "webSockets" {
		t.Errorf("transport = %q, want webSockets", q.Get("transport"))
	}
	if q.Get("connectionToken") != "tok-123" {
		t.Errorf("connectionToken = %q, want tok-123", q.Get("connectionToken"))
	}
	if q.Get("tid") != "3" {
		t.Errorf("tid = %q, want 3", q.Get("tid"))
	}
}

func TestNegotiatorCachesResult(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"ProtocolVersion":"1.5","ConnectionToken":"tok"}`)
	}))
	defer server.Close()

	n := NewNegotiator(server.URL+"/signalr/", "c2", server.Client(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := n.Resolve(context.Background()); err != nil {
				t.Errorf("Resolve: %v", err)
			}
		}()
	}
	wg.Wait()

	if _, err := n.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("negotiation requests = %d, want 1", got)
	}
}

func TestNegotiatorErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"ProtocolVersion":"1.5"}`)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			n := NewNegotiator(server.URL+"/signalr/", "c2", server.Client(), nil)

			_, err := n.Resolve(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var negErr *NegotiationError
			if !errors.As(err, &negErr) {
				t.Fatalf("error %T is not *NegotiationError", err)
			}
			if negErr.StatusCode != tc.wantStatus {
				t.Errorf("StatusCode = %d, want %d", negErr.StatusCode, tc.wantStatus)
			}
		})
	}
}

func TestNegotiatorFailureNotCached(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"ProtocolVersion":"1.5","ConnectionToken":"tok"}`)
	}))
	defer server.Close()

	n := NewNegotiator(server.URL+"/signalr/", "c2", server.Client(), nil)

	if _, err := n.Resolve(context.Background()); err == nil {
		t.Fatal("expected first Resolve to fail")
	}
	if _, err := n.Resolve(context.Background()); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("negotiation requests = %d, want 2", got)
	}
}
