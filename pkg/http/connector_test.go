package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestDoRequestAddsQueryAndKey(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	c := NewConnector(
		&ConnectorConfig{BaseURL: srv.URL, Logger: zaptest.NewLogger(t)},
		WithRequestTimeout(5*time.Second),
		WithRequestLogging(),
		WithAPIKeyParam("key", "secret"),
	)

	var resp struct {
		Value string `json:"value"`
	}
	err := c.DoRequest(context.Background(), http.MethodGet, "/search", nil, &resp,
		WithQuery("q", "learn go & rust"),
		WithQuery("num", "5"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Value != "ok" {
		t.Fatalf("unexpected response %q", resp.Value)
	}
	if gotQuery.Get("q") != "learn go & rust" || gotQuery.Get("num") != "5" || gotQuery.Get("key") != "secret" {
		t.Fatalf("unexpected query %v", gotQuery)
	}
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL})
	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 HTTPError, got %v", err)
	}
	if !IsRetryable(err) {
		t.Fatal("429 should be retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&NetworkError{Err: errors.New("reset")}, true},
		{&HTTPError{StatusCode: http.StatusBadGateway}, true},
		{&HTTPError{StatusCode: http.StatusForbidden}, false},
		{errors.New("decode response"), false},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRedactURL(t *testing.T) {
	u, _ := url.Parse("https://www.googleapis.com/customsearch/v1?cx=engine&key=secret&q=go")
	got := redactURL(u)
	if want := "https://www.googleapis.com/customsearch/v1?cx=engine&key=REDACTED&q=go"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	plain, _ := url.Parse("https://example.com/a?q=1")
	if redactURL(plain) != "https://example.com/a?q=1" {
		t.Fatal("url without credentials should be unchanged")
	}
}
