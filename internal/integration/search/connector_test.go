package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/career-agent/internal/config"
	"github.com/futig/career-agent/internal/entity"
	pkgRetry "github.com/futig/career-agent/internal/pkg/retry"
	"go.uber.org/zap/zaptest"
)

func testConfig(url string) config.SearchConnectorConfig {
	return config.SearchConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        2 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: time.Second,
			Url:                   url,
		},
		APIKey:     "secret",
		EngineID:   "engine",
		Endpoint:   "/customsearch/v1",
		MaxResults: 5,
		Retry:      pkgRetry.RetryConfig{Attempts: 1, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
}

func items(n int) []entity.SearchResult {
	out := make([]entity.SearchResult, n)
	for i := range out {
		out[i] = entity.SearchResult{
			Title:   "title",
			Link:    "https://example.com/" + string(rune('a'+i)),
			Snippet: "snippet",
		}
	}
	return out
}

func TestSearchReturnsAtMostFiveInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "secret" || q.Get("cx") != "engine" || q.Get("q") != "learn docker" {
			t.Errorf("unexpected query %v", q)
		}
		json.NewEncoder(w).Encode(entity.GoogleSearchResponse{Items: items(8)})
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t))
	got := c.Search(context.Background(), "learn docker")

	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got))
	}
	for i, r := range got {
		if want := items(8)[i].Link; r.Link != want {
			t.Fatalf("result %d: got %s, want %s", i, r.Link, want)
		}
	}
}

func TestSearchClampsConfiguredMaxResults(t *testing.T) {
	var num string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		num = r.URL.Query().Get("num")
		json.NewEncoder(w).Encode(entity.GoogleSearchResponse{Items: items(10)})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxResults = 10

	got := NewConnector(cfg, zaptest.NewLogger(t)).Search(context.Background(), "q")
	if len(got) != entity.MaxSearchResults {
		t.Fatalf("expected %d results, got %d", entity.MaxSearchResults, len(got))
	}
	if num != "5" {
		t.Fatalf("expected num=5 upstream, got %q", num)
	}
}

func TestSearchNoItemsIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kind":"customsearch#search"}`))
	}))
	defer srv.Close()

	got := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t)).Search(context.Background(), "q")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", got)
	}
}

func TestSearchSwallowsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"auth", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "bad key", http.StatusForbidden) }},
		{"quota", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "quota", http.StatusTooManyRequests) }},
		{"garbage", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{not json`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got := NewConnector(testConfig(srv.URL), zaptest.NewLogger(t)).Search(context.Background(), "q")
			if len(got) != 0 {
				t.Fatalf("expected empty list, got %v", got)
			}
		})
	}
}

func TestSearchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	got := NewConnector(testConfig(url), zaptest.NewLogger(t)).Search(context.Background(), "q")
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestSearchRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(entity.GoogleSearchResponse{Items: items(2)})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retry.Attempts = 3

	got := NewConnector(cfg, zaptest.NewLogger(t)).Search(context.Background(), "q")
	if len(got) != 2 {
		t.Fatalf("expected 2 results after retry, got %d", len(got))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestSearchDoesNotRetryAuthFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retry.Attempts = 3

	NewConnector(cfg, zaptest.NewLogger(t)).Search(context.Background(), "q")
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestMockSearchReturnsFiveResults(t *testing.T) {
	got := NewMockConnector(zaptest.NewLogger(t)).Search(context.Background(), "learn go")
	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got))
	}
}
