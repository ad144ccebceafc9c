// internal/scraper/client_test.go
package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(retries int) *HTTPClient {
	return NewHTTPClient(ClientConfig{
		Timeout:       5 * time.Second,
		RetryAttempts: retries,
		RetryDelay:    time.Millisecond,
		RateLimit:     1000,
		RateBurst:     1000,
	})
}

func TestClientGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><h1>ok</h1></body></html>"))
	}))
	defer server.Close()

	doc, err := testClient(0).GetDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}

	if got := doc.Find("h1").Text(); got != "ok" {
		t.Fatalf("Expected parsed document, got %q", got)
	}
}

func TestClientRetriesRetryableStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	resp, err := testClient(3).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	resp.Body.Close()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("Expected 3 attempts, got %d", got)
	}
}

func TestClientDoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := testClient(3).Get(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404 response")
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", got)
	}
}

func TestClientRotatesUserAgents(t *testing.T) {
	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewHTTPClient(ClientConfig{
		RetryAttempts: 0,
		RetryDelay:    time.Millisecond,
		RateLimit:     1000,
		RateBurst:     1000,
		UserAgents:    []string{"agent-a", "agent-b"},
	})

	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		resp.Body.Close()
	}

	if agents[0] != "agent-a" || agents[1] != "agent-b" || agents[2] != "agent-a" {
		t.Fatalf("Expected round-robin rotation, got %v", agents)
	}
}
