package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSession struct {
	token        string
	unauthorized int32
}

func (s *fakeSession) Token() string { return s.token }

func (s *fakeSession) OnUnauthorized() { atomic.AddInt32(&s.unauthorized, 1) }

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, &fakeSession{token: "abc"}, zap.NewNop())

	var out map[string]bool
	if err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q, want Bearer abc", gotAuth)
	}
	if !out["ok"] {
		t.Error("response not decoded")
	}
}

func TestDoExtractsErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail": "division not found"}`, "division not found"},
		{"message field", `{"message": "bad input"}`, "bad input"},
		{"error field", `{"error": "boom"}`, "boom"},
		{"raw text", `gateway exploded`, "gateway exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil, zap.NewNop())
			err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.Detail != tt.want {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tt.want)
			}
		})
	}
}

func TestUnauthorizedTriggersSessionHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &fakeSession{token: "expired"}
	c := NewClient(server.URL, session, zap.NewNop())

	err := c.Get(context.Background(), "/x", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if atomic.LoadInt32(&session.unauthorized) != 1 {
		t.Error("OnUnauthorized not called")
	}
}

func TestGetDeduplicatesInFlightRequests(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		w.Write([]byte(`{"n": 1}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, zap.NewNop())
	query := url.Values{"metric": []string{"projects_by_status"}}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out map[string]int
			if err := c.Get(context.Background(), "/dash", query, &out); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1 for identical in-flight GETs", got)
	}
}

func TestGetWithRetryStopsAfterFixedAttempts(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, zap.NewNop())

	err := c.GetWithRetry(context.Background(), "/divisions", nil, nil, 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("attempts = %d, want 3 (1 + 2 retries)", got)
	}
}

func TestGetWithRetryDoesNotRetryUnauthorized(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, &fakeSession{}, zap.NewNop())

	err := c.GetWithRetry(context.Background(), "/divisions", nil, nil, 2)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}
