package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "nutricalc/internal/log"
)

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0.001, 2, false)
	t.Cleanup(limiter.Close)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products/1/nutrition", nil)
		req.RemoteAddr = "10.0.0.5:41234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/products/1/nutrition", nil)
	other.RemoteAddr = "10.0.0.6:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected independent budget per client, got %d", rr.Code)
	}
}

func TestRateLimiterCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1, 1, false)
	limiter.Close()
	limiter.Close()
}

func TestRateLimiterIgnoresProxyHeadersByDefault(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0.001, 1, false)
	t.Cleanup(limiter.Close)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products/1/nutrition", nil)
		req.RemoteAddr = "10.0.0.5:41234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 1 {
		t.Fatalf("expected rotating headers to share one budget, %d requests allowed", allowed)
	}

	limiter.mu.Lock()
	clients := len(limiter.limiters)
	limiter.mu.Unlock()
	if clients != 1 {
		t.Fatalf("expected a single tracked client, got %d", clients)
	}
}

func TestRateLimiterTrustedProxyKeysOnForwardedFor(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(0.001, 1, true)
	t.Cleanup(limiter.Close)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/products/1/nutrition", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", forwarded)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected %s to have its own budget, got %d", forwarded, rr.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{"forwarded trusted", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:80", true, "203.0.113.9"},
		{"real ip trusted", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:80", true, "198.51.100.2"},
		{"forwarded untrusted", map[string]string{"X-Forwarded-For": "203.0.113.9"}, "10.0.0.1:80", false, "10.0.0.1"},
		{"real ip untrusted", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:80", false, "10.0.0.1"},
		{"remote addr", nil, "192.0.2.7:5555", true, "192.0.2.7"},
		{"remote without port", nil, "192.0.2.8", false, "192.0.2.8"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			if got := clientIP(req, tt.trustProxy); got != tt.want {
				t.Fatalf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggingRecordsStatus(t *testing.T) {
	buf := new(bytes.Buffer)
	original := applog.Logger()
	applog.ReplaceLogger(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() {
		applog.ReplaceLogger(original)
	})

	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	line := buf.String()
	for _, fragment := range []string{"msg=request", "status=418", "bytes=15", "path=/healthz", "component=http"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in log line %q", fragment, line)
		}
	}
}
