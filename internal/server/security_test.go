package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	detector := NewSuspiciousActivityDetector(DetectorConfig{})
	handler := AuthMiddleware(apiKey, nil, detector)(okHandler())

	tests := []struct {
		name       string
		key        string
		path       string
		wantStatus int
	}{
		{"valid key", apiKey, "/api/v1/crops", http.StatusOK},
		{"wrong key", "wrong-key", "/api/v1/crops", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/crops", http.StatusUnauthorized},
		{"key prefix only", "secret", "/api/v1/crops", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"readyz is public", "", "/readyz", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"swagger is public", "", "/swagger/index.html", http.StatusOK},
		{"event stream needs key", "", "/api/v1/events", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailures(t *testing.T) {
	detector := NewSuspiciousActivityDetector(DetectorConfig{})
	handler := AuthMiddleware("k", nil, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["10.1.1.1"])
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, want := range expected {
		assert.Equal(t, want, rec.Header().Get(header), header)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector(DetectorConfig{RateLimit: 10, Window: time.Minute})
	now := time.Now()
	detector.now = func() time.Time { return now }
	detector.reset()
	handler := RateLimitMiddleware(nil, detector)(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, send("192.168.1.100"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.100"))
	assert.Equal(t, http.StatusOK, send("192.168.1.101"), "other clients are unaffected")

	// a new window clears the count
	now = now.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send("192.168.1.100"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is far too long"))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies := NewTrustedProxies([]string{"10.0.0.1"})

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct client", "203.0.113.9:4000", "", "203.0.113.9"},
		{"untrusted proxy header ignored", "203.0.113.9:4000", "1.2.3.4", "203.0.113.9"},
		{"trusted proxy uses last hop", "10.0.0.1:4000", "1.2.3.4, 198.51.100.7", "198.51.100.7"},
		{"trusted proxy without header", "10.0.0.1:4000", "", "10.0.0.1"},
		{"unparseable remote addr", "garbage", "", "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, proxies.ClientIP(req))
		})
	}
}
