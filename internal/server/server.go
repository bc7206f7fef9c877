// Package server assembles the HTTP router: middleware, the /api/v1 museum
// endpoints, the event stream and the operational endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/BinhiHeritage_Go/internal/database"
	"github.com/osse101/BinhiHeritage_Go/internal/handler"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/metrics"
	"github.com/osse101/BinhiHeritage_Go/internal/sse"
)

// Config holds the HTTP settings
type Config struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	MaxRequestBytes int64
	SSEKeepalive    time.Duration
	Detector        DetectorConfig
}

// Server is the museum HTTP server
type Server struct {
	httpServer *http.Server
}

// NewServer wires the router. dbPool may be nil when running on the memory store.
func NewServer(cfg Config, h *handler.Handlers, hub *sse.Hub, dbPool database.Pool) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, h, hub, dbPool),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(cfg Config, h *handler.Handlers, hub *sse.Hub, dbPool database.Pool) chi.Router {
	maxBytes := cfg.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}
	proxies := NewTrustedProxies(cfg.TrustedProxies)
	detector := NewSuspiciousActivityDetector(cfg.Detector)

	r := chi.NewRouter()

	// outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(AuthMiddleware(cfg.APIKey, proxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxBytes))
	r.Use(metrics.Middleware)

	r.Get(healthRoute, handler.HandleHealthz())
	r.Get(readinessRoute, handler.HandleReadyz(dbPool))
	r.Get(versionRoute, handler.HandleVersion())
	r.Handle(metricsRoute, promhttp.Handler())

	r.Route(apiPrefix, func(r chi.Router) {
		h.Routes(r)
		r.Get(eventsRoute, sse.Handler(hub, cfg.SSEKeepalive))
	})

	r.Get(swaggerRoute, httpSwagger.WrapHandler)

	return r
}

// responseWriter captures the status code for request logs
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets the event stream push through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, healthRoute) ||
			strings.HasPrefix(r.URL.Path, readinessRoute) ||
			strings.HasPrefix(r.URL.Path, metricsRoute) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(in http.Header) http.Header {
	out := make(http.Header, len(in))
	for k, v := range in {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start serves until Stop is called. It returns http.ErrServerClosed after a clean stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
