package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sgacceso/service-acceso-go/internal/accesslog"
	"github.com/sgacceso/service-acceso-go/internal/auth"
	"github.com/sgacceso/service-acceso-go/internal/gate"
	"github.com/sgacceso/service-acceso-go/internal/terminal"
	"github.com/sgacceso/service-acceso-go/pkg/utilities"
)

// HeaderRequestID carries the per-request id assigned by the middleware.
const HeaderRequestID = "X-Request-Id"

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware assigns each request a ksuid and echoes it back so
// gate incidents can be traced across terminal and server logs.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = utilities.NewKSUID()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", lrw.Header().Get(HeaderRequestID),
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer policy
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")

			// HSTS - instruct browsers to use HTTPS for future requests. Only set if request is over TLS.
			if r.TLS != nil {
				// 30 days by default
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Dependencies bundles everything the route table needs.
type Dependencies struct {
	Logger       *zap.SugaredLogger
	Gate         *gate.Handler
	AccessLog    *accesslog.Handler
	Terminals    *terminal.Service
	BearerSecret []byte
}

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux. Scan endpoints are authenticated by terminal credentials,
// log maintenance by an admin bearer token.
func RegisterRoutes(d Dependencies) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /acceso-api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireTerminal := auth.RequireTerminal(d.Terminals, d.Logger)
	mux.Handle("POST /acceso-api/scans", requireTerminal(http.HandlerFunc(d.Gate.Scan)))
	mux.Handle("POST /acceso-api/scans/clarify", requireTerminal(http.HandlerFunc(d.Gate.Clarify)))

	requireBearer := auth.RequireBearer(d.BearerSecret, d.Logger)
	mux.Handle("GET /acceso-api/access-logs", requireBearer(http.HandlerFunc(d.AccessLog.List)))
	mux.Handle("POST /acceso-api/access-logs/{id}/cancel", requireBearer(http.HandlerFunc(d.AccessLog.Cancel)))

	// wrap with security headers middleware then request id, then logging
	handler := LoggingMiddleware(d.Logger)(RequestIDMiddleware()(SecurityHeadersMiddleware()(mux)))
	return handler
}
