package api

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// slowRequestThreshold is the duration after which a request is logged as slow
const slowRequestThreshold = time.Second

// RequestIDHeader carries the request id back to the caller
const RequestIDHeader = "X-Request-Id"

// MetricsMiddleware assigns a request id, records Prometheus request metrics and logs the request
func MetricsMiddleware(m *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := routeTemplate(r)
			if path == "/metrics" || path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			// Wrap response writer to capture status code
			wrappedWriter := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrappedWriter, r)

			totalDuration := time.Since(startTime)
			if m != nil {
				m.ObserveRequest(r.Method, path, wrappedWriter.statusCode, totalDuration)
			}

			fields := []interface{}{
				"requestId", requestID,
				"method", r.Method,
				"path", path,
				"status", wrappedWriter.statusCode,
				"duration", totalDuration,
			}
			switch {
			case totalDuration > slowRequestThreshold:
				zap.S().Warnw("Slow request detected", fields...)
			case wrappedWriter.statusCode >= http.StatusInternalServerError:
				zap.S().Warnw("Request failed", fields...)
			default:
				zap.S().Debugw("Request handled", fields...)
			}
		})
	}
}

// routeTemplate returns the matched mux route template so path variables do not explode
// metric cardinality
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Hijack implements http.Hijacker
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}
