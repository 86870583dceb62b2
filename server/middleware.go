package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"community-bot/monitoring"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Message is the JSON body of error responses.
type Message struct {
	Message string `json:"message"`
}

// statusWriter remembers the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) StatusCode() int {
	if w.code == 0 {
		return http.StatusOK
	}
	return w.code
}

// middlewareHttp recovers from handler panics and records request metrics under the route's
// path template.
func (s *Server) middlewareHttp(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		cw := &statusWriter{ResponseWriter: w}

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in http handler", zap.Any("panic", rec), zap.Stack("stack"))
				writeJSON(s.logger, cw, http.StatusInternalServerError, Message{Message: "Internal server error"})
			}
			code := fmt.Sprintf("%d", cw.StatusCode())
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, code).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, code).Observe(time.Since(start).Seconds())
		}()

		handler(cw, r)
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		next.ServeHTTP(w, r)
	})
}

func notFoundHandler(l *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(l, w, http.StatusNotFound, Message{Message: "Not found"})
	})
}

func methodNotAllowedHandler(l *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(l, w, http.StatusMethodNotAllowed, Message{Message: "Method not allowed"})
	})
}

func writeJSON(l *zap.Logger, w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		l.Error("error encoding response", zap.Error(err))
	}
}
