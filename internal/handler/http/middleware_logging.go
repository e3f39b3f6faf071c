package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/notion-brain/internal/logger"
)

// withLogging writes one structured entry per request with the status and
// body size captured by the responseWriter decorator.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Int("size", rw.size).
			Msg("request handled")
	})
}
