package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id back to the client
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// RequestLogger tags every request with an id, exposes a request scoped log
// entry through the context, logs the outcome and turns panics into 500s.
func RequestLogger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			entry := log.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				if p := recover(); p != nil {
					entry.WithField("panic", p).Error("Handler panicked")
					if rec.wroteHeader {
						// the response is already on the wire
						entry.Warn("Response aborted after headers were sent")
						rec.status = http.StatusInternalServerError
					} else {
						writeError(rec, http.StatusInternalServerError, "Erro interno do servidor")
					}
				}
				entry.WithFields(logrus.Fields{
					"status":      rec.status,
					"duration_ms": time.Since(start).Milliseconds(),
				}).Info("Request completed")
			}()

			next.ServeHTTP(rec, r.WithContext(WithLogger(r.Context(), entry)))
		})
	}
}
