package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RequestObserver is told the outcome of every request.
type RequestObserver interface {
	ObserveRequest(method string, status int)
}

// Logger tags each request with an id, logs it once it completes and reports it to obs.
func Logger(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(utils.RequestIDHeader)
			if requestID == "" {
				requestID = utils.NewRequestID()
			}
			w.Header().Set(utils.RequestIDHeader, requestID)

			rec := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			if obs != nil {
				obs.ObserveRequest(r.Method, rec.status)
			}
			zap.L().Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", requestID),
			)
		})
	}
}
