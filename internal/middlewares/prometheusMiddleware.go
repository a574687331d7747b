package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"spendly/internal/utils"
)

// Instrument records request count, duration, response size and in-flight
// gauge for every request. The metric vectors live in utils so they are
// registered exactly once.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		utils.InFlightRequests.Inc()
		defer utils.InFlightRequests.Dec()

		lrw := &loggingResponseWriter{ResponseWriter: w}
		next.ServeHTTP(lrw, r)

		statusCode := strconv.Itoa(lrw.statusCode)
		path := r.URL.Path
		method := r.Method

		utils.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
		utils.HTTPRequestDurationSeconds.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		utils.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(lrw.responseSize))
	})
}

// loggingResponseWriter is a wrapper around http.ResponseWriter that captures the status code and response size.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(data []byte) (int, error) {
	if lrw.statusCode == 0 {
		lrw.statusCode = http.StatusOK // Default status code if WriteHeader is not called
	}
	n, err := lrw.ResponseWriter.Write(data)
	lrw.responseSize += n
	return n, err
}
