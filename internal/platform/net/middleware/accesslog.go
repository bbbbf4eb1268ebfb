package middleware

import (
	"net/http"
	"strings"
	"time"

	"entitylens/internal/platform/logger"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	Slow time.Duration // >= Slow logs at warn, 0 disables

	// Quiet lists path suffixes logged at debug, e.g. probe endpoints
	Quiet []string
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

func (o AccessLogOptions) quiet(path string) bool {
	for _, q := range o.Quiet {
		if q != "" && strings.HasSuffix(path, q) {
			return true
		}
	}
	return false
}

// AccessLogZerolog logs one line per request with status, latency and size
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case rec.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && took >= opt.Slow:
				evt = log.Warn()
			case opt.quiet(r.URL.Path):
				evt = log.Debug()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int64("bytes", rec.written).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
