package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "entitylens/internal/platform/net/http"
	"entitylens/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	CORSOrigins []string
	SlowLog     time.Duration
	MaxInFlight int // 0 disables throttling
}

// CommonStack returns the baseline per scope middleware slice
// compose with Auth in main when a token is configured
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow:  o.SlowLog,
			Quiet: []string{"/meta/health", "/meta/ready"},
		}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight, o.MaxInFlight, o.Timeout))
	}
	return stack
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
