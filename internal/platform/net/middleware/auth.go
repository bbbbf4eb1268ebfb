package middleware

import (
	"net/http"

	pnet "entitylens/internal/platform/net"
)

// AuthPort resolves the calling subject from a request
type AuthPort interface {
	Parse(r *http.Request) (subject string, err error)
}

// Auth rejects requests the port cannot resolve; a nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			sub, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithSubject(r.Context(), sub)))
		})
	}
}
