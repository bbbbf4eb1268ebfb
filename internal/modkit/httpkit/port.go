// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "entitylens/internal/platform/errors"
)

// TokenFunc resolves a bearer token into a subject
type TokenFunc func(token string) (subject string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// StaticToken accepts exactly one shared token and reports subject for it
// an empty token yields a nil port so Auth lets everything through
func StaticToken(token, subject string) *Port {
	if token == "" {
		return nil
	}
	return NewPortFunc(func(got string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return "", perr.Unauthorizedf("token mismatch")
		}
		return subject, nil
	})
}

// Parse extracts the subject from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the parser returns an error
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	// no trailing space required after the scheme
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}

	if p == nil || p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	sub, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}
