package httpkit

import (
	"entitylens/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth; a nil port mounts them open
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		if p != nil && !isNilPort(p) {
			gr.Use(Auth(p))
		}
		fn(gr)
	})
}

// a typed nil *Port stored in the interface still means no auth
func isNilPort(p middleware.AuthPort) bool {
	pp, ok := p.(*Port)
	return ok && pp == nil
}
