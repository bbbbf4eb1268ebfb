package httpkit

import (
	"net/http"

	phttp "entitylens/internal/platform/net/http"
	"entitylens/internal/platform/net/http/bind"
)

// Router is the platform router seam modules mount on
type Router = phttp.Router

// Handler is the platform handler func
type Handler = phttp.Handler

// GetJSON mounts a body-less JSON handler under GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a decoding JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	phttp.PostJSON(r, path, h, opts...)
}

// Post registers a no-body POST handler
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}
