// Package module wires the annotate API into HTTP via modkit
package module

import (
	"context"
	"net/http"
	"time"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/extractor"
	"entitylens/internal/modkit"
	"entitylens/internal/modkit/httpkit"
	"entitylens/internal/platform/net/middleware"
	"entitylens/internal/platform/strings"
	"entitylens/internal/services/annotate/domain"

	annotatehttp "entitylens/internal/services/annotate/http"
	"entitylens/internal/services/annotate/service"
)

// Ports exposes the service and the model probe for cross-module lookups
type Ports struct {
	Service domain.ServicePort
	Model   domain.ReadyPort
}

// Module implements the annotate module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	clf *classifier.Client
	svc *service.Service
}

// New constructs the annotate module; the classifier is built from CORE_ANNOTATE_* config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("annotate"), modkit.WithPrefix("/annotate")}, opts...)...)

	cfg := deps.Cfg.Prefix("CORE_ANNOTATE_")
	sopt := service.FromConfig(cfg)
	clf := classifier.New(extractor.Backend{
		PackPath: cfg.MayString("PACK_PATH", ""),
		Region:   sopt.Region,
		Location: sopt.Location,
	}, classifier.Options{Concurrency: int64(cfg.MayInt("CONCURRENCY", 1))})
	svc := service.New(clf, sopt)

	mws := b.Mw
	if b.Timeout > 0 {
		mws = append(mws, middleware.Timeout(b.Timeout))
	}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    mws,
		clf:    clf,
		svc:    svc,
		ports:  Ports{Service: svc, Model: clf},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		annotatehttp.Register(r, m.svc)
		external(r)
	}
	deps.Logger("annotate").Debug().
		Str("locale", sopt.Locale).
		Str("region", sopt.Region).
		Str("tz", sopt.Location.String()).
		Msg("annotate module built")
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		m.register(rr)
	})
}

// Warm loads the model ahead of the first request; failures are only logged
func (m *Module) Warm(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := m.clf.Prepare(ctx); err != nil {
		m.deps.Logger("annotate").Warn().Err(err).Msg("model warmup failed")
	}
}

// Close releases the model handle
func (m *Module) Close() error { return m.clf.Close() }

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
