package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"entitylens/internal/platform/config"
	phttp "entitylens/internal/platform/net/http"
)

// stub module that satisfies Module and records calls
type stub struct {
	mounted bool
	ports   any
}

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return s.ports }
func (s *stub) Name() string               { return "stub" }

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, _ ...Option) Module {
		return &stub{ports: "ok"}
	}
	m := b(Deps{Cfg: config.New()})
	m.MountRoutes(nil)
	if p := m.Ports(); p != "ok" {
		t.Fatalf("unexpected Ports value from built module: got=%v want=ok", p)
	}
}

func TestBuild_Options(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}
	registered := false

	b := Build(
		WithName("annotate"),
		WithPrefix("/annotate"),
		WithMiddlewares(mw("a"), mw("b")),
		WithMiddlewares(mw("c")),
		WithTimeout(3*time.Second),
		nil,
		WithRegister(func(phttp.Router) { registered = true }),
	)
	if b.Name != "annotate" || b.Prefix != "/annotate" || b.Timeout != 3*time.Second {
		t.Fatalf("unexpected build %+v", b)
	}
	if len(b.Mw) != 3 {
		t.Fatalf("expected 3 middlewares got=%d", len(b.Mw))
	}

	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(b.Mw) - 1; i >= 0; i-- {
		h = b.Mw[i](h)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(order) != 3 || order[0] != "a" || order[2] != "c" {
		t.Fatalf("middleware order = %v", order)
	}

	b.Register(nil)
	if !registered {
		t.Fatalf("register hook not kept")
	}
}

func TestBuild_DefaultRegisterIsNoop(t *testing.T) {
	t.Parallel()
	b := Build()
	b.Register(nil)
	if len(b.Mw) != 0 {
		t.Fatalf("expected no middlewares")
	}
}

func TestDeps_LoggerFallsBack(t *testing.T) {
	t.Parallel()
	if (Deps{}).Logger("x") == nil {
		t.Fatalf("expected a logger")
	}
}
