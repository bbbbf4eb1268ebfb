package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"entitylens/internal/platform/config"
	phttp "entitylens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func mount(t *testing.T, opt Options) *chi.Mux {
	t.Helper()
	m := chi.NewRouter()
	opt.Config = config.New()
	mounted := Mount(phttp.AdaptChi(m), opt)
	t.Cleanup(func() { _ = mounted.Close() })
	return m
}

func do(m http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	return rec
}

func TestMount_AnnotateAndMeta(t *testing.T) {
	m := mount(t, Options{Timeout: 5 * time.Second, WarmTimeout: time.Second})

	rec := do(m, http.MethodPost, "/api/v1/annotate", `{"text":"mail a@b.io"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("annotate: %d %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data struct {
			Lines []string `json:"lines"`
		} `json:"data"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data.Lines) == 0 || env.RequestID == "" {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}

	rec = do(m, http.MethodGet, "/api/v1/meta/ready", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(m, http.MethodGet, "/api/v1/annotate/kinds", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"tracking_number"`) {
		t.Fatalf("kinds: %d %s", rec.Code, rec.Body.String())
	}

	if rec = do(m, http.MethodGet, "/api/docs/doc.json", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off, got %d", rec.Code)
	}
}

func TestMount_TokenProtectsAnnotateOnly(t *testing.T) {
	m := mount(t, Options{Token: "s3cret", EnableSwagger: true})

	if rec := do(m, http.MethodPost, "/api/v1/annotate", `{"text":"x"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(m, http.MethodPost, "/api/v1/annotate", `{"text":"x"}`, "s3cret"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(m, http.MethodGet, "/api/v1/meta/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("meta should stay open, got %d", rec.Code)
	}
	if rec := do(m, http.MethodGet, "/api/docs/doc.json", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("swagger json: %d", rec.Code)
	}
}
