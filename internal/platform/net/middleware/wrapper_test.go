package middleware_test

import (
	"compress/flate"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"entitylens/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestThrottle_RejectsOverflow(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.Throttle(1, 0, 10*time.Millisecond)(slow)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/annotate", nil))
		close(done)
	}()
	<-entered

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/annotate", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("overflow status = %d, want 429", second.Code)
	}

	close(release)
	<-done
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
}

func TestCompress_DeflateWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		// write a body big enough to trigger compression
		_, _ = io.WriteString(w, strings.Repeat("a", 4<<10)) // 4 KB
	})

	mw := middleware.Compress(flate.DefaultCompression)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip") // chi prefers gzip
	rr := httptest.NewRecorder()

	mw(h).ServeHTTP(rr, req)

	enc := rr.Result().Header.Get("Content-Encoding")
	if enc == "" {
		t.Fatalf("expected Content-Encoding to be set (e.g., gzip)")
	}
}

func TestCORS_DefaultsFillMissing(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"https://example.com"},
		// leave other fields empty to exercise defaults
	})

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	// ask for a header so the lib returns Access-Control-Allow-Headers
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rr := httptest.NewRecorder()
	cors(h).ServeHTTP(rr, req)

	if rr.Code != 200 && rr.Code != 204 {
		t.Fatalf("expected 200 or 204 got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected Access-Control-Allow-Methods to be set")
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("expected Access-Control-Allow-Headers to be set")
	}
}

func TestRequestIDAndRealIP(t *testing.T) {
	var gotRID, gotAddr string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRID = chimw.GetReqID(r.Context())
		gotAddr = r.RemoteAddr
		w.WriteHeader(http.StatusNoContent)
	})
	chain := middleware.RealIP()(middleware.RequestID()(middleware.NoCache()(h)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	req.Header.Set("X-Request-Id", "upstream-1")
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	if gotRID != "upstream-1" {
		t.Fatalf("request id = %q, want upstream-1", gotRID)
	}
	if host, _, err := net.SplitHostPort(gotAddr); err == nil {
		gotAddr = host
	}
	if gotAddr != "1.2.3.4" {
		t.Fatalf("remote addr = %q, want 1.2.3.4", gotAddr)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("expected Cache-Control from NoCache")
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("recovered %v, want ErrAbortHandler", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "panic recovered") || !strings.Contains(body, `"request_id"`) {
		t.Fatalf("unexpected body %q", body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header mirrored")
	}
}
