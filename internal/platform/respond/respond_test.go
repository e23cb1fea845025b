package respond

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

func newRouter() chi.Router {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Use(Recoverer())
	router.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hi"))
	})
	return router
}

func varySet(h http.Header) map[string]int {
	set := make(map[string]int)
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			set[strings.TrimSpace(part)]++
		}
	}
	return set
}

func decodeProblem(t *testing.T, resp *httptest.ResponseRecorder) Problem {
	t.Helper()
	var p Problem
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal problem %q: %v", resp.Body.String(), err)
	}
	return p
}

func TestNotFoundHandlerReturnsProblemDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	resp := httptest.NewRecorder()
	newRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != contentTypeProblemJSON {
		t.Fatalf("expected %s, got %q", contentTypeProblemJSON, ct)
	}
	link := resp.Header().Get("Link")
	if !strings.Contains(link, "/schemas/ErrorModel.json") || !strings.Contains(link, "describedBy") {
		t.Fatalf("expected schema Link header, got %q", link)
	}

	p := decodeProblem(t, resp)
	if p.Status != http.StatusNotFound || p.Title != "Not Found" || p.Detail != msgNotFound {
		t.Fatalf("unexpected problem: %+v", p)
	}
	if p.Instance != "/unknown" {
		t.Fatalf("expected instance /unknown, got %q", p.Instance)
	}
	if !strings.HasPrefix(p.Schema, "http://example.com/") {
		t.Fatalf("unexpected $schema %q", p.Schema)
	}
}

func TestMethodNotAllowedHandlerListsAllowedMethods(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/hello", nil)
	resp := httptest.NewRecorder()
	newRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); allow != http.MethodGet {
		t.Fatalf("expected Allow: GET, got %q", allow)
	}
	p := decodeProblem(t, resp)
	if p.Title != "Method Not Allowed" || !strings.Contains(p.Detail, "POST") {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestMethodNotAllowedWithMultipleMethods(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	noop := func(http.ResponseWriter, *http.Request) {}
	router.Get("/multi", noop)
	router.Put("/multi", noop)
	router.Delete("/multi", noop)

	req := httptest.NewRequest(http.MethodPatch, "/multi", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Allow"); got != "GET, PUT, DELETE" {
		t.Fatalf("expected 'GET, PUT, DELETE', got %q", got)
	}
}

func TestAllowedMethodsNilRouteContext(t *testing.T) {
	if methods := allowedMethods(httptest.NewRequest(http.MethodGet, "/x", nil)); methods != nil {
		t.Fatalf("expected nil without chi route context, got %v", methods)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string panic", "boom"},
		{"error panic", errors.New("kaput")},
		{"int panic", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter()
			router.Get("/panic", func(http.ResponseWriter, *http.Request) {
				panic(tt.value)
			})

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

			if resp.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", resp.Code)
			}
			p := decodeProblem(t, resp)
			if p.Detail != msgInternalServerErr || p.Title != "Internal Server Error" {
				t.Fatalf("unexpected problem: %+v", p)
			}
		})
	}
}

func TestRecovererRePanicsOnErrAbortHandler(t *testing.T) {
	router := newRouter()
	router.Get("/abort", func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Fatalf("expected http.ErrAbortHandler to propagate, got %v", err)
		}
	}()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	t.Fatal("expected panic to propagate")
}

func TestRecovererSkipsWriteWhenHeaderAlreadyWritten(t *testing.T) {
	router := newRouter()
	router.Get("/partial", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial response"))
		panic("late panic")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected original 200 to be preserved, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "partial response" {
		t.Fatalf("expected original body, got %q", body)
	}
}

func TestResponseWriterTracksHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}
	if rw.wroteHeader {
		t.Fatal("expected wroteHeader false initially")
	}
	if _, err := rw.Write([]byte("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rw.wroteHeader {
		t.Fatal("expected wroteHeader after Write")
	}
	if rw.Unwrap() != rec {
		t.Fatal("expected Unwrap to return the underlying writer")
	}
}

func TestNotFoundReturnsCBORWhenAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	newRouter().ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != contentTypeProblemCBOR {
		t.Fatalf("expected %s, got %q", contentTypeProblemCBOR, ct)
	}
	var p Problem
	if err := cbor.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if p.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", p.Status)
	}
}

func TestSchemaURLScheme(t *testing.T) {
	forwarded := httptest.NewRequest(http.MethodGet, "/missing", nil)
	forwarded.Host = "example.org"
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if got := schemaURL(forwarded); got != "https://example.org/schemas/ErrorModel.json" {
		t.Fatalf("unexpected schema URL %q", got)
	}

	secure := httptest.NewRequest(http.MethodGet, "https://secure.example.com/missing", nil)
	secure.TLS = &tls.ConnectionState{}
	if got := schemaURL(secure); !strings.HasPrefix(got, "https://secure.example.com/") {
		t.Fatalf("unexpected schema URL %q", got)
	}
}

func TestVaryHeaderMergesWithoutDuplicates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding, Accept")
		NotFoundHandler().ServeHTTP(w, r)
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/missing", nil))

	set := varySet(resp.Header())
	for _, want := range []string{"Accept-Encoding", "Accept", "Origin"} {
		if set[want] != 1 {
			t.Fatalf("expected %q exactly once in Vary, got %v", want, resp.Header().Values("Vary"))
		}
	}
}

func TestEnsureVaryNoValues(t *testing.T) {
	h := make(http.Header)
	ensureVary(h)
	if len(h.Values("Vary")) != 0 {
		t.Fatalf("expected no Vary header, got %v", h.Values("Vary"))
	}
}

func TestJSONProblemHasNoHTMLEscaping(t *testing.T) {
	resp := httptest.NewRecorder()
	newRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/a<b>", nil))

	body := resp.Body.String()
	if strings.Contains(body, `\u003c`) || !strings.Contains(body, `/a<b>`) {
		t.Fatalf("response should not be HTML-escaped: %s", body)
	}
	if strings.HasSuffix(body, "\n") {
		t.Fatal("expected no trailing newline")
	}
}
