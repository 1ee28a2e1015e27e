package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "hello")
})

func assertCORS(t *testing.T, h http.Header) {
	t.Helper()

	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PATCH, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Errorf("%s = %q; want %q", k, got, v)
		}
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		status  int
		body    string
	}{
		{name: "plain get", method: http.MethodGet, status: http.StatusOK, body: "hello"},
		{name: "browser get", method: http.MethodGet, headers: map[string]string{"Origin": "http://example.com"}, status: http.StatusOK, body: "hello"},
		{name: "bare options", method: http.MethodOptions, status: http.StatusNoContent},
		{
			name:   "preflight",
			method: http.MethodOptions,
			headers: map[string]string{
				"Origin":                         "http://example.com",
				"Access-Control-Request-Method":  "PATCH",
				"Access-Control-Request-Headers": "Content-Type",
			},
			status: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				ok(w, r)
			})

			req := httptest.NewRequest(tt.method, "/api/todos", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			CORS(next).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d; want %d", rec.Code, tt.status)
			}
			if got := rec.Body.String(); got != tt.body {
				t.Fatalf("body = %q; want %q", got, tt.body)
			}
			if reached != (tt.method != http.MethodOptions) {
				t.Fatalf("next reached = %v for %s", reached, tt.method)
			}
			assertCORS(t, rec.Header())
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if len(generated) != 36 || seen != generated {
		t.Fatalf("generated id %q, context id %q", generated, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" || seen != "abc-123" {
		t.Fatalf("propagated id = %q (context %q); want abc-123", got, seen)
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went badly wrong")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", rec.Code)
	}
	var env struct{ Error string }
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Error != "Internal server error" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "something went badly wrong") {
		t.Fatalf("panic not logged: %s", logs.String())
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	h := Chain(ok, RequestID, AccessLog(logger))

	req := httptest.NewRequest(http.MethodPost, "/api/todos", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry struct {
		Msg       string `json:"msg"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
		Bytes     int    `json:"bytes"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q: %v", logs.String(), err)
	}
	if entry.Msg != "request" || entry.Method != "POST" || entry.Path != "/api/todos" ||
		entry.Status != 200 || entry.Bytes != 5 || entry.RequestID != "req-1" {
		t.Fatalf("log entry = %+v", entry)
	}
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	Chain(ok, mark("a"), mark("b"), mark("c")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "a,b,c" {
		t.Fatalf("order = %s; want a,b,c", got)
	}
}
