package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRoutes(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	s.AppendRoute("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteResponse(w, map[string]string{"status": "ok"})
	}, http.MethodGet)

	inner := http.NewServeMux()
	inner.HandleFunc("/hooks/phoenixd", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	})
	s.PathPrefix("/hooks/", inner)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{"route", http.MethodGet, "/healthz", "", http.StatusOK, `{"status":"ok"}`},
		{"wrong method", http.MethodPost, "/healthz", "", http.StatusMethodNotAllowed, ""},
		{"prefix keeps body", http.MethodPost, "/hooks/phoenixd", `{"a":1}`, http.StatusOK, `{"a":1}`},
		{"unknown", http.MethodGet, "/nope", "", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestShutdown(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()

	// give the listener a moment to start
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}
