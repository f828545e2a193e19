// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/logging"
)

func TestRequestContext(t *testing.T) {
	var gotID string
	var attrs int
	h := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
		attrs = len(logging.Attrs(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	if _, err := uuid.Parse(gotID); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", gotID, err)
	}
	if rec.Header().Get(HeaderRequestID) != gotID {
		t.Errorf("response header = %q, want %q", rec.Header().Get(HeaderRequestID), gotID)
	}
	if attrs != 3 {
		t.Errorf("logging attrs = %d, want 3", attrs)
	}
}

func TestRequestContextKeepsValidIncomingID(t *testing.T) {
	incoming := uuid.NewString()
	var gotID string
	h := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != incoming {
		t.Errorf("request id = %q, want %q", gotID, incoming)
	}
}

func TestRequestContextReplacesInvalidID(t *testing.T) {
	var gotID string
	h := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotID == "<script>" || gotID == "" {
		t.Errorf("request id = %q, want a generated uuid", gotID)
	}
}

func TestGetRequestIDOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelInfo, true))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := RequestContext(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decoding log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "request" {
		t.Errorf("msg = %v, want request", entry["msg"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want 418", entry["status"])
	}
	if entry["path"] != "/catalog" {
		t.Errorf("path = %v, want /catalog (from request context)", entry["path"])
	}
	if entry["bytes"] != float64(3) {
		t.Errorf("bytes = %v, want 3", entry["bytes"])
	}
	if entry["client"] != "unknown" {
		t.Errorf("client = %v, want unknown for an empty user agent", entry["client"])
	}
}

func TestClientKind(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"empty", "", "unknown"},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "bot"},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "mobile"},
		{"desktop chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clientKind(tt.ua); got != tt.want {
				t.Errorf("clientKind(%q) = %q, want %q", tt.ua, got, tt.want)
			}
		})
	}
}
