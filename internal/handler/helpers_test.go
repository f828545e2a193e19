// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/scheduler"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/version"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
	"github.com/yuliana343/biblioteca-DS-sub001/web"
)

// testServer is a fully wired router over a seeded temp database.
type testServer struct {
	handler http.Handler
	db      *sql.DB
}

type testServerOption func(*RouterConfig)

func withTemplates(fsys fs.FS) testServerOption {
	return func(cfg *RouterConfig) {
		reg := view.NewRegistry(nil)
		if err := RegisterViews(reg, fsys); err != nil {
			panic(err)
		}
		cfg.Views = reg
	}
}

func withScheduler(s *scheduler.Scheduler) testServerOption {
	return func(cfg *RouterConfig) { cfg.Scheduler = s }
}

func withLoginProtection(lp *middleware.LoginProtection) testServerOption {
	return func(cfg *RouterConfig) { cfg.LoginProtection = lp }
}

func testTemplates(t *testing.T) fs.FS {
	t.Helper()
	fsys, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	return fsys
}

func newTestServer(t *testing.T, opts ...testServerOption) *testServer {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := store.Seed(context.Background(), db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	reg := view.NewRegistry(nil)
	if err := RegisterViews(reg, testTemplates(t)); err != nil {
		t.Fatalf("RegisterViews: %v", err)
	}

	cfg := RouterConfig{
		DB:       db,
		Sessions: scs.New(),
		Views:    reg,
		LoginProtection: middleware.NewLoginProtection(middleware.LoginProtectionConfig{
			IPRateLimit: 100,
			IPBurst:     100,
		}),
		APILimiter: middleware.NewIPRateLimiter(100, 100),
		CSRF:       middleware.DefaultCSRFConfig([]byte("12345678901234567890123456789012"), false),
		SiteName:   "Test Library",
		Version:    version.Info{Version: "v0.0.0-test"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{handler: NewRouter(cfg), db: db}
}

// do sends a request carrying cookies. A non-nil form makes it a form POST.
func (s *testServer) do(method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return s.send(newFormRequest(method, path, form), cookies)
}

func (s *testServer) doWithHeader(method, path string, form url.Values, key, value string) *httptest.ResponseRecorder {
	req := newFormRequest(method, path, form)
	req.Header.Set(key, value)
	return s.send(req, nil)
}

func newFormRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req
}

func (s *testServer) send(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return s.do(http.MethodGet, path, nil, cookies)
}

// login signs in a seeded account and returns its session cookies.
func (s *testServer) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := s.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {store.DefaultPassword},
	}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login %s: no session cookie", email)
	}
	return cookies
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	return body
}
