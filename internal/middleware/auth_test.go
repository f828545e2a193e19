// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(method, path string, role model.Role) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	p := Principal{Role: role}
	if role.IsAuthenticated() {
		p.UserID = 1
	}
	return req.WithContext(WithPrincipal(req.Context(), p))
}

func TestGetPrincipalWithoutLoadRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRole(req); got != model.RoleAnonymous {
		t.Errorf("GetRole() = %q, want ANONYMOUS", got)
	}
	if got := GetPrincipal(req).UserID; got != 0 {
		t.Errorf("UserID = %d, want 0", got)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       model.Role
		minRole    model.Role
		wantStatus int
	}{
		{"admin passes librarian", model.RoleAdmin, model.RoleLibrarian, http.StatusOK},
		{"librarian passes librarian", model.RoleLibrarian, model.RoleLibrarian, http.StatusOK},
		{"user blocked from librarian", model.RoleUser, model.RoleLibrarian, http.StatusForbidden},
		{"user passes user", model.RoleUser, model.RoleUser, http.StatusOK},
		{"anonymous redirected", model.RoleAnonymous, model.RoleUser, http.StatusSeeOther},
		{"anonymous passes anonymous", model.RoleAnonymous, model.RoleAnonymous, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.minRole)(okHandler())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestAs(http.MethodGet, "/dashboard", tt.role))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != LoginPath {
					t.Errorf("Location = %q, want %q", loc, LoginPath)
				}
			}
		})
	}
}

func TestRequireRoleAPIErrors(t *testing.T) {
	h := RequireRole(model.RoleAdmin)(okHandler())

	tests := []struct {
		role       model.Role
		wantStatus int
	}{
		{model.RoleAnonymous, http.StatusUnauthorized},
		{model.RoleLibrarian, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/navigation/USER", tt.role))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["status"] != float64(tt.wantStatus) {
				t.Errorf("status field = %v, want %d", body["status"], tt.wantStatus)
			}
		})
	}
}

func TestRequireRoute(t *testing.T) {
	tests := []struct {
		role       model.Role
		path       string
		wantStatus int
	}{
		{model.RoleAnonymous, "/", http.StatusOK},
		{model.RoleAnonymous, "/catalog/42", http.StatusOK},
		{model.RoleAnonymous, "/loans", http.StatusSeeOther},
		{model.RoleUser, "/loans/history", http.StatusOK},
		{model.RoleUser, "/dashboard", http.StatusForbidden},
		{model.RoleLibrarian, "/dashboard", http.StatusOK},
		{model.RoleLibrarian, "/admin/users", http.StatusForbidden},
		{model.RoleAdmin, "/admin/users", http.StatusOK},
		{model.RoleAdmin, "/admin/unknown", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireRoute(okHandler()).ServeHTTP(rec, requestAs(http.MethodGet, tt.path, tt.role))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestLoadRole(t *testing.T) {
	sm := scs.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		sm.Put(r.Context(), session.KeyUserID, id)
		sm.Put(r.Context(), session.KeyRole, r.URL.Query().Get("role"))
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r)
		_, _ = w.Write([]byte(string(p.Role) + ":" + strconv.FormatInt(p.UserID, 10)))
	})
	h := sm.LoadAndSave(LoadRole(sm)(mux))

	whoami := func(cookies []*http.Cookie) string {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Body.String()
	}
	signin := func(query string) []*http.Cookie {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signin?"+query, nil))
		return rec.Result().Cookies()
	}

	if got := whoami(nil); got != "ANONYMOUS:0" {
		t.Errorf("no session = %q, want ANONYMOUS:0", got)
	}
	if got := whoami(signin("id=7&role=LIBRARIAN")); got != "LIBRARIAN:7" {
		t.Errorf("librarian session = %q, want LIBRARIAN:7", got)
	}
	if got := whoami(signin("id=8&role=superuser")); got != "ANONYMOUS:8" {
		t.Errorf("unknown role = %q, want ANONYMOUS:8", got)
	}
	if got := whoami(signin("id=0&role=ADMIN")); got != "ANONYMOUS:0" {
		t.Errorf("role without user = %q, want ANONYMOUS:0", got)
	}
}
