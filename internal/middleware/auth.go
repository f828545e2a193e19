// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/logging"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/session"
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// Principal identifies who is making the request.
type Principal struct {
	UserID int64
	Role   model.Role
}

// LoadRole creates middleware that reads the signed-in user's id and role
// from the session. Requests without a session get RoleAnonymous.
func LoadRole(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := Principal{Role: model.RoleAnonymous}
			if id := sm.GetInt64(r.Context(), session.KeyUserID); id != 0 {
				p.UserID = id
				p.Role = model.ParseRole(sm.GetString(r.Context(), session.KeyRole))
			}

			ctx := WithPrincipal(r.Context(), p)
			ctx = logging.WithAttrs(ctx, slog.String("role", p.Role.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal stores p on ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ContextKeyPrincipal, p)
}

// GetPrincipal returns the request's principal. Without LoadRole it is
// an anonymous principal.
func GetPrincipal(r *http.Request) Principal {
	p, ok := r.Context().Value(ContextKeyPrincipal).(Principal)
	if !ok {
		return Principal{Role: model.RoleAnonymous}
	}
	return p
}

// GetRole returns the request's role.
func GetRole(r *http.Request) model.Role {
	return GetPrincipal(r).Role
}

// RequireRole creates middleware that requires a minimum role.
// Roles are hierarchical: ADMIN > LIBRARIAN > USER > ANONYMOUS.
func RequireRole(minRole model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r)
			if !role.AtLeast(minRole) {
				deny(w, r, role, string(minRole))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoute creates middleware that only admits requests whose path is
// one of the routes available to the caller's role.
func RequireRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := GetRole(r)
		if !nav.CanAccess(role, r.URL.Path) {
			deny(w, r, role, "route")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// deny redirects anonymous users to the login page and answers 403 to
// signed-in users lacking permission. API paths get JSON errors instead.
func deny(w http.ResponseWriter, r *http.Request, role model.Role, required string) {
	api := strings.HasPrefix(r.URL.Path, "/api/")
	if !role.IsAuthenticated() {
		if api {
			WriteJSONError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	slog.WarnContext(r.Context(), "access denied",
		"status", http.StatusForbidden,
		"user_id", GetPrincipal(r).UserID,
		"required", required,
		"remote_addr", r.RemoteAddr,
	)
	if api {
		WriteJSONError(w, r, http.StatusForbidden, "insufficient permissions")
		return
	}
	http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
}
