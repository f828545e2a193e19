// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/uikit"
)

// APIHandler serves the JSON API under /api/v1.
type APIHandler struct {
	queries *store.Queries
	catalog *cache.Catalog
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(db *sql.DB, catalog *cache.Catalog) *APIHandler {
	return &APIHandler{queries: store.New(db), catalog: catalog}
}

// Navigation handles GET /api/v1/navigation for the caller's own role.
func (h *APIHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	writeNavigation(w, r, middleware.GetRole(r))
}

// NavigationForRole handles GET /api/v1/navigation/{role}. Only an exact
// role name is accepted here; the lenient fallback to ANONYMOUS applies to
// sessions, not to explicit lookups.
func (h *APIHandler) NavigationForRole(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "role")
	role := model.ParseRole(raw)
	if string(role) != strings.TrimSpace(raw) {
		middleware.WriteJSONError(w, r, http.StatusBadRequest, "unknown role")
		return
	}
	writeNavigation(w, r, role)
}

func writeNavigation(w http.ResponseWriter, r *http.Request, role model.Role) {
	middleware.WriteJSONSuccess(w, r, map[string]any{
		"role":   role,
		"routes": nav.RoutesFor(role),
		"menu":   nav.MenuFor(role),
	})
}

// Pagination handles GET /api/v1/pagination?page&per_page&total and
// returns the page window for an arbitrary listing size.
func (h *APIHandler) Pagination(w http.ResponseWriter, r *http.Request) {
	total := uikit.ParseIntParam(r, "total", -1, 0, 0)
	if total < 0 {
		middleware.WriteJSONError(w, r, http.StatusBadRequest, "total must be a non-negative integer")
		return
	}

	state := uikit.NewPageState(uikit.ParsePageParam(r), uikit.ParsePerPageParam(r), total)
	middleware.WriteJSONSuccess(w, r, paginationPayload(state, r))
}

// Books handles GET /api/v1/books?page&per_page.
func (h *APIHandler) Books(w http.ResponseWriter, r *http.Request) {
	total, err := h.catalog.BookCount(r.Context(), h.queries.CountBooks)
	if err != nil {
		slog.ErrorContext(r.Context(), "counting books", "error", err)
		middleware.WriteJSONError(w, r, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	state := uikit.NewPageState(uikit.ParsePageParam(r), uikit.ParsePerPageParam(r), total)
	books, err := h.queries.ListBooks(r.Context(), state.PageSize, state.Offset())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing books", "error", err)
		middleware.WriteJSONError(w, r, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	payload := paginationPayload(state, r)
	payload["books"] = books
	middleware.WriteJSONSuccess(w, r, payload)
}

// Policy handles GET /api/v1/policy.
func (h *APIHandler) Policy(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSONSuccess(w, r, map[string]any{"policy": model.DefaultPolicy()})
}

func paginationPayload(state uikit.PageState, r *http.Request) map[string]any {
	p := uikit.NewPagination(state, r.URL.Path, r.URL.Query())
	return map[string]any{
		"state":             state,
		"window":            p.Window,
		"has_prev":          p.HasPrev(),
		"has_next":          p.HasNext(),
		"summary":           p.Summary(),
		"page_size_options": p.SizeOptions,
	}
}
