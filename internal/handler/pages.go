// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/render"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/uikit"
)

// PageHandler renders the HTML pages of the navigation routes.
type PageHandler struct {
	queries  *store.Queries
	catalog  *cache.Catalog
	renderer *render.Renderer
	siteName string
	version  string
	now      func() time.Time
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(db *sql.DB, catalog *cache.Catalog, renderer *render.Renderer, siteName, version string) *PageHandler {
	return &PageHandler{
		queries:  store.New(db),
		catalog:  catalog,
		renderer: renderer,
		siteName: siteName,
		version:  version,
		now:      time.Now,
	}
}

// CatalogData is the catalog page model.
type CatalogData struct {
	Books      []model.Book
	Pagination uikit.Pagination
}

// BookData is the book details page model.
type BookData struct {
	Book        model.Book
	Description template.HTML
}

// ProfileData is the profile page model.
type ProfileData struct {
	User model.User
}

// DashboardData is the staff dashboard page model.
type DashboardData struct {
	TotalBooks int
	Policy     model.Policy
}

// SectionData lists the sub-pages of a section.
type SectionData struct {
	Children []nav.FlatRoute
}

// Page handles GET for every page route. The route pattern matching the
// request path selects both the view and the page model.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetRole(r)
	route, ok := nav.Lookup(role, r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := h.templateData(r, route)

	var err error
	switch route.Path {
	case nav.PathCatalog:
		data.Data, err = h.catalogData(r)
	case pathBookDetails:
		var book BookData
		book, err = h.bookData(r)
		data.Data = book
		data.Title = book.Book.Title
	case nav.PathProfile:
		data.Data, err = h.profileData(r)
	case nav.PathDashboard, pathAdminDashboard:
		data.Data, err = h.dashboardData(r)
	default:
		data.Data = SectionData{Children: nav.Children(role, route.Path)}
	}

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, strconv.ErrSyntax), errors.Is(err, strconv.ErrRange):
		http.NotFound(w, r)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "loading page data", "route", route.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, route.Path, data)
}

// templateData fills the page chrome shared by every view.
func (h *PageHandler) templateData(r *http.Request, route nav.FlatRoute) render.TemplateData {
	role := middleware.GetRole(r)
	return render.TemplateData{
		Title:       route.Name,
		Path:        r.URL.Path,
		Role:        role,
		Menu:        nav.MenuFor(role),
		Breadcrumbs: breadcrumbs(role, r.URL.Path),
		Footer:      uikit.NewFooter(h.siteName, h.version, h.now()),
	}
}

// render writes a view and turns a failing view into a 500 for this
// route only.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, key string, data render.TemplateData) {
	if err := h.renderer.RenderStatus(w, r, status, key, data); err != nil {
		slog.ErrorContext(r.Context(), "rendering view", "view", key, "error", err)
		http.Error(w, "This page is temporarily unavailable", http.StatusInternalServerError)
	}
}

func breadcrumbs(role model.Role, path string) []uikit.Breadcrumb {
	trail := nav.Trail(role, path)
	crumbs := make([]uikit.Crumb, 0, len(trail)+1)
	if len(trail) > 0 && trail[0].Path != nav.PathHome {
		crumbs = append(crumbs, uikit.Crumb{Label: "Home", URL: nav.PathHome})
	}
	for _, t := range trail {
		crumbs = append(crumbs, uikit.Crumb{Label: t.Name, URL: t.Path})
	}
	return uikit.BuildBreadcrumbs(crumbs)
}

func (h *PageHandler) catalogData(r *http.Request) (CatalogData, error) {
	total, err := h.catalog.BookCount(r.Context(), h.queries.CountBooks)
	if err != nil {
		return CatalogData{}, err
	}

	state := uikit.NewPageState(uikit.ParsePageParam(r), uikit.ParsePerPageParam(r), total)
	books, err := h.queries.ListBooks(r.Context(), state.PageSize, state.Offset())
	if err != nil {
		return CatalogData{}, err
	}

	return CatalogData{
		Books:      books,
		Pagination: uikit.NewPagination(state, nav.PathCatalog, r.URL.Query()),
	}, nil
}

func (h *PageHandler) bookData(r *http.Request) (BookData, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return BookData{}, err
	}

	book, err := h.queries.GetBook(r.Context(), id)
	if err != nil {
		return BookData{}, err
	}

	desc, err := render.Markdown(book.Description)
	if err != nil {
		return BookData{}, err
	}
	return BookData{Book: book, Description: desc}, nil
}

func (h *PageHandler) profileData(r *http.Request) (ProfileData, error) {
	user, err := h.queries.GetUserByID(r.Context(), middleware.GetPrincipal(r).UserID)
	if err != nil {
		return ProfileData{}, err
	}
	return ProfileData{User: user}, nil
}

func (h *PageHandler) dashboardData(r *http.Request) (DashboardData, error) {
	total, err := h.catalog.BookCount(r.Context(), h.queries.CountBooks)
	if err != nil {
		return DashboardData{}, err
	}
	return DashboardData{TotalBooks: total, Policy: model.DefaultPolicy()}, nil
}
