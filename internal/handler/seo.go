// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/seo"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
)

// maxSitemapURLs is the per-file limit of the sitemap protocol.
const maxSitemapURLs = 50000

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	queries *store.Queries
	catalog *cache.Catalog
	siteURL string
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request.
func NewSEOHandler(db *sql.DB, catalog *cache.Catalog, siteURL string) *SEOHandler {
	return &SEOHandler{
		queries: store.New(db),
		catalog: catalog,
		siteURL: strings.TrimSuffix(siteURL, "/"),
	}
}

// Robots handles GET /robots.txt. Every top-level section an anonymous
// visitor cannot reach is disallowed.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:       h.baseURL(r),
		DisallowPaths: privateSections(),
	})))
}

// Sitemap handles GET /sitemap.xml: the public routes plus every book.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.baseURL(r))
	for _, route := range nav.Flatten(nav.RoutesFor(model.RoleAnonymous)) {
		if route.Path == nav.PathLogin || strings.Contains(route.Path, "{") {
			continue
		}
		priority := "0.8"
		if route.Path == nav.PathHome {
			priority = "1.0"
		}
		b.Add(route.Path, time.Time{}, seo.ChangeFreqDaily, priority)
	}

	total, err := h.catalog.BookCount(r.Context(), h.queries.CountBooks)
	if err != nil {
		slog.ErrorContext(r.Context(), "counting books for sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if limit := min(total, maxSitemapURLs-b.Len()); limit > 0 {
		books, err := h.queries.ListBooks(r.Context(), limit, 0)
		if err != nil {
			slog.ErrorContext(r.Context(), "listing books for sitemap", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		for _, book := range books {
			b.Add(nav.PathCatalog+"/"+strconv.FormatInt(book.ID, 10), book.CreatedAt, seo.ChangeFreqMonthly, "0.6")
		}
	}

	out, err := b.Build()
	if err != nil {
		slog.ErrorContext(r.Context(), "building sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// privateSections lists the top-level routes closed to anonymous visitors.
func privateSections() []string {
	var paths []string
	for _, route := range nav.Flatten(nav.RoutesFor(model.RoleAdmin)) {
		if route.Depth == 0 && !nav.CanAccess(model.RoleAnonymous, route.Path) {
			paths = append(paths, route.Path)
		}
	}
	return paths
}
