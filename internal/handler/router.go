// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers and route wiring.
package handler

import (
	"database/sql"
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/render"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/scheduler"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/version"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	DB              *sql.DB
	Cache           cache.Cacher // nil uses an in-process cache
	Sessions        *scs.SessionManager
	Views           *view.Registry
	LoginProtection *middleware.LoginProtection
	APILimiter      *middleware.IPRateLimiter
	Scheduler       *scheduler.Scheduler // optional, listed on admin health
	CSRF            middleware.CSRFConfig
	Static          fs.FS // rooted at the static directory; nil disables /static
	SiteName        string
	SiteURL         string // absolute base for robots.txt and sitemap.xml; empty derives it per request
	Version         version.Info
}

// NewRouter wires every route. Page routes are generated from the
// navigation tables so a route exists exactly when some role can reach it.
func NewRouter(cfg RouterConfig) http.Handler {
	renderer := render.New(render.Config{
		Views:          cfg.Views,
		SessionManager: cfg.Sessions,
	})
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemoryCache(cache.DefaultCatalogTTL, 0)
	}
	catalog := cache.NewCatalog(cfg.Cache, 0)

	pages := NewPageHandler(cfg.DB, catalog, renderer, cfg.SiteName, cfg.Version.Version)
	authHandler := NewAuthHandler(pages, cfg.Sessions, cfg.LoginProtection)
	api := NewAPIHandler(cfg.DB, catalog)
	seoHandler := NewSEOHandler(cfg.DB, catalog, cfg.SiteURL)
	health := NewHealthHandler(cfg.DB, cfg.Cache, cfg.Scheduler, cfg.Views, cfg.Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.RedirectSlashes)
	r.Use(cfg.Sessions.LoadAndSave)
	r.Use(middleware.LoadRole(cfg.Sessions))
	r.Use(middleware.CSRF(cfg.CSRF))

	if cfg.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(cfg.Static)))
	}

	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.APILimiter != nil {
			r.Use(cfg.APILimiter.Middleware)
		}
		r.Get("/navigation", api.Navigation)
		r.With(middleware.RequireRole(model.RoleAdmin)).Get("/navigation/{role}", api.NavigationForRole)
		r.Get("/pagination", api.Pagination)
		r.Get("/books", api.Books)
		r.Get("/policy", api.Policy)
	})

	r.Get(nav.PathLogin, authHandler.LoginForm)
	r.With(cfg.LoginProtection.Middleware).Post(nav.PathLogin, authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRoute)
		for _, pattern := range PageRoutes() {
			if pattern == nav.PathLogin {
				continue
			}
			r.Get(pattern, pages.Page)
		}
	})

	return r
}
