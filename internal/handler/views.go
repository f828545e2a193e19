// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"io/fs"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/uikit"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
)

const (
	pathBookDetails    = nav.PathCatalog + "/{id}"
	pathAdminDashboard = nav.PathAdmin + "/dashboard"

	baseLayout      = "layouts/base.html"
	sectionTemplate = "section.html"
)

// pageTemplates maps route patterns to their page template. Routes not
// listed render as a section listing their child routes.
var pageTemplates = map[string]string{
	nav.PathHome:       "home.html",
	nav.PathCatalog:    "catalog.html",
	pathBookDetails:    "book.html",
	nav.PathLogin:      "login.html",
	nav.PathProfile:    "profile.html",
	nav.PathDashboard:  "dashboard.html",
	pathAdminDashboard: "dashboard.html",
}

// PageRoutes returns every route pattern served as a page: the routes of
// the most privileged role, which include the public ones.
func PageRoutes() []string {
	flat := nav.Flatten(nav.RoutesFor(model.RoleAdmin))
	keys := make([]string, len(flat))
	for i, r := range flat {
		keys[i] = r.Path
	}
	return keys
}

// RegisterViews registers a lazily parsed view for every page route.
// fsys is rooted at the templates directory.
func RegisterViews(reg *view.Registry, fsys fs.FS) error {
	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return fmt.Errorf("listing partials: %w", err)
	}
	funcs := uikit.TemplateFuncs()

	for _, key := range PageRoutes() {
		page, ok := pageTemplates[key]
		if !ok {
			page = sectionTemplate
		}
		files := append([]string{baseLayout}, partials...)
		files = append(files, "pages/"+page)

		if err := reg.Register(key, view.TemplateFactory(fsys, funcs, "base", files...)); err != nil {
			return err
		}
	}
	return nil
}
