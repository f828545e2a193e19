// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav resolves the routes and navigation menu available to each
// user role. The tables are fixed at build time and shared read-only.
package nav

import "github.com/yuliana343/biblioteca-DS-sub001/internal/model"

// RouteEntry is a navigable path with optional nested children.
// Child paths are relative to their parent; an empty child path addresses
// the parent path itself.
type RouteEntry struct {
	Path     string       `json:"path"`
	Name     string       `json:"name"`
	Icon     string       `json:"icon,omitempty"`
	Children []RouteEntry `json:"children,omitempty"`
}

// Top-level route paths.
const (
	PathHome      = "/"
	PathCatalog   = "/catalog"
	PathLogin     = "/login"
	PathLoans     = "/loans"
	PathProfile   = "/profile"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

var publicRoutes = []RouteEntry{
	{Path: PathHome, Name: "Home", Icon: "home"},
	{
		Path: PathCatalog, Name: "Catalog", Icon: "book",
		Children: []RouteEntry{
			{Path: "", Name: "All Books"},
			{Path: "{id}", Name: "Book Details"},
		},
	},
	{Path: PathLogin, Name: "Login", Icon: "login"},
}

var userRoutes = []RouteEntry{
	{
		Path: PathLoans, Name: "My Loans", Icon: "bookmark",
		Children: []RouteEntry{
			{Path: "active", Name: "Active"},
			{Path: "history", Name: "History"},
		},
	},
	{Path: PathProfile, Name: "My Profile", Icon: "user"},
}

var librarianRoutes = concat(userRoutes, []RouteEntry{
	{Path: PathDashboard, Name: "Dashboard", Icon: "dashboard"},
})

var adminRoutes = concat(librarianRoutes, []RouteEntry{
	{
		Path: PathAdmin, Name: "Administration", Icon: "settings",
		Children: []RouteEntry{
			{Path: "dashboard", Name: "Dashboard"},
			{Path: "users", Name: "Users"},
			{Path: "reports", Name: "Reports"},
			{Path: "statistics", Name: "Statistics"},
		},
	},
})

// routeTable holds publicRoutes ++ role routes for every role.
var routeTable = map[model.Role][]RouteEntry{
	model.RoleAnonymous: concat(publicRoutes),
	model.RoleUser:      concat(publicRoutes, userRoutes),
	model.RoleLibrarian: concat(publicRoutes, librarianRoutes),
	model.RoleAdmin:     concat(publicRoutes, adminRoutes),
}

// RoutesFor returns the ordered routes accessible to role: the public
// routes first, then the role's own. Unrecognized roles get the public
// routes only. The result is a copy and may be modified by the caller.
func RoutesFor(role model.Role) []RouteEntry {
	routes, ok := routeTable[role]
	if !ok {
		routes = routeTable[model.RoleAnonymous]
	}
	return cloneRoutes(routes)
}

func concat(sets ...[]RouteEntry) []RouteEntry {
	var out []RouteEntry
	for _, s := range sets {
		out = append(out, cloneRoutes(s)...)
	}
	return out
}

func cloneRoutes(routes []RouteEntry) []RouteEntry {
	if routes == nil {
		return nil
	}
	out := make([]RouteEntry, len(routes))
	for i, r := range routes {
		out[i] = RouteEntry{
			Path:     r.Path,
			Name:     r.Name,
			Icon:     r.Icon,
			Children: cloneRoutes(r.Children),
		}
	}
	return out
}
