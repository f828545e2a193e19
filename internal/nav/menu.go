// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import "github.com/yuliana343/biblioteca-DS-sub001/internal/model"

// MenuEntry is a flat shortcut in the navigation menu.
type MenuEntry struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Menus are curated per role and kept in step with the route tables by
// hand; CheckConsistency verifies every entry is reachable.
var menuTable = map[model.Role][]MenuEntry{
	model.RoleAnonymous: {
		{Path: PathHome, Name: "Home", Icon: "home"},
		{Path: PathCatalog, Name: "Catalog", Icon: "book"},
		{Path: PathLogin, Name: "Login", Icon: "login"},
	},
	model.RoleUser: {
		{Path: PathHome, Name: "Home", Icon: "home"},
		{Path: PathCatalog, Name: "Catalog", Icon: "book"},
		{Path: PathLoans, Name: "My Loans", Icon: "bookmark"},
		{Path: PathProfile, Name: "My Profile", Icon: "user"},
	},
	model.RoleLibrarian: {
		{Path: PathHome, Name: "Home", Icon: "home"},
		{Path: PathCatalog, Name: "Catalog", Icon: "book"},
		{Path: PathDashboard, Name: "Dashboard", Icon: "dashboard"},
		{Path: PathLoans, Name: "Loans", Icon: "bookmark"},
		{Path: PathProfile, Name: "Profile", Icon: "user"},
	},
	model.RoleAdmin: {
		{Path: PathHome, Name: "Home", Icon: "home"},
		{Path: PathCatalog, Name: "Catalog", Icon: "book"},
		{Path: PathAdmin + "/dashboard", Name: "Dashboard", Icon: "dashboard"},
		{Path: PathAdmin + "/users", Name: "Users", Icon: "users"},
		{Path: PathAdmin + "/reports", Name: "Reports", Icon: "chart"},
		{Path: PathAdmin + "/statistics", Name: "Statistics", Icon: "stats"},
		{Path: PathLoans, Name: "Loans", Icon: "bookmark"},
		{Path: PathProfile, Name: "Profile", Icon: "user"},
	},
}

// MenuFor returns the navigation menu for role. Unrecognized roles get
// the anonymous menu. The result is a copy.
func MenuFor(role model.Role) []MenuEntry {
	menu, ok := menuTable[role]
	if !ok {
		menu = menuTable[model.RoleAnonymous]
	}
	out := make([]MenuEntry, len(menu))
	copy(out, menu)
	return out
}
