// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	Label  string
	URL    string
	Active bool
}

// Crumb is a label/URL pair used to build a breadcrumb trail.
type Crumb struct {
	Label string
	URL   string
}

// BuildBreadcrumbs converts an ordered trail into breadcrumbs.
// The last item is the active one and carries no link.
func BuildBreadcrumbs(trail []Crumb) []Breadcrumb {
	if len(trail) == 0 {
		return nil
	}
	out := make([]Breadcrumb, len(trail))
	for i, c := range trail {
		out[i] = Breadcrumb{Label: c.Label, URL: c.URL}
	}
	last := &out[len(out)-1]
	last.Active = true
	last.URL = ""
	return out
}
