// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
)

// FlatRoute is a route addressed by its full path.
type FlatRoute struct {
	Path  string // full path, e.g. "/catalog/{id}"
	Name  string
	Icon  string
	Depth int
}

// Flatten lists every distinct full path in routes, depth-first with
// parents before their children. A child with an empty path resolves to
// its parent's path and is not listed twice.
func Flatten(routes []RouteEntry) []FlatRoute {
	var out []FlatRoute
	seen := make(map[string]bool)
	var walk func(entries []RouteEntry, parent string, depth int)
	walk = func(entries []RouteEntry, parent string, depth int) {
		for _, e := range entries {
			full := JoinPath(parent, e.Path)
			if !seen[full] {
				seen[full] = true
				out = append(out, FlatRoute{Path: full, Name: e.Name, Icon: e.Icon, Depth: depth})
			}
			walk(e.Children, full, depth+1)
		}
	}
	walk(routes, "", 0)
	return out
}

// JoinPath joins a child route path onto its parent.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "/"):
		return child
	default:
		return strings.TrimSuffix(parent, "/") + "/" + child
	}
}

// MatchPath reports whether a request path matches a route pattern.
// Pattern segments of the form {name} match any single non-empty segment.
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	rs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(rs) {
		return false
	}
	for i := range ps {
		if isParam(ps[i]) {
			if rs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != rs[i] {
			return false
		}
	}
	return true
}

func isParam(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}

// CanAccess reports whether path is one of the routes available to role.
func CanAccess(role model.Role, path string) bool {
	for _, r := range Flatten(RoutesFor(role)) {
		if MatchPath(r.Path, path) {
			return true
		}
	}
	return false
}

// Lookup returns the route pattern matching path for role.
func Lookup(role model.Role, path string) (FlatRoute, bool) {
	for _, r := range Flatten(RoutesFor(role)) {
		if MatchPath(r.Path, path) {
			return r, true
		}
	}
	return FlatRoute{}, false
}

// Trail returns the chain of routes from the top level down to the route
// matching path, or nil when role cannot reach path.
func Trail(role model.Role, path string) []FlatRoute {
	var trail []FlatRoute
	var walk func(entries []RouteEntry, parent string, depth int) bool
	walk = func(entries []RouteEntry, parent string, depth int) bool {
		for _, e := range entries {
			full := JoinPath(parent, e.Path)
			trail = append(trail, FlatRoute{Path: full, Name: e.Name, Icon: e.Icon, Depth: depth})
			if MatchPath(full, path) {
				return true
			}
			if walk(e.Children, full, depth+1) {
				return true
			}
			trail = trail[:len(trail)-1]
		}
		return false
	}
	if !walk(RoutesFor(role), "", 0) {
		return nil
	}
	return trail
}

// CheckConsistency verifies that every menu entry of every role points at
// a route that role can reach.
func CheckConsistency() error {
	var errs []error
	for _, role := range model.Roles {
		for _, m := range MenuFor(role) {
			if !CanAccess(role, m.Path) {
				errs = append(errs, fmt.Errorf("menu entry %q (%s) is not a route for role %s", m.Name, m.Path, role))
			}
		}
	}
	return errors.Join(errs...)
}

// Children returns the direct child routes of the route matching path,
// skipping parameterized ones since they cannot be linked directly.
func Children(role model.Role, path string) []FlatRoute {
	trail := Trail(role, path)
	if len(trail) == 0 {
		return nil
	}
	entries := RoutesFor(role)
	var parent string
	for _, step := range trail {
		for _, e := range entries {
			if JoinPath(parent, e.Path) == step.Path {
				entries = e.Children
				break
			}
		}
		parent = step.Path
	}

	var out []FlatRoute
	for _, e := range entries {
		full := JoinPath(parent, e.Path)
		if full == parent || strings.Contains(full, "{") {
			continue
		}
		out = append(out, FlatRoute{Path: full, Name: e.Name, Icon: e.Icon, Depth: len(trail)})
	}
	return out
}
