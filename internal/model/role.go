// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared across the application:
// user roles, library users and books, and the lending policy constants.
package model

import "strings"

// Role is the access-level classification of the current user.
type Role string

// Recognized roles. RoleAnonymous is also the fallback for any
// unrecognized or missing value.
const (
	RoleAdmin     Role = "ADMIN"
	RoleLibrarian Role = "LIBRARIAN"
	RoleUser      Role = "USER"
	RoleAnonymous Role = "ANONYMOUS"
)

// Roles lists all roles from least to most privileged.
var Roles = []Role{RoleAnonymous, RoleUser, RoleLibrarian, RoleAdmin}

// ParseRole maps a raw role identifier to a Role.
// Matching is exact after trimming whitespace; anything else fails closed
// to RoleAnonymous.
func ParseRole(s string) Role {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdmin, RoleLibrarian, RoleUser:
		return r
	default:
		return RoleAnonymous
	}
}

// Level returns the position of the role in the hierarchy.
// Higher level = more permissions.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleLibrarian:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// IsAuthenticated reports whether the role belongs to a signed-in user.
func (r Role) IsAuthenticated() bool {
	return r.Level() > 0
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
