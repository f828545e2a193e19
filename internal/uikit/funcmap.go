// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides the pagination window, template helpers,
// and view model types shared by the page templates.
package uikit

import (
	"html/template"
	"strings"
	"time"
)

// TemplateFuncs returns the helpers the page templates call.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatNumber": func(n int) string {
			return summaryPrinter.Sprintf("%d", n)
		},
		"isActive": IsActivePath,
	}
}

// IsActivePath reports whether a menu entry at path should be highlighted
// for the current request path. The root only matches itself.
func IsActivePath(current, path string) bool {
	if path == "/" {
		return current == "/"
	}
	return current == path || strings.HasPrefix(current, path+"/")
}
