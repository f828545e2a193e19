// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// TemplateView renders a named template from a parsed set.
type TemplateView struct {
	tmpl *template.Template
	name string
}

// Render executes the view's entry template.
func (v *TemplateView) Render(w io.Writer, data any) error {
	return v.tmpl.ExecuteTemplate(w, v.name, data)
}

// TemplateFactory returns a Factory that parses files from fsys on first
// use and renders the template called entry.
func TemplateFactory(fsys fs.FS, funcs template.FuncMap, entry string, files ...string) Factory {
	return func(_ context.Context) (View, error) {
		tmpl, err := template.New("").Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing templates %v: %w", files, err)
		}
		if tmpl.Lookup(entry) == nil {
			return nil, fmt.Errorf("template %q not defined in %v", entry, files)
		}
		return &TemplateView{tmpl: tmpl, name: entry}, nil
	}
}
