// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render writes page views and converts user markdown to safe HTML.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/uikit"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
)

// Session keys for flash messages.
const (
	keyFlash     = "flash"
	keyFlashType = "flash_type"
)

// Renderer renders registry views into HTTP responses.
type Renderer struct {
	views          *view.Registry
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// Config holds renderer configuration.
type Config struct {
	Views          *view.Registry
	SessionManager *scs.SessionManager
	Logger         *slog.Logger
}

// New creates a Renderer.
func New(cfg Config) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		views:          cfg.Views,
		sessionManager: cfg.SessionManager,
		logger:         logger,
	}
}

// TemplateData holds data passed to page templates.
type TemplateData struct {
	Title       string
	Path        string
	Role        model.Role
	Menu        []nav.MenuEntry
	Breadcrumbs []uikit.Breadcrumb
	Footer      uikit.Footer
	Flash       string
	FlashType   string
	Data        any
}

// Render writes the view registered under key with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, key string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, key, data)
}

// RenderStatus writes the view registered under key. The view is rendered
// to a buffer first, so a failing view leaves the response untouched.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, key string, data TemplateData) error {
	v, err := r.views.Resolve(req.Context(), key)
	if err != nil {
		return err
	}

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), keyFlash); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), keyFlashType)
			if data.FlashType == "" {
				data.FlashType = "info"
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := v.Render(buf, data); err != nil {
		return fmt.Errorf("executing view %s: %w", key, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.DebugContext(req.Context(), "writing response", "view", key, "error", err)
	}
	return nil
}

// SetFlash stores a message shown on the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), keyFlash, message)
		r.sessionManager.Put(req.Context(), keyFlashType, flashType)
	}
}
