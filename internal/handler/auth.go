// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/auth"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/nav"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/session"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/store"
)

// LoginData is the login page model.
type LoginData struct {
	Email string
	Error string
}

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	pages           *PageHandler
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. It renders through pages so
// the login form gets the same chrome as every other page.
func NewAuthHandler(pages *PageHandler, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		pages:           pages,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm handles GET /login. Signed-in users go to the home page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetRole(r).IsAuthenticated() {
		http.Redirect(w, r, nav.PathHome, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginData{})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	password := r.PostFormValue("password")
	form := LoginData{Email: email}

	if email == "" || password == "" {
		form.Error = "Email and password are required."
		h.renderLogin(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		slog.WarnContext(r.Context(), "login attempt on locked account", "email", email)
		form.Error = fmt.Sprintf("Too many failed attempts. Try again in %s.", remaining.Round(time.Minute))
		h.renderLogin(w, r, http.StatusTooManyRequests, form)
		return
	}

	user, err := h.pages.queries.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.ErrorContext(r.Context(), "loading user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	valid := false
	if err == nil {
		valid, err = auth.CheckPassword(password, user.PasswordHash)
		if err != nil {
			slog.ErrorContext(r.Context(), "checking password", "user_id", user.ID, "error", err)
			valid = false
		}
	}

	if !valid {
		locked, _ := h.loginProtection.RecordFailedAttempt(email)
		slog.InfoContext(r.Context(), "failed login", "email", email, "locked", locked)
		form.Error = "Invalid email or password."
		h.renderLogin(w, r, http.StatusUnauthorized, form)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "renewing session token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), session.KeyRole, string(user.Role))

	if err := h.pages.queries.UpdateLastLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		slog.WarnContext(r.Context(), "updating last login", "user_id", user.ID, "error", err)
	}

	slog.InfoContext(r.Context(), "user signed in", "user_id", user.ID, "role", user.Role)
	h.pages.renderer.SetFlash(r, "Welcome back, "+user.Name+".", "success")
	http.Redirect(w, r, nav.PathHome, http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r)

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "renewing session token", "error", err)
	}
	h.sessionManager.Remove(r.Context(), session.KeyUserID)
	h.sessionManager.Remove(r.Context(), session.KeyRole)

	if p.Role.IsAuthenticated() {
		slog.InfoContext(r.Context(), "user signed out", "user_id", p.UserID)
		h.pages.renderer.SetFlash(r, "You have been signed out.", "info")
	}
	http.Redirect(w, r, nav.PathHome, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, form LoginData) {
	route, _ := nav.Lookup(middleware.GetRole(r), nav.PathLogin)
	data := h.pages.templateData(r, route)
	data.Data = form
	h.pages.render(w, r, status, nav.PathLogin, data)
}
