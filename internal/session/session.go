// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the HTTP session manager. Sessions carry the
// signed-in user's id and role only.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"
)

// Session keys.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
)

// DefaultLifetime is how long a session lives without activity limits.
const DefaultLifetime = 24 * time.Hour

// Options configure New.
type Options struct {
	// DB backs sessions with the sqlite3store when Redis is nil.
	DB *sql.DB
	// Redis, when set, backs sessions with RedisStore.
	Redis *redis.Client
	// Prefix is prepended to Redis keys.
	Prefix   string
	Lifetime time.Duration
	IsDev    bool
}

// New creates a session manager. Redis is preferred when configured,
// otherwise sessions are stored in SQLite.
func New(opts Options) *scs.SessionManager {
	sm := scs.New()

	switch {
	case opts.Redis != nil:
		sm.Store = NewRedisStore(opts.Redis, opts.Prefix)
	case opts.DB != nil:
		sm.Store = sqlite3store.New(opts.DB)
	}

	sm.Lifetime = opts.Lifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = DefaultLifetime
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !opts.IsDev
	if !opts.IsDev {
		// __Host- cookies require Secure, Path=/ and no Domain.
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}
