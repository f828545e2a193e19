// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/scheduler"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.NotContains(t, body, "version", "details are admin-only")

	admin := s.login(t, "admin@example.com")
	body = decodeJSON(t, s.get("/health", admin))
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "uptime")
	ver := body["version"].(map[string]any)
	assert.Equal(t, "v0.0.0-test", ver["version"])
	stats := body["cache"].(map[string]any)
	assert.Equal(t, "memory", stats["backend"])
}

func TestHealthListsViews(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@example.com")
	require.Equal(t, http.StatusOK, s.get("/catalog", admin).Code)

	body := decodeJSON(t, s.get("/health", admin))
	views := body["views"].([]any)
	require.Len(t, views, len(PageRoutes()))

	loaded := map[string]bool{}
	for _, v := range views {
		entry := v.(map[string]any)
		loaded[entry["key"].(string)] = entry["loaded"].(bool)
	}
	assert.True(t, loaded["/catalog"], "rendered view is reported as loaded")
	assert.False(t, loaded["/admin/reports"], "views load on first use")
}

func TestHealthListsJobs(t *testing.T) {
	sched := scheduler.New(nil)
	require.NoError(t, sched.Register("login-protection-cleanup", "Drop stale login records", "@every 10m",
		func(context.Context) error { return nil }))
	s := newTestServer(t, withScheduler(sched))

	body := decodeJSON(t, s.get("/health", s.login(t, "admin@example.com")))
	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, "login-protection-cleanup", jobs[0].(map[string]any)["name"])

	body = decodeJSON(t, s.get("/health", s.login(t, "librarian@example.com")))
	assert.NotContains(t, body, "jobs")
}

func TestHealthDatabaseDown(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Close())

	rec := s.get("/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decodeJSON(t, rec)["status"])
}

func TestLiveness(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", decodeJSON(t, rec)["status"])
}
