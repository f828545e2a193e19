// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/cache"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/middleware"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/scheduler"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/version"
	"github.com/yuliana343/biblioteca-DS-sub001/internal/view"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cacher
	scheduler *scheduler.Scheduler
	views     *view.Registry
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, c cache.Cacher, sched *scheduler.Scheduler, views *view.Registry, v version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		scheduler: sched,
		views:     views,
		version:   v,
		startTime: time.Now(),
	}
}

// HealthStatus is the health response. Details are only shown to admins.
type HealthStatus struct {
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp,omitzero"`
	Uptime    string              `json:"uptime,omitempty"`
	Version   *version.Info       `json:"version,omitempty"`
	Database  *Check              `json:"database,omitempty"`
	Cache     *cache.Stats        `json:"cache,omitempty"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
	Views     []view.Status       `json:"views,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	status := HealthStatus{Status: dbCheck.Status}
	if middleware.GetRole(r) == model.RoleAdmin {
		status.Timestamp = time.Now().UTC()
		status.Uptime = time.Since(h.startTime).Round(time.Second).String()
		status.Version = &h.version
		status.Database = &dbCheck
		if sp, ok := h.cache.(cache.StatsProvider); ok {
			stats := sp.Stats()
			status.Cache = &stats
		}
		if h.scheduler != nil {
			status.Jobs = h.scheduler.Jobs()
		}
		if h.views != nil {
			status.Views = h.views.Statuses()
		}
	}

	code := http.StatusOK
	if dbCheck.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	middleware.WriteJSON(w, r, code, status)
}

// Liveness handles GET /health/live. It never touches dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}
