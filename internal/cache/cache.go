// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte cache behind catalog lookups, with an
// in-process backend and a Redis backend shared between instances.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned when a key is absent or expired.
	ErrCacheMiss = errors.New("cache: miss")
	// ErrCacheClosed is returned by every operation after Close.
	ErrCacheClosed = errors.New("cache: closed")
)

// Cacher is a TTL byte cache.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// StatsProvider is implemented by backends that count their traffic.
type StatsProvider interface {
	Stats() Stats
}

// Stats holds cache statistics.
type Stats struct {
	Backend string  `json:"backend"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	HitRate float64 `json:"hit_rate"`
}

func newStats(backend string, hits, misses, sets int64) Stats {
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return Stats{Backend: backend, Hits: hits, Misses: misses, Sets: sets, HitRate: rate}
}

// New returns a Redis cache when client is set and a memory cache otherwise.
func New(client *redis.Client, prefix string, defaultTTL time.Duration) Cacher {
	if client != nil {
		return NewRedisCache(client, prefix, defaultTTL)
	}
	return NewMemoryCache(defaultTTL, time.Minute)
}
