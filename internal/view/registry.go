// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view resolves page views by route path. Views are created on
// first use and a view that fails to load only affects its own route.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrNotRegistered is returned when no factory exists for a key.
var ErrNotRegistered = errors.New("view not registered")

// View renders a page body.
type View interface {
	Render(w io.Writer, data any) error
}

// Factory creates a view. It is called lazily, at most once per successful
// load.
type Factory func(ctx context.Context) (View, error)

// Registry maps route paths to lazily created views.
type Registry struct {
	factories map[string]Factory
	loaded    map[string]View
	group     singleflight.Group
	logger    *slog.Logger
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		loaded:    make(map[string]View),
		logger:    logger,
	}
}

// Register adds a factory for key. Keys are registered once.
func (r *Registry) Register(key string, f Factory) error {
	if f == nil {
		return fmt.Errorf("view %q: nil factory", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("view %q already registered", key)
	}
	r.factories[key] = f
	return nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the view for key, loading it on first use. Concurrent
// first loads of the same key share one factory call. Failed loads are
// not cached, so a later call retries.
func (r *Registry) Resolve(ctx context.Context, key string) (View, error) {
	r.mu.RLock()
	v, ok := r.loaded[key]
	f, registered := r.factories[key]
	r.mu.RUnlock()

	if ok {
		return v, nil
	}
	if !registered {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}

	res, err, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		v, ok := r.loaded[key]
		r.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := f(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.loaded[key] = v
		r.mu.Unlock()
		r.logger.Debug("view loaded", "key", key)
		return v, nil
	})
	if err != nil {
		r.logger.Error("view load failed", "key", key, "error", err)
		return nil, fmt.Errorf("loading view %s: %w", key, err)
	}
	return res.(View), nil
}

// Status reports whether the view registered under Key has been loaded.
type Status struct {
	Key    string `json:"key"`
	Loaded bool   `json:"loaded"`
}

// Statuses lists every registered key with its load state, sorted by key.
func (r *Registry) Statuses() []Status {
	keys := r.Keys()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Status, len(keys))
	for i, k := range keys {
		_, loaded := r.loaded[k]
		out[i] = Status{Key: k, Loaded: loaded}
	}
	return out
}

// LoadAll resolves every registered view and returns the joined errors of
// those that fail. Successful loads stay cached.
func (r *Registry) LoadAll(ctx context.Context) error {
	var errs []error
	for _, k := range r.Keys() {
		if _, err := r.Resolve(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
