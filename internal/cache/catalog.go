// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

const keyBookCount = "catalog:book_count"

// DefaultCatalogTTL is the default staleness bound of catalog aggregates.
const DefaultCatalogTTL = time.Minute

// Catalog caches catalog-wide aggregates.
type Catalog struct {
	counts *TypedCache[int]
}

// NewCatalog creates a catalog cache over c. A zero ttl uses the default
// TTL of c.
func NewCatalog(c Cacher, ttl time.Duration) *Catalog {
	return &Catalog{counts: NewTypedCache[int](c, ttl)}
}

// BookCount returns the cached number of books, loading it on a miss.
func (c *Catalog) BookCount(ctx context.Context, load func(context.Context) (int, error)) (int, error) {
	return c.counts.GetOrSet(ctx, keyBookCount, load)
}

// InvalidateBookCount drops the cached count after the catalog changes.
func (c *Catalog) InvalidateBookCount(ctx context.Context) error {
	return c.counts.Delete(ctx, keyBookCount)
}
