// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing documents robots.txt and sitemap.xml.
package seo

import "strings"

// defaultDisallow is never worth crawling regardless of the route tables.
var defaultDisallow = []string{"/api/", "/login", "/logout"}

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // base URL for the sitemap reference; empty omits it
	DisallowPaths []string // added after the defaults, duplicates dropped
}

// BuildRobots generates the robots.txt content.
func BuildRobots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	seen := make(map[string]bool)
	for _, path := range append(append([]string{}, defaultDisallow...), cfg.DisallowPaths...) {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(cfg.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}
	return sb.String()
}
