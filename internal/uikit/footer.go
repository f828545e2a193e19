// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import "time"

// FooterLink is a static link shown in the page footer.
type FooterLink struct {
	Label string
	URL   string
}

// Footer holds the data rendered in the page footer.
type Footer struct {
	SiteName string
	Year     int
	Version  string
	Links    []FooterLink
}

// DefaultFooterLinks are the links every page footer carries.
var DefaultFooterLinks = []FooterLink{
	{Label: "Catalog", URL: "/catalog"},
	{Label: "Opening hours", URL: "/#hours"},
	{Label: "Contact", URL: "/#contact"},
}

// NewFooter builds the footer for the given site and build version.
func NewFooter(siteName, version string, now time.Time) Footer {
	links := make([]FooterLink, len(DefaultFooterLinks))
	copy(links, DefaultFooterLinks)
	return Footer{
		SiteName: siteName,
		Year:     now.Year(),
		Version:  version,
		Links:    links,
	}
}
