// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		pageSize    int
		totalItems  int
		wantPages   []int
		wantFirst   bool
		wantLeading bool
		wantLast    bool
		wantTrail   bool
		wantStart   int
		wantEnd     int
	}{
		{"fits in window", 3, 5, 10, 47, []int{1, 2, 3, 4, 5}, false, false, false, false, 21, 30},
		{"high end rebalances", 18, 20, 10, 200, []int{16, 17, 18, 19, 20}, true, true, false, false, 171, 180},
		{"last page", 20, 20, 10, 195, []int{16, 17, 18, 19, 20}, true, true, false, false, 191, 195},
		{"low end", 1, 20, 10, 200, []int{1, 2, 3, 4, 5}, false, false, true, true, 1, 10},
		{"second page", 2, 20, 10, 200, []int{1, 2, 3, 4, 5}, false, false, true, true, 11, 20},
		{"middle", 10, 20, 10, 200, []int{8, 9, 10, 11, 12}, true, true, true, true, 91, 100},
		{"start at two has no leading ellipsis", 4, 20, 10, 200, []int{2, 3, 4, 5, 6}, true, false, true, true, 31, 40},
		{"end one before last has no trailing ellipsis", 17, 20, 10, 200, []int{15, 16, 17, 18, 19}, true, true, true, false, 161, 170},
		{"single page", 1, 1, 10, 3, []int{1}, false, false, false, false, 1, 3},
		{"no pages", 1, 0, 10, 0, []int{}, false, false, false, false, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.currentPage, tt.totalPages, tt.pageSize, tt.totalItems)

			if !reflect.DeepEqual(w.Pages, tt.wantPages) {
				t.Errorf("Pages = %v, want %v", w.Pages, tt.wantPages)
			}
			if w.ShowFirst != tt.wantFirst {
				t.Errorf("ShowFirst = %v, want %v", w.ShowFirst, tt.wantFirst)
			}
			if w.ShowLeadingEllipsis != tt.wantLeading {
				t.Errorf("ShowLeadingEllipsis = %v, want %v", w.ShowLeadingEllipsis, tt.wantLeading)
			}
			if w.ShowLast != tt.wantLast {
				t.Errorf("ShowLast = %v, want %v", w.ShowLast, tt.wantLast)
			}
			if w.ShowTrailingEllipsis != tt.wantTrail {
				t.Errorf("ShowTrailingEllipsis = %v, want %v", w.ShowTrailingEllipsis, tt.wantTrail)
			}
			if w.RangeStart != tt.wantStart || w.RangeEnd != tt.wantEnd {
				t.Errorf("range = %d-%d, want %d-%d", w.RangeStart, w.RangeEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComputeRebalanceBounds(t *testing.T) {
	w := Compute(18, 20, 10, 200)
	if w.StartPage != 16 || w.EndPage != 20 {
		t.Errorf("window = %d..%d, want 16..20", w.StartPage, w.EndPage)
	}
}

func TestComputeOutOfRangePage(t *testing.T) {
	// Not clamped: the window collapses against the last page.
	w := Compute(50, 20, 10, 200)
	if !reflect.DeepEqual(w.Pages, []int{16, 17, 18, 19, 20}) {
		t.Errorf("Pages = %v, want [16 17 18 19 20]", w.Pages)
	}
	if w.RangeStart != 491 || w.RangeEnd != 200 {
		t.Errorf("range = %d-%d, want 491-200", w.RangeStart, w.RangeEnd)
	}
}

func TestComputeProperties(t *testing.T) {
	for totalPages := 0; totalPages <= 30; totalPages++ {
		for current := 1; current <= max(totalPages, 1); current++ {
			w := Compute(current, totalPages, 10, totalPages*10)

			if want := min(MaxPagesToShow, totalPages); len(w.Pages) != want {
				t.Fatalf("Compute(%d, %d): len(Pages) = %d, want %d", current, totalPages, len(w.Pages), want)
			}
			for i := 1; i < len(w.Pages); i++ {
				if w.Pages[i] != w.Pages[i-1]+1 {
					t.Fatalf("Compute(%d, %d): Pages not contiguous: %v", current, totalPages, w.Pages)
				}
			}
			for _, p := range w.Pages {
				if p < 1 || p > totalPages {
					t.Fatalf("Compute(%d, %d): page %d out of range", current, totalPages, p)
				}
			}
			if w.ShowLeadingEllipsis && !w.ShowFirst {
				t.Fatalf("Compute(%d, %d): leading ellipsis without first page", current, totalPages)
			}
			if w.ShowTrailingEllipsis && !w.ShowLast {
				t.Fatalf("Compute(%d, %d): trailing ellipsis without last page", current, totalPages)
			}
			if totalPages > 0 && !containsInt(w.Pages, current) {
				t.Fatalf("Compute(%d, %d): current page missing from %v", current, totalPages, w.Pages)
			}
			if again := Compute(current, totalPages, 10, totalPages*10); !reflect.DeepEqual(w, again) {
				t.Fatalf("Compute(%d, %d) not deterministic", current, totalPages)
			}
		}
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestNewPageState(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		pageSize       int
		totalItems     int
		wantPage       int
		wantTotalPages int
	}{
		{"valid page", 2, 10, 50, 2, 5},
		{"page too high", 10, 10, 50, 5, 5},
		{"page too low", 0, 10, 50, 1, 5},
		{"partial last page", 1, 10, 47, 1, 5},
		{"single page", 1, 10, 5, 1, 1},
		{"empty list", 3, 10, 0, 1, 0},
		{"zero page size", 1, 0, 10, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPageState(tt.page, tt.pageSize, tt.totalItems)
			if s.CurrentPage != tt.wantPage || s.TotalPages != tt.wantTotalPages {
				t.Errorf("NewPageState(%d, %d, %d) = page %d of %d, want page %d of %d",
					tt.page, tt.pageSize, tt.totalItems, s.CurrentPage, s.TotalPages, tt.wantPage, tt.wantTotalPages)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"valid page", 3, 5, 3},
		{"first page", 1, 5, 1},
		{"last page", 5, 5, 5},
		{"below minimum", 0, 5, 1},
		{"negative page", -1, 5, 1},
		{"above maximum", 10, 5, 5},
		{"no pages", 4, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.totalPages); got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestNavigator(t *testing.T) {
	var pages, sizes []int
	nav := Navigator{
		OnPageChange:     func(p int) { pages = append(pages, p) },
		OnPageSizeChange: func(n int) { sizes = append(sizes, n) },
	}

	first := PageState{CurrentPage: 1, TotalPages: 5, PageSize: 10, TotalItems: 47}
	middle := PageState{CurrentPage: 3, TotalPages: 5, PageSize: 10, TotalItems: 47}
	last := PageState{CurrentPage: 5, TotalPages: 5, PageSize: 10, TotalItems: 47}
	empty := PageState{CurrentPage: 1, TotalPages: 0, PageSize: 10}

	if nav.Prev(first) {
		t.Error("Prev on first page should be suppressed")
	}
	if nav.Next(last) {
		t.Error("Next on last page should be suppressed")
	}
	if nav.Prev(empty) || nav.Next(empty) {
		t.Error("navigation on an empty listing should be suppressed")
	}
	if !nav.Prev(middle) || !nav.Next(middle) {
		t.Error("Prev/Next on a middle page should fire")
	}
	if nav.GoTo(middle, 6) || nav.GoTo(middle, 0) {
		t.Error("GoTo outside [1, TotalPages] should be suppressed")
	}
	if !nav.GoTo(middle, 5) {
		t.Error("GoTo(5) should fire")
	}
	if !nav.SetPageSize(25) || !nav.SetPageSize(7) {
		t.Error("SetPageSize should always fire")
	}

	if want := []int{2, 4, 5}; !reflect.DeepEqual(pages, want) {
		t.Errorf("page requests = %v, want %v", pages, want)
	}
	if want := []int{25, 7}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("size requests = %v, want %v", sizes, want)
	}
}

func TestNavigatorNilCallbacks(t *testing.T) {
	var nav Navigator
	s := PageState{CurrentPage: 2, TotalPages: 3, PageSize: 10, TotalItems: 30}
	if nav.Next(s) || nav.Prev(s) || nav.SetPageSize(10) {
		t.Error("nil callbacks should report no request fired")
	}
}

func TestBuildPageLinks(t *testing.T) {
	buildURL := func(p int) string { return "/catalog?page=" + strconv.Itoa(p) }

	w := Compute(10, 20, 10, 200)
	links := BuildPageLinks(w, 10, 20, buildURL)

	var got []string
	for _, l := range links {
		switch {
		case l.IsEllipsis:
			got = append(got, "...")
		case l.IsCurrent:
			got = append(got, "["+strconv.Itoa(l.Number)+"]")
		default:
			got = append(got, strconv.Itoa(l.Number))
		}
	}
	want := "1 ... 8 9 [10] 11 12 ... 20"
	if strings.Join(got, " ") != want {
		t.Errorf("links = %q, want %q", strings.Join(got, " "), want)
	}
	if links[0].URL != "/catalog?page=1" {
		t.Errorf("first link URL = %q", links[0].URL)
	}
}

func TestNewPagination(t *testing.T) {
	params := url.Values{
		"q":    []string{"tolkien"},
		"page": []string{"2"}, // Should be excluded
	}
	p := NewPagination(NewPageState(3, 10, 47), "/catalog", params)

	if got := p.PageURL(2); got != "/catalog?q=tolkien&page=2" {
		t.Errorf("PageURL(2) = %q", got)
	}
	if !p.HasPrev() || !p.HasNext() {
		t.Error("page 3 of 5 should have prev and next")
	}
	if got := p.PrevURL(); got != "/catalog?q=tolkien&page=2" {
		t.Errorf("PrevURL() = %q", got)
	}
	if got := p.NextURL(); got != "/catalog?q=tolkien&page=4" {
		t.Errorf("NextURL() = %q", got)
	}
	if !p.ShouldShow() {
		t.Error("ShouldShow() = false, want true for multi-page")
	}
	if got := p.Summary(); got != "21–30 of 47" {
		t.Errorf("Summary() = %q, want %q", got, "21–30 of 47")
	}

	if len(p.HiddenParams) != 1 || p.HiddenParams[0] != (QueryParam{Name: "q", Value: "tolkien"}) {
		t.Errorf("HiddenParams = %+v, want only q=tolkien", p.HiddenParams)
	}

	single := NewPagination(NewPageState(1, 10, 5), "/catalog", nil)
	if single.ShouldShow() || single.HasPrev() || single.HasNext() {
		t.Error("single page should hide pagination and disable navigation")
	}

	empty := NewPagination(NewPageState(1, 10, 0), "/catalog", nil)
	if len(empty.Links) != 0 || empty.HasPrev() || empty.HasNext() {
		t.Error("empty listing should have no links and both buttons disabled")
	}
	if got := empty.Summary(); got != "0 of 0" {
		t.Errorf("Summary() = %q, want %q", got, "0 of 0")
	}
}

func TestSummaryThousands(t *testing.T) {
	p := NewPagination(NewPageState(101, 10, 2500), "/catalog", nil)
	if got := p.Summary(); got != "1,001–1,010 of 2,500" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"valid page", "page=3", 3},
		{"no param", "", 1},
		{"empty param", "page=", 1},
		{"invalid param", "page=abc", 1},
		{"zero page", "page=0", 1},
		{"negative page", "page=-1", 1},
		{"large page", "page=999", 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := ParsePageParam(req); got != tt.want {
				t.Errorf("ParsePageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestParsePerPageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"option 5", "per_page=5", 5},
		{"option 25", "per_page=25", 25},
		{"option 100", "per_page=100", 100},
		{"no param uses default", "", 10},
		{"not an option uses default", "per_page=20", 10},
		{"above options uses default", "per_page=200", 10},
		{"invalid uses default", "per_page=abc", 10},
		{"zero uses default", "per_page=0", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := ParsePerPageParam(req); got != tt.want {
				t.Errorf("ParsePerPageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		defaultVal int
		minVal     int
		maxVal     int
		want       int
	}{
		{"valid value", "total=50", 0, 1, 100, 50},
		{"missing param", "", 7, 1, 100, 7},
		{"below min", "total=0", 7, 1, 100, 7},
		{"above max", "total=200", 7, 1, 100, 7},
		{"no max check", "total=500", 7, 1, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := ParseIntParam(req, "total", tt.defaultVal, tt.minVal, tt.maxVal); got != tt.want {
				t.Errorf("ParseIntParam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		items, size, want int
	}{
		{0, 10, 0},
		{-5, 10, 0},
		{10, 0, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{math.MaxInt, 100, math.MaxInt/100 + 1},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, math.MaxInt, 1},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.items)+"/"+strconv.Itoa(tt.size), func(t *testing.T) {
			if got := TotalPages(tt.items, tt.size); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.items, tt.size, got, tt.want)
			}
		})
	}
}

func TestNewPageStateHugeListing(t *testing.T) {
	s := NewPageState(1, 100, math.MaxInt)
	if s.TotalPages <= 0 {
		t.Fatalf("TotalPages = %d, want positive", s.TotalPages)
	}
	if s.IsLast() {
		t.Error("first page of a huge listing should not be the last")
	}

	w := s.Window()
	if !reflect.DeepEqual(w.Pages, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Pages = %v, want [1 2 3 4 5]", w.Pages)
	}
	if !w.ShowLast || !w.ShowTrailingEllipsis {
		t.Errorf("ShowLast=%v ShowTrailingEllipsis=%v, want both true", w.ShowLast, w.ShowTrailingEllipsis)
	}

	last := NewPageState(math.MaxInt, 100, math.MaxInt)
	lw := last.Window()
	if lw.RangeEnd != math.MaxInt {
		t.Errorf("last page RangeEnd = %d, want %d", lw.RangeEnd, math.MaxInt)
	}
	if lw.RangeStart <= 0 || lw.RangeStart > lw.RangeEnd {
		t.Errorf("last page RangeStart = %d, RangeEnd = %d", lw.RangeStart, lw.RangeEnd)
	}
}

func TestNewPaginationHiddenParams(t *testing.T) {
	params := url.Values{
		"sort":     []string{"title"},
		"author":   []string{"Le Guin", "Tolkien"},
		"page":     []string{"3"},
		"per_page": []string{"25"},
		"empty":    []string{""},
	}
	p := NewPagination(NewPageState(1, 25, 100), "/catalog", params)

	want := []QueryParam{
		{Name: "author", Value: "Le Guin"},
		{Name: "author", Value: "Tolkien"},
		{Name: "sort", Value: "title"},
	}
	if !reflect.DeepEqual(p.HiddenParams, want) {
		t.Errorf("HiddenParams = %+v, want %+v", p.HiddenParams, want)
	}
	if !strings.Contains(p.PageURL(2), "per_page=25") {
		t.Errorf("page links keep per_page: %q", p.PageURL(2))
	}
}
