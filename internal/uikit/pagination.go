// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yuliana343/biblioteca-DS-sub001/internal/model"
)

// MaxPagesToShow is the number of page links in the sliding window.
const MaxPagesToShow = 5

// PageSizeOptions are the page sizes offered by the page-size selector.
var PageSizeOptions = []int{5, 10, 25, 50, 100}

// IsPageSizeOption reports whether n is one of PageSizeOptions.
func IsPageSizeOption(n int) bool {
	return slices.Contains(PageSizeOptions, n)
}

// PageState is the pagination state of a listing.
type PageState struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
}

// NewPageState computes the page count for totalItems and clamps page into
// [1, max(TotalPages, 1)].
func NewPageState(page, pageSize, totalItems int) PageState {
	totalPages := TotalPages(totalItems, pageSize)
	return PageState{
		CurrentPage: ClampPage(page, totalPages),
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  totalItems,
	}
}

// Window returns the page window for the state.
func (s PageState) Window() PageWindow {
	return Compute(s.CurrentPage, s.TotalPages, s.PageSize, s.TotalItems)
}

// IsFirst reports whether the current page is the first one.
func (s PageState) IsFirst() bool {
	return s.CurrentPage <= 1
}

// IsLast reports whether the current page is the last one.
// An empty listing is both first and last.
func (s PageState) IsLast() bool {
	return s.CurrentPage >= s.TotalPages
}

// PageWindow is the bounded run of page numbers shown as controls.
type PageWindow struct {
	StartPage            int   `json:"start_page"`
	EndPage              int   `json:"end_page"`
	Pages                []int `json:"pages"`
	ShowFirst            bool  `json:"show_first"`
	ShowLast             bool  `json:"show_last"`
	ShowLeadingEllipsis  bool  `json:"show_leading_ellipsis"`
	ShowTrailingEllipsis bool  `json:"show_trailing_ellipsis"`
	RangeStart           int   `json:"range_start"`
	RangeEnd             int   `json:"range_end"`
}

// Compute returns the window of at most MaxPagesToShow pages around
// currentPage. currentPage is used as given: an out-of-range value yields
// a boundary-collapsed or empty window rather than an error.
func Compute(currentPage, totalPages, pageSize, totalItems int) PageWindow {
	start := max(1, currentPage-MaxPagesToShow/2)
	end := min(totalPages, start+MaxPagesToShow-1)
	if end-start+1 < MaxPagesToShow {
		start = max(1, end-MaxPagesToShow+1)
	}

	pages := make([]int, 0, MaxPagesToShow)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return PageWindow{
		StartPage:            start,
		EndPage:              end,
		Pages:                pages,
		ShowFirst:            start > 1,
		ShowLeadingEllipsis:  start > 2,
		ShowLast:             end < totalPages,
		ShowTrailingEllipsis: end < totalPages-1,
		RangeStart:           (currentPage-1)*pageSize + 1,
		RangeEnd:             rangeEnd(currentPage, pageSize, totalItems),
	}
}

// rangeEnd is min(currentPage*pageSize, totalItems) without overflowing
// on the last page of a listing near math.MaxInt.
func rangeEnd(currentPage, pageSize, totalItems int) int {
	if pageSize > 0 && currentPage > totalItems/pageSize {
		return totalItems
	}
	return min(currentPage*pageSize, totalItems)
}

// Navigator turns pagination controls into page and page-size change
// requests. It never changes state itself.
type Navigator struct {
	OnPageChange     func(targetPage int)
	OnPageSizeChange func(newSize int)
}

// Prev requests the previous page. Suppressed on the first page.
func (n Navigator) Prev(s PageState) bool {
	if s.IsFirst() {
		return false
	}
	return n.pageChange(s.CurrentPage - 1)
}

// Next requests the next page. Suppressed on the last page.
func (n Navigator) Next(s PageState) bool {
	if s.IsLast() {
		return false
	}
	return n.pageChange(s.CurrentPage + 1)
}

// GoTo requests an explicit page within [1, TotalPages].
func (n Navigator) GoTo(s PageState, page int) bool {
	if page < 1 || page > s.TotalPages {
		return false
	}
	return n.pageChange(page)
}

// SetPageSize requests a new page size. Values outside PageSizeOptions are
// passed through; validating them is the caller's job.
func (n Navigator) SetPageSize(size int) bool {
	if n.OnPageSizeChange == nil {
		return false
	}
	n.OnPageSizeChange(size)
	return true
}

func (n Navigator) pageChange(page int) bool {
	if n.OnPageChange == nil {
		return false
	}
	n.OnPageChange(page)
	return true
}

// PageLink represents a single entry in the pagination widget.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPageLinks lays out the widget entries for a window: first page,
// leading ellipsis, window pages, trailing ellipsis, last page.
func BuildPageLinks(w PageWindow, currentPage, totalPages int, buildURL func(int) string) []PageLink {
	links := make([]PageLink, 0, len(w.Pages)+4)

	if w.ShowFirst {
		links = append(links, PageLink{Number: 1, URL: buildURL(1)})
	}
	if w.ShowLeadingEllipsis {
		links = append(links, PageLink{IsEllipsis: true})
	}
	for _, p := range w.Pages {
		links = append(links, PageLink{Number: p, URL: buildURL(p), IsCurrent: p == currentPage})
	}
	if w.ShowTrailingEllipsis {
		links = append(links, PageLink{IsEllipsis: true})
	}
	if w.ShowLast {
		links = append(links, PageLink{Number: totalPages, URL: buildURL(totalPages)})
	}

	return links
}

// QueryParam is one name/value pair carried through a form submission.
type QueryParam struct {
	Name  string
	Value string
}

// Pagination holds pagination data for templates.
type Pagination struct {
	State       PageState
	Window      PageWindow
	Links       []PageLink
	SizeOptions []int
	BaseURL     string
	QueryString string
	// HiddenParams are the kept query parameters except per_page, sorted
	// by name, for the page-size form to resubmit.
	HiddenParams []QueryParam
}

// NewPagination builds the widget model for a listing at baseURL.
// queryParams are preserved on every link except page itself.
func NewPagination(s PageState, baseURL string, queryParams url.Values) Pagination {
	p := Pagination{
		State:       s,
		Window:      s.Window(),
		SizeOptions: PageSizeOptions,
		BaseURL:     baseURL,
	}

	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
		p.HiddenParams = hiddenParams(params)
	}

	p.Links = BuildPageLinks(p.Window, s.CurrentPage, s.TotalPages, p.PageURL)
	return p
}

func hiddenParams(params url.Values) []QueryParam {
	names := make([]string, 0, len(params))
	for k := range params {
		if k != "per_page" {
			names = append(names, k)
		}
	}
	slices.Sort(names)

	var out []QueryParam
	for _, k := range names {
		for _, v := range params[k] {
			out = append(out, QueryParam{Name: k, Value: v})
		}
	}
	return out
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// HasPrev reports whether the previous-page control is enabled.
func (p Pagination) HasPrev() bool {
	return !p.State.IsFirst()
}

// HasNext reports whether the next-page control is enabled.
func (p Pagination) HasNext() bool {
	return !p.State.IsLast()
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string {
	return p.PageURL(p.State.CurrentPage - 1)
}

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string {
	return p.PageURL(p.State.CurrentPage + 1)
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.State.TotalPages > 1
}

var summaryPrinter = message.NewPrinter(language.English)

// Summary describes the visible item range, e.g. "1,001–1,010 of 2,500".
func (p Pagination) Summary() string {
	if p.State.TotalItems == 0 {
		return "0 of 0"
	}
	return summaryPrinter.Sprintf("%d–%d of %d", p.Window.RangeStart, p.Window.RangeEnd, p.State.TotalItems)
}

// TotalPages returns ceil(totalItems / pageSize), or 0 for an empty listing
// or a non-positive page size.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return totalItems/pageSize + min(totalItems%pageSize, 1)
}

// ClampPage ensures the page number is within [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > max(totalPages, 1) {
		return max(totalPages, 1)
	}
	return page
}

// Offset returns the zero-based offset of the first item on the current page.
func (s PageState) Offset() int {
	return (s.CurrentPage - 1) * s.PageSize
}

// ParsePageParam parses the "page" query parameter from the request.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	return ParseIntParam(r, "page", 1, 1, 0)
}

// ParsePerPageParam parses the "per_page" query parameter from the request.
// Only values from PageSizeOptions are accepted; anything else yields
// model.DefaultPageSize.
func ParsePerPageParam(r *http.Request) int {
	n := ParseIntParam(r, "per_page", model.DefaultPageSize, 1, 0)
	if !IsPageSizeOption(n) {
		return model.DefaultPageSize
	}
	return n
}

// ParseIntParam parses an integer query parameter from the request.
// Returns defaultVal if the parameter is missing, empty, or invalid.
// If minVal > 0, values below minVal return defaultVal.
// If maxVal > 0, values above maxVal return defaultVal.
func ParseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}
