// Package paging derives page counts, offsets and the sliding link window for search results
package paging

import "math"

// Radius is how many pages either side of the current page the window shows
const Radius = 2

// NormalizePage maps page <= 0 to 1
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// TotalPages is ceil(total/perPage), 0 when there is nothing to page
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	n := total / perPage
	if total%perPage != 0 {
		n++
	}
	return n
}

// Offset is the row offset of page after normalization
// it saturates at math.MaxInt instead of wrapping, so a huge page still lands past the last row
func Offset(page, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	skip := NormalizePage(page) - 1
	if skip > math.MaxInt/perPage {
		return math.MaxInt
	}
	return skip * perPage
}

// Window is the inclusive run of page numbers shown as links
// it is empty when Last < First, which happens for zero pages or a page far past the end
type Window struct {
	First int
	Last  int
}

// WindowFor returns [max(1, current-Radius), min(totalPages, current+Radius)]
// current is not clamped to totalPages
func WindowFor(current, totalPages int) Window {
	return Window{
		First: max(1, current-Radius),
		Last:  min(totalPages, current+min(Radius, math.MaxInt-current)),
	}
}

// Pages lists the window's page numbers in order
func (w Window) Pages() []int {
	if w.Last < w.First {
		return nil
	}
	var out []int
	for p := w.First; ; p++ {
		out = append(out, p)
		if p == w.Last {
			return out
		}
	}
}

// Contains reports whether p is inside the window
func (w Window) Contains(p int) bool { return p >= w.First && p <= w.Last }

// State is everything a renderer needs to draw the pagination block
type State struct {
	Total      int
	PerPage    int
	Current    int
	TotalPages int
	Window     Window
	HasPrev    bool
	HasNext    bool
}

// Compute builds the State for total rows at page
func Compute(total, page, perPage int) State {
	cur := NormalizePage(page)
	tp := TotalPages(total, perPage)
	return State{
		Total:      total,
		PerPage:    perPage,
		Current:    cur,
		TotalPages: tp,
		Window:     WindowFor(cur, tp),
		HasPrev:    cur > 1,
		HasNext:    cur < tp,
	}
}

// Visible reports whether pagination controls are drawn at all
// a single page or no results draws nothing
func (s State) Visible() bool { return s.TotalPages > 1 }
