// Package pagination slices ordered collections into fixed-size pages.
//
// Pages are addressed by a 1-based index. A missing or malformed page
// parameter falls back to page 1, and an index past the end clamps to the
// last page instead of erroring.
package pagination

import "strconv"

// Params is a resolved page request: the page index has already been
// defaulted and clamped against the collection size.
type Params struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// ParsePage interprets a raw page query parameter. Empty, non-numeric and
// non-positive values all mean page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page <= 0 {
		return 1
	}
	return page
}

// New resolves a page request against a collection of total items.
// totalPages is never below 1, so an empty collection still has a valid
// (empty) first page.
func New(page, limit, total int) Params {
	if page <= 0 {
		page = 1
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Params{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset is the number of items preceding this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Params) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Params) HasPrev() bool {
	return p.Page > 1
}

// Bounds returns the [start, end) slice indexes of this page within a
// collection of p.Total items.
func (p Params) Bounds() (start, end int) {
	start = p.Offset()
	if start > p.Total {
		start = p.Total
	}
	end = start + p.Limit
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// SlicePage applies Params to an in-memory slice.
func SlicePage[T any](items []T, p Params) []T {
	start, end := p.Bounds()
	return items[start:end]
}
