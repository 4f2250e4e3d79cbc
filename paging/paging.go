// Package paging normalizes raw pagination input into a bounded window
// and computes the pagination metadata returned with list responses.
//
// Malformed pagination is never an error: unparsable values fall back to
// their defaults, out-of-range values are silently clamped.
package paging

import "strconv"

const (
	// DefaultPage is used when no page is supplied or it cannot be parsed.
	DefaultPage = 1
	// DefaultLimit is used when no limit is supplied or it cannot be parsed.
	DefaultLimit = 20
	// MaxLimit caps the page size; larger values are clamped, not rejected.
	MaxLimit = 100
)

// Params holds a normalized pagination window.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block of a list response.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Normalize coerces raw page and limit query values into a valid window.
// Page is floored to 1. Limit is floored to 1 and capped at MaxLimit.
func Normalize(rawPage, rawLimit string) Params {
	page := parseInt(rawPage, DefaultPage)
	if page < 1 {
		page = 1
	}

	limit := parseInt(rawLimit, DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset of the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes pagination metadata for a total result count.
func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
