package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100

	// MaxPage keeps Offset within int for any normalized Params.
	MaxPage = math.MaxInt / MaxPerPage
)

// Params is a 1-based page request. Use Parse or New to get a normalized value.
type Params struct {
	Page    int
	PerPage int
}

// New normalizes page and perPage: non-positive values fall back to the
// defaults, page is capped at MaxPage and perPage at MaxPerPage.
func New(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Parse reads the raw page and per_page query values. Anything that is not a
// positive integer falls back to the default.
func Parse(page, perPage string) Params {
	p, err := strconv.Atoi(page)
	if err != nil {
		p = DefaultPage
	}
	pp, err := strconv.Atoi(perPage)
	if err != nil {
		pp = DefaultPerPage
	}
	return New(p, pp)
}

func (p Params) Limit() int {
	return p.PerPage
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages returns ceil(total/perPage), or 0 when total is 0.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Page is the envelope returned by paginated list endpoints.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"total_count"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPage wraps one page of data. A nil slice becomes empty so it encodes as [].
func NewPage[T any](data []T, total int64, p Params) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:        data,
		TotalCount:  total,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalPages:  TotalPages(total, p.PerPage),
	}
}

// Slice returns the window of items selected by p. Pages past the end yield
// an empty, non-nil slice.
func Slice[T any](items []T, p Params) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Limit()
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
