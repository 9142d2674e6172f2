// internal/model/pagination.go
package model

import "strconv"

const (
	DefaultPage    = 1
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// PageRequest is a 1-based page window over the repository listing.
type PageRequest struct {
	Page    int
	PerPage int
}

// ParsePageRequest reads the raw page and per_page query values, falling back to
// the defaults for missing, non-numeric or non-positive input and capping the size.
func ParsePageRequest(page, perPage string) PageRequest {
	req := PageRequest{Page: DefaultPage, PerPage: DefaultPerPage}
	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		req.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil && n >= 1 {
		req.PerPage = min(n, MaxPerPage)
	}
	return req
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes where a page sits within the full result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	NextPage   *int  `json:"next_page"`
	PrevPage   *int  `json:"prev_page"`
}

// NewPagination derives next/prev page numbers; either is nil at a boundary.
func NewPagination(req PageRequest, total int64) Pagination {
	p := Pagination{
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalCount: total,
	}
	if int64(req.Page)*int64(req.PerPage) < total {
		next := req.Page + 1
		p.NextPage = &next
	}
	if req.Page > 1 {
		prev := req.Page - 1
		p.PrevPage = &prev
	}
	return p
}
