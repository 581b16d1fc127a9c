package request

import (
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PaginatedRequest is read from the query string. Out-of-range values are
// normalized instead of rejected.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func (p PaginatedRequest) PageNumber() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	}
	return p.PerPage
}

func (p PaginatedRequest) Offset() int {
	return (p.PageNumber() - 1) * p.Limit()
}

// PaginationFromQuery reads page and per_page. Missing or malformed values
// become zero and fall back to the defaults above.
func PaginationFromQuery(query url.Values) PaginatedRequest {
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	return PaginatedRequest{Page: page, PerPage: perPage}
}
