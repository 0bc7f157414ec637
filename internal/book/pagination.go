package book

import "strconv"

// DefaultLimit is the page size used when the caller supplies none.
const DefaultLimit = 10

// PageRequest is a normalized 1-based page selection.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest builds a PageRequest from raw query values. Absent or
// non-numeric values fall back to the defaults; non-positive values are
// clamped so the computed offset can never go negative.
func ParsePageRequest(pageStr, limitStr string) PageRequest {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset is the index of the first record on the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit). A total of zero yields zero pages.
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
