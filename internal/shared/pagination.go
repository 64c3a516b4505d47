package shared

import "math"

// defaultPerPage matches the request-listing page size the UI asks for.
const defaultPerPage = 20

// Pagination is the page metadata returned alongside request listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination normalizes the requested page and size and derives the page
// count from the filtered total.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}
