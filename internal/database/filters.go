package database

import "property-listing-portal/internal/models"

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PropertyFilters narrows and paginates the property listing query.
// Zero values mean "no filter"; non-positive page values fall back to
// page 1 with 10 records per page.
type PropertyFilters struct {
	PropertyType string
	City         string
	Page         int
	PageSize     int
}

// PaginatedResult is one page of the property listing.
type PaginatedResult struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Pages      int               `json:"pages"`
}

func (f PropertyFilters) normalize() (page, pageSize int) {
	page = f.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize = f.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// pageCount computes ceil(total/pageSize).
func pageCount(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
