package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := total / p.PageSize
	if total%p.PageSize != 0 {
		pages++
	}
	return pages
}

func ParsePagination(r *http.Request, defaultPageSize, maxPageSize int) Pagination {
	page := 1
	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			pageSize = v
		}
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}
