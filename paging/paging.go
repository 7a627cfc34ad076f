package paging

import (
	"context"
	"fmt"
)

// DefaultPageSize is the fixed page size of the task listing.
const DefaultPageSize = 5

// Page holds one materialized slice of an ordered result set plus the
// metadata needed to render navigation.
type Page[T any] struct {
	Items       []T  `json:"items"`
	PageIndex   int  `json:"page_index"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// CountFunc counts the items matching the composed query without
// materializing them.
type CountFunc func(ctx context.Context) (int, error)

// FetchFunc materializes one window of the composed query.
type FetchFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Paginate runs the count pass and then exactly one offset/limit fetch pass
// over the same composed query.
//
// pageNumber below 1 clamps to 1. A pageNumber beyond the last page is left
// as given: the fetch simply yields no rows and the caller gets an empty
// page with correct TotalPages/HasNext metadata.
func Paginate[T any](ctx context.Context, pageNumber, pageSize int, count CountFunc, fetch FetchFunc[T]) (*Page[T], error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := count(ctx)
	if err != nil {
		return nil, fmt.Errorf("pagination count: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize

	items, err := fetch(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("pagination fetch: %w", err)
	}
	if items == nil {
		items = make([]T, 0)
	}

	return &Page[T]{
		Items:       items,
		PageIndex:   pageNumber,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
	}, nil
}
