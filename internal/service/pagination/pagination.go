package pagination

import (
	"context"
	"fmt"
)

// PageFetcher loads one zero-based page of a fixed size from the backing
// store and reports the total record count of the whole collection.
type PageFetcher[T any] func(ctx context.Context, pageNumber, pageSize int) (items []T, total int64, err error)

// List translates an arbitrary (limit, offset) pair into page-number fetches.
//
// The store pages by page number, not by absolute offset, so an offset that
// lands inside a page needs the page it starts in plus, when the requested
// window crosses the boundary, the following page. Pages are disjoint, so the
// concatenation has no duplicates; dropping the first offset%limit entries
// and taking at most limit yields the requested window. At most two pages are
// fetched no matter how large offset is.
func List[T any](ctx context.Context, limit, offset int, fetch PageFetcher[T]) ([]T, int64, error) {
	if limit < 1 {
		return nil, 0, fmt.Errorf("limit must be at least 1, got %d", limit)
	}
	if offset < 0 {
		return nil, 0, fmt.Errorf("offset must not be negative, got %d", offset)
	}

	pageNumber := offset / limit
	skipWithinPage := offset % limit

	items, total, err := fetch(ctx, pageNumber, limit)
	if err != nil {
		return nil, 0, err
	}

	if skipWithinPage > 0 && hasNextPage(pageNumber, limit, total) {
		next, _, err := fetch(ctx, pageNumber+1, limit)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, next...)
	}

	if skipWithinPage >= len(items) {
		return []T{}, total, nil
	}
	items = items[skipWithinPage:]
	if len(items) > limit {
		items = items[:limit]
	}

	return items, total, nil
}

func hasNextPage(pageNumber, pageSize int, total int64) bool {
	return int64(pageNumber+1)*int64(pageSize) < total
}
