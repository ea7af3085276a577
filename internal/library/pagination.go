package library

// PageSize is the fixed window used by every paginated view.
const PageSize = 20

// TotalPages returns ceil(total/size). Zero items or a non-positive size
// means zero pages, which callers treat as "no pagination controls", not an
// error.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// pageSlice returns the 1-based page window [(page-1)*size, page*size) of
// items. Pages outside the valid range come back empty.
func pageSlice[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
