package domain

import "math"

// Page is a bounded, ordered slice of a larger result set.
type Page[T any] struct {
	PageIndex int
	PageSize  int
	// Count is the number of matching rows before paging.
	Count int64
	Data  []T
}

// PageFilter restricts a paginated item query. Empty filter sets match everything.
type PageFilter struct {
	PageIndex int
	PageSize  int
	Brands    []int
	Types     []int
}

// Offset is the number of rows skipped before the page starts. ok is false
// when the offset does not fit in an int, so the page lies past any result set.
func (f PageFilter) Offset() (offset int, ok bool) {
	if f.PageSize > 0 && f.PageIndex > math.MaxInt/f.PageSize {
		return 0, false
	}
	return f.PageIndex * f.PageSize, true
}
