package domain

// PageInfo is the pagination block returned alongside every paginated list.
type PageInfo struct {
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	CurrentPage   int64 `json:"currentPage"`
	PageSize      int64 `json:"pageSize"`
	HasNext       bool  `json:"hasNext"`
}

// NewPageInfo computes the pagination block for a 1-based page.
func NewPageInfo(totalElements, page, size int64) PageInfo {
	totalPages := int64(0)
	if size > 0 {
		totalPages = (totalElements + size - 1) / size
	}
	return PageInfo{
		TotalElements: totalElements,
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      size,
		HasNext:       totalPages-page > 0,
	}
}

// Paginate slices items for a 1-based page. Out-of-range pages yield an
// empty slice, never a panic.
func Paginate[T any](items []T, page, size int64) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= int64(len(items)) {
		return []T{}
	}
	end := start + size
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}
