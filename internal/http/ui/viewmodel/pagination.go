package viewmodel

// Pagination is the pager shown under a list of users, magazines or contributions.
// Lists are paged in memory, so TotalCount is always known.
type Pagination struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	// StartIndex and EndIndex are 1-based and zero for an empty list.
	StartIndex int
	EndIndex   int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// NewPagination computes the window for page of a list with total items.
// Page and size below 1 are treated as 1.
func NewPagination(page, size, total int) Pagination {
	page = max(page, 1)
	size = max(size, 1)
	total = max(total, 0)
	p := Pagination{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: (total + size - 1) / size,
		HasPrev:    page > 1,
		HasNext:    page*size < total,
	}
	if start := (page-1)*size + 1; total > 0 && start <= total {
		p.StartIndex = start
		p.EndIndex = min(page*size, total)
	}
	return p
}
