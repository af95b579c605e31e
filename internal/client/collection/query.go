package collection

import "github.com/dspavlov/docshelf/internal/client/api"

// SortOrder is a sort direction as the API spells it.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PageSizes is the fixed set of allowed page sizes.
var PageSizes = []int{10, 25, 50, 100}

// AllowedPageSize reports whether size is one of PageSizes.
func AllowedPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Query fully determines a requested subset of the collection: two equal
// queries are interchangeable and their responses directly comparable.
type Query struct {
	Page      int
	PageSize  int
	SortField string
	SortOrder SortOrder
	// Search is the committed (debounced) term; empty means no filter.
	Search string
	// Folder restricts results to one folder; empty means the root view.
	Folder string
}

// DefaultQuery mirrors the defaults the table opens with.
func DefaultQuery() Query {
	return Query{
		Page:      1,
		PageSize:  25,
		SortField: "createdAt",
		SortOrder: SortDesc,
	}
}

func (q Query) listOptions() api.ListOptions {
	return api.ListOptions{
		Limit:     q.PageSize,
		Page:      q.Page,
		SortBy:    q.SortField,
		SortOrder: string(q.SortOrder),
		Search:    q.Search,
		Folder:    q.Folder,
	}
}
