package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedPageSize(t *testing.T) {
	for _, s := range PageSizes {
		assert.True(t, AllowedPageSize(s), "size %d", s)
	}
	for _, s := range []int{0, -10, 1, 24, 33, 1000} {
		assert.False(t, AllowedPageSize(s), "size %d", s)
	}
}

func TestQueryListOptions(t *testing.T) {
	q := Query{
		Page:      2,
		PageSize:  50,
		SortField: "name",
		SortOrder: SortAsc,
		Search:    "audit",
		Folder:    "contracts",
	}
	opts := q.listOptions()
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 50, opts.Limit)
	assert.Equal(t, "name", opts.SortBy)
	assert.Equal(t, "asc", opts.SortOrder)
	assert.Equal(t, "audit", opts.Search)
	assert.Equal(t, "contracts", opts.Folder)
}

func TestDefaultQuery(t *testing.T) {
	q := DefaultQuery()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 25, q.PageSize)
	assert.Equal(t, "createdAt", q.SortField)
	assert.Equal(t, SortDesc, q.SortOrder)
	assert.Empty(t, q.Search)
}
