package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspavlov/docshelf/internal/client/api"
)

func TestBuildRowsFoldersFirst(t *testing.T) {
	page := api.PaginatedAttachments{
		Data: []api.AttachmentItem{
			{ID: 7, Name: "report.pdf", Kind: "file", Size: 1024, CreatedBy: &api.Person{Name: "Alice"}},
			{ID: 9, Name: "notes.txt", Kind: "file", Size: 64, Owner: &api.Person{Name: "Bob"}},
		},
		Directories: []api.DirectoryItem{
			{Name: "contracts", FileCount: 12},
			{Name: "invoices", FileCount: 3},
		},
	}

	rows := buildRows(page)
	require.Len(t, rows, 4)

	assert.True(t, rows[0].IsFolder())
	assert.True(t, rows[1].IsFolder())
	assert.Equal(t, "contracts", rows[0].Name)
	assert.Equal(t, "invoices", rows[1].Name)
	assert.Equal(t, "report.pdf", rows[2].Name)
	assert.Equal(t, "notes.txt", rows[3].Name)
}

// Folder rows get synthetic negative IDs so they never collide with the
// server's positive attachment IDs in a single row-key space.
func TestFolderRowsHaveUniqueNegativeIDs(t *testing.T) {
	page := api.PaginatedAttachments{
		Data: []api.AttachmentItem{{ID: 1, Name: "a.pdf", Kind: "file"}},
		Directories: []api.DirectoryItem{
			{Name: "one"}, {Name: "two"}, {Name: "three"},
		},
	}

	rows := buildRows(page)
	require.Len(t, rows, 4)

	seen := map[int64]bool{}
	for _, r := range rows {
		assert.False(t, seen[r.ID], "row ID %d repeated", r.ID)
		seen[r.ID] = true
	}
	assert.Equal(t, int64(-1), rows[0].ID)
	assert.Equal(t, int64(-2), rows[1].ID)
	assert.Equal(t, int64(-3), rows[2].ID)
	assert.Equal(t, int64(1), rows[3].ID)
}

func TestRowCreatorFallbacks(t *testing.T) {
	folder := rowFromDirectory(api.DirectoryItem{Name: "archive"}, 0)
	assert.Equal(t, "System", folder.CreatedBy)

	byCreator := rowFromAttachment(api.AttachmentItem{ID: 1, CreatedBy: &api.Person{Name: "Alice"}})
	assert.Equal(t, "Alice", byCreator.CreatedBy)

	byOwner := rowFromAttachment(api.AttachmentItem{ID: 2, Owner: &api.Person{Name: "Bob"}})
	assert.Equal(t, "Bob", byOwner.CreatedBy)

	unknown := rowFromAttachment(api.AttachmentItem{ID: 3})
	assert.Equal(t, "Unknown", unknown.CreatedBy)
}
