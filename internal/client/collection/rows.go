package collection

import "github.com/dspavlov/docshelf/internal/client/api"

// Kind discriminates the row union.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Row is one table entry: a file or a virtual folder. Folder IDs are
// synthetic negatives derived from list position, so they never collide with
// server-assigned file IDs and the table has a single unique key space.
type Row struct {
	ID        int64
	Name      string
	Kind      Kind
	CreatedBy string
	CreatedAt string
	// File-only fields; zero for folders.
	Size       int64
	Mime       string
	StorageURL string
	// Path is the resolved folder membership (files) or location (folders).
	Path string
}

// IsFolder reports whether the row is a virtual folder.
func (r Row) IsFolder() bool {
	return r.Kind == KindFolder
}

func rowFromDirectory(d api.DirectoryItem, index int) Row {
	createdBy := "System"
	if d.CreatedBy != nil && d.CreatedBy.Name != "" {
		createdBy = d.CreatedBy.Name
	}
	return Row{
		ID:        -int64(index + 1),
		Name:      d.Name,
		Kind:      KindFolder,
		CreatedBy: createdBy,
		CreatedAt: d.CreatedAt,
		Path:      d.Path,
	}
}

func rowFromAttachment(a api.AttachmentItem) Row {
	createdBy := "Unknown"
	switch {
	case a.CreatedBy != nil && a.CreatedBy.Name != "":
		createdBy = a.CreatedBy.Name
	case a.Owner != nil && a.Owner.Name != "":
		createdBy = a.Owner.Name
	}
	kind := KindFile
	if a.Kind == string(KindFolder) {
		kind = KindFolder
	}
	return Row{
		ID:         a.ID,
		Name:       a.Name,
		Kind:       kind,
		CreatedBy:  createdBy,
		CreatedAt:  a.CreatedAt,
		Size:       a.Size,
		Mime:       a.Mime,
		StorageURL: a.StorageURL,
		Path:       a.Path.Resolve(),
	}
}

// buildRows merges a normalized page into display order: folders always
// precede files whatever the active sort; within each group the server order
// is preserved.
func buildRows(page api.PaginatedAttachments) []Row {
	rows := make([]Row, 0, len(page.Directories)+len(page.Data))
	for i, d := range page.Directories {
		rows = append(rows, rowFromDirectory(d, i))
	}
	for _, a := range page.Data {
		rows = append(rows, rowFromAttachment(a))
	}
	return rows
}
