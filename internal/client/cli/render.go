package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dspavlov/docshelf/internal/client/collection"
)

// renderTable writes the current page as an aligned table.
func renderTable(w io.Writer, snap collection.Snapshot) {
	if snap.Loading {
		fmt.Fprintln(w, "Loading...")
		return
	}
	if len(snap.Rows) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCREATED BY\tCREATED")
	for _, r := range snap.Rows {
		size := formatBytes(r.Size)
		name := r.Name
		if r.IsFolder() {
			size = "-"
			name = name + "/"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rowID(r), name, size, r.CreatedBy, formatDate(r.CreatedAt))
	}
	tw.Flush()

	fmt.Fprintf(w, "Page %d of %d, %d entries", snap.Query.Page, snap.TotalPages, snap.TotalEntries)
	if snap.Query.Search != "" {
		fmt.Fprintf(w, ", filtered by %q", snap.Query.Search)
	}
	if snap.Refreshing {
		fmt.Fprint(w, " (refreshing)")
	}
	fmt.Fprintln(w)
}

// rowID renders a row key: folders have synthetic IDs the user never types,
// they are addressed by name instead.
func rowID(r collection.Row) string {
	if r.IsFolder() {
		return "-"
	}
	return fmt.Sprintf("%d", r.ID)
}

type statsSummary struct {
	TotalEntries int
	TotalPages   int
	Page         int
	PageFolders  int
	PageFiles    int
	PageBytes    int64
	Search       string
	Folder       string
}

func renderStats(w io.Writer, s statsSummary) {
	scope := "all documents"
	if s.Folder != "" {
		scope = "folder /" + s.Folder
	}
	if s.Search != "" {
		scope += fmt.Sprintf(", matching %q", s.Search)
	}
	fmt.Fprintf(w, "Collection: %d entries across %d page(s) (%s)\n", s.TotalEntries, s.TotalPages, scope)
	fmt.Fprintf(w, "This page:  %d file(s), %d folder(s), %s\n", s.PageFiles, s.PageFolders, formatBytes(s.PageBytes))
}

// formatBytes renders a byte count in a compact human unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatDate renders an RFC 3339 timestamp as a local date, passing through
// values it cannot parse.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}
