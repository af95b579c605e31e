package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dspavlov/docshelf/internal/client/api"
)

// Show fetches and displays a single attachment with its activity log.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: show <id>")
		return err
	}

	detail, err := a.client.GetAttachment(ctx, id)
	if err != nil {
		printlnFn(api.UserMessage(err))
		return err
	}

	doc := detail.Attachment
	printlnFn("Name:     ", doc.Name)
	printlnFn("Path:     ", doc.Path.Resolve())
	printlnFn("Size:     ", formatBytes(doc.Size))
	printlnFn("Type:     ", doc.Mime)
	if doc.CreatedBy != nil {
		printlnFn("Created by", doc.CreatedBy.Name, "on", formatDate(doc.CreatedAt))
	}
	if doc.StorageURL != "" {
		printlnFn("URL:      ", doc.StorageURL)
	}

	if len(detail.Logs.Data) > 0 {
		printlnFn()
		printlnFn("Activity:")
		for _, l := range detail.Logs.Data {
			actor := "system"
			if l.User != nil {
				actor = l.User.Name
			}
			printlnFn(fmt.Sprintf("  %s  %s  %s %s", formatDate(l.CreatedAt), actor, l.Action, l.Detail))
		}
	}
	return nil
}

// Remarks lists the remarks left on an attachment.
func (a *App) Remarks(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: remarks <id>")
		return err
	}

	page, err := a.client.ListRemarks(ctx, id, 1, 100)
	if err != nil {
		printlnFn(api.UserMessage(err))
		return err
	}

	if len(page.Data) == 0 {
		printlnFn("No remarks.")
		return nil
	}
	for _, r := range page.Data {
		author := "unknown"
		if r.User != nil {
			author = r.User.Name
		}
		printlnFn(fmt.Sprintf("[%s] %s (%s, %s)", r.Title, r.Message, author, formatDate(r.CreatedAt)))
	}
	return nil
}

// Stats prints a summary of the collection as currently filtered: totals
// from the server plus a size breakdown of the visible page.
func (a *App) Stats(ctx context.Context) error {
	a.view.Init(ctx)
	snap := a.view.Snapshot()

	folders := 0
	var pageBytes int64
	for _, r := range snap.Rows {
		if r.IsFolder() {
			folders++
			continue
		}
		pageBytes += r.Size
	}

	renderStats(os.Stdout, statsSummary{
		TotalEntries: snap.TotalEntries,
		TotalPages:   snap.TotalPages,
		Page:         snap.Query.Page,
		PageFolders:  folders,
		PageFiles:    len(snap.Rows) - folders,
		PageBytes:    pageBytes,
		Search:       snap.Query.Search,
		Folder:       snap.Query.Folder,
	})
	return nil
}
