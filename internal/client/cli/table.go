package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dspavlov/docshelf/internal/client/collection"
)

// List renders the current page of the table.
func (a *App) List(ctx context.Context) error {
	a.view.Init(ctx)
	snap := a.view.Snapshot()
	renderTable(os.Stdout, snap)
	return nil
}

// Page jumps to the given page number.
func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		printlnFn("Usage: page <number>")
		return err
	}
	a.view.SetPage(ctx, n)
	return a.List(ctx)
}

// NextPage advances one page; the controller clamps at the last one.
func (a *App) NextPage(ctx context.Context) error {
	a.view.SetPage(ctx, a.view.Snapshot().Query.Page+1)
	return a.List(ctx)
}

// PrevPage goes back one page; the controller clamps at the first one.
func (a *App) PrevPage(ctx context.Context) error {
	a.view.SetPage(ctx, a.view.Snapshot().Query.Page-1)
	return a.List(ctx)
}

// PageSize switches the rows-per-page setting.
func (a *App) PageSize(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		printlnFn(fmt.Sprintf("Usage: size <n>, where n is one of %v", collection.PageSizes))
		return err
	}
	if err := a.view.SetPageSize(ctx, n); err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.List(ctx)
}

// Sort switches the sort field, optionally with an explicit direction.
// Repeating the current field flips the direction, like clicking a column
// header.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: sort <field> [asc|desc]")
		return fmt.Errorf("missing sort field")
	}
	field := args[0]
	q := a.view.Snapshot().Query

	order := collection.SortAsc
	switch {
	case len(args) > 1:
		switch strings.ToLower(args[1]) {
		case "asc":
			order = collection.SortAsc
		case "desc":
			order = collection.SortDesc
		default:
			printlnFn("Usage: sort <field> [asc|desc]")
			return fmt.Errorf("bad sort order %q", args[1])
		}
	case q.SortField == field && q.SortOrder == collection.SortAsc:
		order = collection.SortDesc
	}

	a.view.SetSort(ctx, field, order)
	return a.List(ctx)
}

// Search types the term into the debounced input and flushes it: in a
// line-oriented client pressing Enter is the end of typing. An empty term
// clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	a.search.SetText(ctx, term)
	a.search.Flush(ctx)
	return a.List(ctx)
}

// OpenFolder scopes the table to a folder, or back to the root with no
// argument.
func (a *App) OpenFolder(ctx context.Context, folder string) error {
	a.view.SetFolder(ctx, strings.Trim(folder, "/"))
	return a.List(ctx)
}

// Refresh refetches the current page.
func (a *App) Refresh(ctx context.Context) error {
	a.view.Refresh(ctx)
	return a.List(ctx)
}
