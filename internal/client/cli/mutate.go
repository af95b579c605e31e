package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dspavlov/docshelf/internal/client/actions"
	"github.com/dspavlov/docshelf/internal/client/collection"
)

// Upload sends one or more local files into the currently open folder.
// Duplicate basenames within one batch are rejected up front, before any
// bytes travel.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: upload <path> [path...]")
		return fmt.Errorf("missing file path")
	}

	sel := actions.NewSelection()
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			printlnFn("Cannot read", path+":", err.Error())
			return err
		}
		files = append(files, f)
		if err := sel.Add(filepath.Base(path), f); err != nil {
			printlnFn(err.Error())
			return err
		}
	}

	folder := a.view.Snapshot().Query.Folder
	_, err := a.actions.Upload(ctx, sel, folder)
	if err != nil {
		return err
	}
	return a.List(ctx)
}

// MakeDir creates a virtual folder in the current view.
func (a *App) MakeDir(ctx context.Context, name string) error {
	if name == "" {
		printlnFn("Usage: mkdir <name>")
		return fmt.Errorf("missing folder name")
	}
	if err := a.actions.CreateFolder(ctx, name); err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.List(ctx)
}

// Remove deletes a file by ID or a folder by name. Deleting a folder takes
// everything inside it along.
func (a *App) Remove(ctx context.Context, arg string) error {
	if arg == "" {
		printlnFn("Usage: rm <id|folder>")
		return fmt.Errorf("missing target")
	}

	row, err := a.resolveRow(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if row.IsFolder() {
		confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete folder %q and everything in it? (y/N)", row.Name), os.Stdout)
		if err != nil {
			return err
		}
		if confirm != "y" && confirm != "Y" {
			printlnFn("Cancelled.")
			return nil
		}
	}
	if err := a.actions.Delete(ctx, row); err != nil {
		return err
	}
	return a.List(ctx)
}

// Move relocates a file into a folder ("/" or "" for the root).
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: mv <id> <folder>")
		return fmt.Errorf("missing arguments")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: mv <id> <folder>")
		return err
	}
	folder := ""
	if len(args) > 1 && args[1] != "/" {
		folder = args[1]
	}
	if err := a.actions.Move(ctx, id, folder); err != nil {
		return err
	}
	return a.List(ctx)
}

// Rename changes a file's display name.
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: rename <id> <name>")
		return fmt.Errorf("missing arguments")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: rename <id> <name>")
		return err
	}
	if err := a.actions.Rename(ctx, id, args[1]); err != nil {
		printlnFn(err.Error())
		return err
	}
	return a.List(ctx)
}

// AddRemark prompts for a title and message and attaches them to a file.
func (a *App) AddRemark(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: remark <id>")
		return err
	}

	title, err := getSimpleText(a.reader, "Enter remark title", os.Stdout)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Enter remark text", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.actions.AddRemark(ctx, id, title, message); err != nil {
		printlnFn(err.Error())
		return err
	}
	return nil
}

// resolveRow maps a command argument onto a row of the current page: a
// number addresses a file by ID, anything else a folder by name.
func (a *App) resolveRow(arg string) (collection.Row, error) {
	snap := a.view.Snapshot()
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for _, r := range snap.Rows {
			if r.ID == id && !r.IsFolder() {
				return r, nil
			}
		}
		// Not on the current page; still a valid file reference.
		return collection.Row{ID: id, Kind: collection.KindFile, Name: fmt.Sprintf("#%d", id)}, nil
	}
	for _, r := range snap.Rows {
		if r.IsFolder() && r.Name == arg {
			return r, nil
		}
	}
	return collection.Row{}, fmt.Errorf("no folder named %q on this page", arg)
}
