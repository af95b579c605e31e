package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	PageSize(ctx context.Context, arg string) error
	Sort(ctx context.Context, args []string) error
	Search(ctx context.Context, term string) error
	OpenFolder(ctx context.Context, folder string) error
	Upload(ctx context.Context, args []string) error
	MakeDir(ctx context.Context, name string) error
	Remove(ctx context.Context, arg string) error
	Move(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Show(ctx context.Context, arg string) error
	Remarks(ctx context.Context, arg string) error
	AddRemark(ctx context.Context, arg string) error
	Stats(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a read-eval-print loop over the document table.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers notify
// the user themselves. This keeps the REPL loop resilient and focused on
// I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("docshelf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, exit")
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Please log in first (type 'login').")
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Table:     (l)ist, page <n>, next, prev, size <n>, sort <field> [asc|desc], search [term], cd [folder], refresh")
			printlnFn("Documents: upload <path> [folder], mkdir <name>, rm <id|folder>, mv <id> <folder>, rename <id> <name>, show <id>")
			printlnFn("Remarks:   remarks <id>, remark <id>")
			printlnFn("Other:     stats, logout, exit")

		case "l", "list":
			_ = a.List(ctx)

		case "page":
			_ = a.Page(ctx, firstOr(args, ""))

		case "next", "n":
			_ = a.NextPage(ctx)

		case "prev", "p":
			_ = a.PrevPage(ctx)

		case "size":
			_ = a.PageSize(ctx, firstOr(args, ""))

		case "sort":
			_ = a.Sort(ctx, args)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "cd":
			_ = a.OpenFolder(ctx, firstOr(args, ""))

		case "upload":
			_ = a.Upload(ctx, args)

		case "mkdir":
			_ = a.MakeDir(ctx, firstOr(args, ""))

		case "rm":
			_ = a.Remove(ctx, firstOr(args, ""))

		case "mv":
			_ = a.Move(ctx, args)

		case "rename":
			_ = a.Rename(ctx, args)

		case "show":
			_ = a.Show(ctx, firstOr(args, ""))

		case "remarks":
			_ = a.Remarks(ctx, firstOr(args, ""))

		case "remark":
			_ = a.AddRemark(ctx, firstOr(args, ""))

		case "stats":
			_ = a.Stats(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func firstOr(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return args[0]
}
