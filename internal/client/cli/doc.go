// Package cli implements the interactive docshelf terminal client.
//
// The client is a read-eval-print loop over the document collection: a
// paginated, sortable, searchable table of files and virtual folders,
// backed by the docshelf HTTP API. Authentication state survives restarts
// through a local SQLite session database.
//
// Structure:
//
//   - app.go:    App construction and dependency wiring.
//   - repl.go:   the command loop, decoupled from App via execIface.
//   - auth.go:   login/logout flows.
//   - table.go:  collection commands (paging, sorting, searching, cd).
//   - mutate.go: upload, mkdir, rm, mv, rename, remark.
//   - show.go:   detail view, remarks listing and the stats summary.
//   - input.go:  interactive prompt helpers.
//   - render.go: table and value formatting.
package cli
