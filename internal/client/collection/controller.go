package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/client/notify"
	"github.com/dspavlov/docshelf/internal/logging"
)

// afterSettle is a test seam invoked after each fetch settles, reporting the
// request's generation and whether its result was committed.
var afterSettle = func(gen uint64, committed bool) {}

// Snapshot is a point-in-time copy of the view state.
type Snapshot struct {
	Rows []Row
	// TotalEntries is the server total plus the folder rows of this page.
	TotalEntries int
	TotalPages   int
	Query        Query
	// Loading is the cold start: fetching with nothing displayed yet.
	Loading bool
	// Refreshing is a busy refetch: new data is on the way but the current
	// rows stay visible, avoiding layout flicker.
	Refreshing bool
}

// Controller is the fetch orchestrator. All exported methods are safe for
// concurrent use; the displayed page always corresponds to the most recently
// requested query, never to a superseded one.
type Controller struct {
	client   api.Client
	notifier notify.Notifier
	log      logging.Logger

	mu           sync.Mutex
	query        Query
	rows         []Row
	totalEntries int
	totalPages   int

	generation uint64
	cancel     context.CancelFunc
	loadedOnce bool
	inflight   int
	closed     bool
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithQuery overrides the initial query (e.g. a folder-scoped view).
func WithQuery(q Query) ControllerOption {
	return func(c *Controller) { c.query = q }
}

// WithInitialPage seeds the view with a pre-fetched page so the first Init
// does not refetch. Subsequent parameter changes fetch as usual.
func WithInitialPage(page api.PaginatedAttachments) ControllerOption {
	return func(c *Controller) {
		c.commitLocked(page)
	}
}

// WithControllerLogger attaches a structured logger.
func WithControllerLogger(log logging.Logger) ControllerOption {
	return func(c *Controller) { c.log = log }
}

// NewController builds a controller over the given client. Errors surface
// through the notifier, never as panics or unhandled returns.
func NewController(client api.Client, notifier notify.Notifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		client:   client,
		notifier: notifier,
		query:    DefaultQuery(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Rows:         append([]Row(nil), c.rows...),
		TotalEntries: c.totalEntries,
		TotalPages:   c.totalPages,
		Query:        c.query,
		Loading:      c.inflight > 0 && !c.loadedOnce,
		Refreshing:   c.inflight > 0 && c.loadedOnce,
	}
}

// Init performs the first load unless an initial page was provided.
func (c *Controller) Init(ctx context.Context) {
	c.mu.Lock()
	loaded := c.loadedOnce
	c.mu.Unlock()
	if loaded {
		return
	}
	c.refresh(ctx)
}

// Refresh refetches the current query unconditionally. Mutation success paths
// use this as their single reconciliation point.
func (c *Controller) Refresh(ctx context.Context) {
	c.refresh(ctx)
}

// SetSort replaces the sort field and order. Changing sort invalidates the
// page position, so the page resets to 1.
func (c *Controller) SetSort(ctx context.Context, field string, order SortOrder) {
	c.mu.Lock()
	if c.query.SortField == field && c.query.SortOrder == order {
		c.mu.Unlock()
		return
	}
	c.query.SortField = field
	c.query.SortOrder = order
	c.query.Page = 1
	c.mu.Unlock()
	c.refresh(ctx)
}

// SetPageSize replaces the page size and resets to page 1. Sizes outside the
// allowed set are rejected before any request is made.
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	if !AllowedPageSize(size) {
		return fmt.Errorf("page size %d is not one of %v", size, PageSizes)
	}
	c.mu.Lock()
	if c.query.PageSize == size {
		c.mu.Unlock()
		return nil
	}
	c.query.PageSize = size
	c.query.Page = 1
	c.mu.Unlock()
	c.refresh(ctx)
	return nil
}

// SetSearch replaces the committed search term and resets to page 1. Callers
// feed it only settled (debounced) terms.
func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.mu.Lock()
	if c.query.Search == term {
		c.mu.Unlock()
		return
	}
	c.query.Search = term
	c.query.Page = 1
	c.mu.Unlock()
	c.refresh(ctx)
}

// SetFolder scopes the view to one folder (empty for the root view) and
// resets to page 1.
func (c *Controller) SetFolder(ctx context.Context, folder string) {
	c.mu.Lock()
	if c.query.Folder == folder {
		c.mu.Unlock()
		return
	}
	c.query.Folder = folder
	c.query.Page = 1
	c.mu.Unlock()
	c.refresh(ctx)
}

// SetPage moves to page n, clamped into [1, totalPages].
func (c *Controller) SetPage(ctx context.Context, n int) {
	c.mu.Lock()
	n = clampPage(n, c.totalPages)
	if c.query.Page == n {
		c.mu.Unlock()
		return
	}
	c.query.Page = n
	c.mu.Unlock()
	c.refresh(ctx)
}

// Close retires any in-flight request. The view is being torn down; the
// cancelled request must produce neither a commit nor an error notification.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func clampPage(n, totalPages int) int {
	if n < 1 {
		return 1
	}
	if totalPages > 0 && n > totalPages {
		return totalPages
	}
	return n
}

// refresh issues the request for the current query, retiring any in-flight
// predecessor. It loops when a committed response proves the current page is
// beyond the fresh totalPages (e.g. after the last row of the last page was
// deleted) and the clamped page must be fetched instead.
func (c *Controller) refresh(ctx context.Context) {
	for c.refreshOnce(ctx) {
	}
}

// refreshOnce performs one fetch-and-commit cycle. It returns true when the
// commit clamped the page and a follow-up fetch is required.
func (c *Controller) refreshOnce(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		// Retire the superseded request. Its response, should it still
		// arrive, fails the generation check below.
		c.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	q := c.query
	c.inflight++
	c.mu.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "loading attachments",
			"generation", gen, "page", q.Page, "size", q.PageSize,
			"sort", q.SortField, "order", q.SortOrder, "search", q.Search, "folder", q.Folder)
	}

	page, err := c.client.ListAttachments(rctx, q.listOptions())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if gen != c.generation {
		// Superseded while in flight: discard silently, success or not.
		if c.log != nil {
			c.log.Debug(ctx, "discarding stale response", "generation", gen, "current", c.generation)
		}
		cancel()
		afterSettle(gen, false)
		return false
	}
	c.cancel = nil
	cancel()

	if err != nil {
		afterSettle(gen, false)
		if api.IsCancelled(err) {
			return false
		}
		if c.log != nil {
			c.log.Error(ctx, "loading attachments failed", "err", err)
		}
		// Previous rows stay visible; the view degrades gracefully.
		notify.Error(c.notifier, "Unable to load data", api.UserMessage(err))
		return false
	}

	c.commitLocked(page)
	afterSettle(gen, true)

	if clamped := clampPage(c.query.Page, c.totalPages); clamped != c.query.Page {
		c.query.Page = clamped
		return true
	}
	return false
}

// commitLocked installs a normalized page as the displayed state.
// Callers hold c.mu (or are the constructor).
func (c *Controller) commitLocked(page api.PaginatedAttachments) {
	c.rows = buildRows(page)
	c.totalEntries = page.Meta.TotalCount + len(page.Directories)
	c.totalPages = page.Meta.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.loadedOnce = true
}
