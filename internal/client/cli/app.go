package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dspavlov/docshelf/internal/client/actions"
	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/client/collection"
	"github.com/dspavlov/docshelf/internal/client/config"
	"github.com/dspavlov/docshelf/internal/client/notify"
	"github.com/dspavlov/docshelf/internal/client/search"
	"github.com/dspavlov/docshelf/internal/client/session"
	"github.com/dspavlov/docshelf/internal/logging"
)

// App wires the docshelf client together: session, API client, the table
// controller, the mutation coordinator and the debounced search input.
type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Manager
	client   api.Client
	view     *collection.Controller
	actions  *actions.Coordinator
	search   *search.Input
	notifier notify.Notifier
	reader   *bufio.Reader
	db       *sql.DB
}

// NewApp builds a fully wired App from configuration.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := newLogger(c.LogLevel)

	store, db, err := session.OpenStore(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(store, log)

	apiClient := api.NewHTTPClient(c.APIBaseURL,
		api.WithTokenSource(sess.Token),
		api.WithLogger(log),
	)
	apiClient.SetUnauthenticatedHandler(sess.HandleUnauthenticated)

	notifier := notify.NewWriter(os.Stdout)
	view := collection.NewController(apiClient, notifier, collection.WithControllerLogger(log))
	coordinator := actions.NewCoordinator(apiClient, notifier, view, log)
	searchInput := search.NewInput(view.SetSearch, c.SearchDebounce)

	return &App{
		config:   c,
		log:      log,
		session:  sess,
		client:   apiClient,
		view:     view,
		actions:  coordinator,
		search:   searchInput,
		notifier: notifier,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
	}, nil
}

func newLogger(level string) logging.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return logging.NewSlogLogger(slog.New(h))
}

// Run restores a persisted session if one is valid, then hands control to
// the REPL. It blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.OnExpired(func() {
		printlnFn("Your session has expired, please log in again.")
	})

	restored, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to restore session", "err", err)
	}
	if restored {
		if user, ok := a.session.User(); ok {
			printlnFn("Welcome back,", user.Name)
		}
		a.view.Init(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the controller and the session database.
func (a *App) Close() {
	a.view.Close()
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.User()
	return ok
}

func (a *App) status() string {
	user, ok := a.session.User()
	if !ok {
		return ""
	}
	snap := a.view.Snapshot()
	s := user.Name
	if snap.Query.Folder != "" {
		s += " /" + snap.Query.Folder
	}
	return "(" + s + ")"
}
