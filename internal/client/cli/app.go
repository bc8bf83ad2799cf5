package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/config"
	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/services"
	"github.com/hackinpovo/inventory/internal/logging"
)

// App is the interactive inventory client.
type App struct {
	config    *config.Config
	db        *sql.DB
	session   services.SessionService
	dashboard *services.Dashboard
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	// forms kept after a failed submit, reused as defaults on retry
	pendingAdd  *services.ItemForm
	pendingEdit map[string]*services.ItemForm
	pendingTag  *services.TagForm

	unsubscribe func()
	countsMu    sync.Mutex
	shown       int
	total       int
}

// NewApp opens the session database and wires the API client, session and
// dashboard. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(logger),
	)

	return newApp(c, db, api, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, api *client.HTTPClient, logger logging.Logger, in io.Reader, out io.Writer) *App {
	session := services.NewSessionService(api, db, logger)
	api.SetTokenSource(session)

	store := inventory.NewStore()
	dashboard := services.NewDashboard(api, store, &writerNotifier{w: out}, logger)

	a := &App{
		config:      c,
		db:          db,
		session:     session,
		dashboard:   dashboard,
		logger:      logger.With("module", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
		pendingEdit: make(map[string]*services.ItemForm),
	}
	a.unsubscribe = store.Subscribe(a.observe)
	return a
}

// observe keeps the item counts shown in the prompt in step with the store.
func (a *App) observe(snap inventory.Snapshot) {
	shown := len(snap.Visible())
	a.countsMu.Lock()
	a.shown, a.total = shown, snap.Items.Len()
	a.countsMu.Unlock()
}

// Run restores a saved session, loads the inventory and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Hackinpovo inventory (type 'help' for commands)")

	if sess, ok, err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	} else if ok {
		fmt.Fprintf(a.out, "Signed in as %s\n", sess.Email)
	}

	if err := a.dashboard.LoadInitial(ctx); err == nil {
		_ = a.List(ctx)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Close stops observing the store and releases the session database.
func (a *App) Close() error {
	a.unsubscribe()
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) status() string {
	who := "anonymous"
	if sess, ok := a.session.Current(); ok {
		who = sess.Email
	}

	a.countsMu.Lock()
	shown, total := a.shown, a.total
	a.countsMu.Unlock()

	if shown == total {
		return fmt.Sprintf("(%s, %d items)", who, total)
	}
	return fmt.Sprintf("(%s, %d of %d items)", who, shown, total)
}
