package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/carrental/internal/client/appstate"
	"github.com/dmitrijs2005/carrental/internal/client/config"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/client/storage"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

type App struct {
	config   *config.Config
	state    *appstate.AppState
	db       *sql.DB
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	notifier notice.Notifier
}

// NewApp opens local storage and wires the client. Notices and command
// output go to out; input is read from stdin.
func NewApp(ctx context.Context, c *config.Config, out io.Writer, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	notifier := notice.NewTerminalNotifier(out, logger)
	state := appstate.New(c, db, notifier, logger)

	return newApp(c, state, db, bufio.NewReader(os.Stdin), out, notifier, logger), nil
}

func newApp(c *config.Config, state *appstate.AppState, db *sql.DB, in *bufio.Reader, out io.Writer,
	notifier notice.Notifier, logger logging.Logger) *App {
	return &App{
		config:   c,
		state:    state,
		db:       db,
		logger:   logger,
		reader:   in,
		out:      out,
		notifier: notifier,
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.Session.Snapshot().Authenticated()
}

func (a *App) isOwner() bool {
	return a.state.Session.Snapshot().IsOwner
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Run starts the session loop, bootstraps the app and then blocks in the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan error, 1)
	go func() { loopDone <- a.state.Run(ctx) }()

	// the loop may still be running storage effects; stop it before the
	// deferred db.Close
	if err := a.state.Bootstrap(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error(ctx, "bootstrap failed", "error", err)
		cancel()
		<-loopDone
		return err
	}

	a.Root(ctx)

	cancel()
	return <-loopDone
}
