// Package appstate is the composition root of the client. It wires the
// credential store, request authenticator, API client, session controller,
// catalog, listing service and navigation coordinator, and exposes one
// read-only aggregate for the front end. Nothing here is global: the CLI
// builds one AppState and passes it around.
package appstate

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/carrental/internal/client/authn"
	"github.com/dmitrijs2005/carrental/internal/client/catalog"
	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/config"
	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/listing"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/navigation"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/client/services"
	"github.com/dmitrijs2005/carrental/internal/client/session"
	"github.com/dmitrijs2005/carrental/internal/client/storage"
	"github.com/dmitrijs2005/carrental/internal/logging"
	"golang.org/x/sync/errgroup"
)

// AppState owns one instance of every client component. Each field has a
// single writer: the component itself.
type AppState struct {
	Credentials   *credential.Store
	Authenticator *authn.Authenticator
	API           *client.HTTPClient
	Session       *session.Controller
	Catalog       *catalog.Service
	Listing       *listing.Service
	Navigation    *navigation.Coordinator
	Auth          services.AuthService

	cfg    *config.Config
	logger logging.Logger
}

// View is a point-in-time, read-only aggregate of the app state.
type View struct {
	Session          session.Snapshot
	Cars             []models.Car
	Location         string
	PreviousLocation string
	PromptVisible    bool
}

func New(cfg *config.Config, db *sql.DB, notifier notice.Notifier, logger logging.Logger) *AppState {
	auth := authn.New()
	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, auth, logger)
	nav := navigation.New()
	creds := credential.NewStore(db, logger)
	ctrl := session.NewController(creds, auth, api, notifier, nav, logger)

	return &AppState{
		Credentials:   creds,
		Authenticator: auth,
		API:           api,
		Session:       ctrl,
		Catalog:       catalog.New(api, storage.NewSQLiteCatalogCache(db), notifier, logger),
		Listing:       listing.New(api, notifier, logger),
		Navigation:    nav,
		Auth:          services.NewAuthService(api, ctrl),
		cfg:           cfg,
		logger:        logger.With("component", "appstate"),
	}
}

func (a *AppState) Snapshot() View {
	return View{
		Session:          a.Session.Snapshot(),
		Cars:             a.Catalog.Cars(),
		Location:         a.Navigation.Location(),
		PreviousLocation: a.Navigation.PreviousLocation(),
		PromptVisible:    a.Navigation.PromptVisible(),
	}
}

// Run drives the session loop and the periodic session check until ctx is
// cancelled.
func (a *AppState) Run(ctx context.Context) error {
	go a.Session.StartSessionCheck(ctx, a.cfg.SessionCheckInterval)
	return a.Session.Run(ctx)
}

// Bootstrap loads the catalog and recovers the stored session concurrently,
// returning once the session has settled. A failed catalog load has already
// been reported as a notice and does not fail bootstrap.
func (a *AppState) Bootstrap(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Catalog.Refresh(gctx); err != nil {
			a.logger.Warn(gctx, "initial catalog load failed", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := a.Session.Mount(gctx); err != nil {
			return err
		}
		select {
		case <-a.Session.Settled():
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	return g.Wait()
}

// ErrLoginRequired is returned by RequireSession when the action was not run
// and the login prompt was raised instead.
var ErrLoginRequired = errors.New("login required")

// RequireSession runs action when a session is established. Otherwise it
// remembers the current location, raises the login prompt and returns
// ErrLoginRequired.
func (a *AppState) RequireSession(action func(session.Snapshot) error) error {
	s := a.Session.Snapshot()
	if !s.Authenticated() {
		a.Navigation.CaptureAndPrompt()
		return ErrLoginRequired
	}
	return action(s)
}
