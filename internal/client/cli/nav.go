package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/carrental/internal/client/appstate"
	"github.com/dmitrijs2005/carrental/internal/client/session"
)

const (
	addCarRoute     = "/owner/add-car"
	carDetailsRoute = "/car-details/"
)

// gatedPrefixes are locations that need a session.
var gatedPrefixes = []string{"/owner", "/my-bookings"}

func isGated(path string) bool {
	for _, p := range gatedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// Goto moves to path. Gated locations raise the login prompt when there is no
// session; the location is resumed after login. Public locations close a
// pending prompt.
func (a *App) Goto(ctx context.Context, path string) error {
	path = normalizePath(path)
	a.state.Navigation.Navigate(path)

	if isGated(path) {
		if err := a.requireSession(func(session.Snapshot) error { return nil }); err != nil {
			return err
		}
	} else if a.state.Navigation.PromptVisible() {
		// moving to a public location closes the login prompt; the gated
		// location is still where a later login returns to
		a.state.Navigation.DismissPrompt()
	}

	if id, ok := strings.CutPrefix(path, carDetailsRoute); ok && id != "" {
		car, found := a.state.Catalog.Find(id)
		if !found {
			a.printf("Car %s not found. Try 'cars' to refresh the list.\n", id)
			return nil
		}
		writeCarDetails(a.out, car, a.config.Currency)
	}

	a.logger.Debug(ctx, "navigated", "path", path)
	return nil
}

// Where prints the current location and any pending login prompt.
func (a *App) Where(context.Context) error {
	v := a.state.Snapshot()
	a.printf("Location: %s\n", v.Location)
	if v.PromptVisible {
		a.printf("Login pending, will return to %s\n", v.PreviousLocation)
	}
	return nil
}

func (a *App) requireSession(action func(session.Snapshot) error) error {
	err := a.state.RequireSession(action)
	if errors.Is(err, appstate.ErrLoginRequired) {
		a.println("Please log in to continue.")
	}
	return err
}
