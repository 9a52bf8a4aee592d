package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/navigation"
	"github.com/dmitrijs2005/carrental/internal/client/session"
	"github.com/dmitrijs2005/carrental/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates an account.
// The issued credential logs the new user in. The password byte slice is
// wiped before returning.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in. Log out first.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.state.Auth.Register(ctx, name, email, password)
	if err != nil {
		a.reportAuthFailure(ctx, "Registration failed", err)
		return err
	}

	a.afterLogin(s)
	return nil
}

// Login prompts for credentials and establishes a session. A pending login
// prompt is resolved by returning to the location that raised it.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in.")
		return nil
	}

	a.state.Navigation.Navigate(navigation.LoginRoute)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.state.Auth.Login(ctx, email, password)
	if err != nil {
		a.reportAuthFailure(ctx, "Login failed", err)
		return err
	}

	a.afterLogin(s)
	return nil
}

func (a *App) afterLogin(s session.Snapshot) {
	target := a.state.Navigation.NavigateAfterLogin()
	who := s.User.Name
	if who == "" {
		who = s.User.Email
	}
	a.printf("Welcome, %s (%s)\n", who, s.User.Role)
	a.printf("Location: %s\n", target)
}

// reportAuthFailure prints the server's message when it sent one.
func (a *App) reportAuthFailure(ctx context.Context, prefix string, err error) {
	a.logger.Warn(ctx, prefix, "error", err)

	switch {
	case client.ServerMessage(err) != "":
		a.printf("%s: %s\n", prefix, client.ServerMessage(err))
	case client.IsTransportFailure(err):
		a.printf("%s: server unavailable\n", prefix)
	case errors.Is(err, common.ErrMalformedCredential):
		a.printf("%s: server issued an invalid token\n", prefix)
	default:
		a.printf("%s\n", prefix)
	}
}

// Logout ends the session. The session controller reports it as a notice
// and moves the location to "/".
func (a *App) Logout(ctx context.Context) error {
	_, err := a.state.Auth.Logout(ctx)
	return err
}
