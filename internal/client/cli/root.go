package cli

import (
	"context"
	"fmt"
	"strings"
)

// getStatus renders the prompt prefix: the signed-in user and role, then the
// current location.
func (a *App) getStatus() string {
	s := a.state.Session.Snapshot()
	loc := a.state.Navigation.Location()

	if !s.Authenticated() {
		if s.Bootstrapping {
			return fmt.Sprintf("(...) %s", loc)
		}
		return loc
	}

	who := s.User.Name
	if who == "" {
		who = s.User.Email
	}
	return fmt.Sprintf("(%s %s) %s", who, s.User.Role, loc)
}

// Root runs the REPL on the app input. It blocks until exit or EOF.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the car rental CLI (type 'help' for commands)")
	if !a.isLoggedIn() {
		a.println("You are browsing as a guest. Type 'login' to sign in.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// splitCommand returns the command word and the rest of the line.
func splitCommand(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}
