package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
)

// Status prints the session phase, the signed-in user and what is known about
// the stored credential. Token claims are decoded without verification and
// are shown for information only.
func (a *App) Status(ctx context.Context) error {
	v := a.state.Snapshot()
	s := v.Session

	a.printf("Session:  %s\n", s.Phase)
	if s.Bootstrapping {
		a.println("          restoring the saved session...")
	}
	if s.User != nil {
		a.printf("User:     %s <%s>\n", dash(s.User.Name), dash(s.User.Email))
		a.printf("Role:     %s\n", s.User.Role)
	}
	a.printf("Location: %s\n", v.Location)

	if !s.Credential.Present() {
		a.println("Token:    none")
		return nil
	}
	a.printf("Token:    %s\n", s.Credential.Redacted())

	if at, ok := a.state.Credentials.SavedAt(ctx); ok {
		a.printf("Saved:    %s\n", at.Local().Format(time.DateTime))
	}

	claims, err := credential.Inspect(s.Credential)
	if err != nil {
		a.logger.Debug(ctx, "token claims unreadable", "error", err)
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid until"
		if claims.Expired(time.Now()) {
			state = "expired at"
		}
		a.printf("Expiry:   %s %s\n", state, claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
