// Package services contains application services for the carrental client.
// This file defines the authentication service: register and login against
// the API, then hand the issued credential to the session controller.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange email/password for a credential and establish the session.
//   - Register: create an account; the issued credential logs the user in.
//   - Logout: tear the session down.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (session.Snapshot, error)
	Register(ctx context.Context, name, email string, password []byte) (session.Snapshot, error)
	Logout(ctx context.Context) (session.Snapshot, error)
}

// TokenIssuer is the part of the API client that issues credentials.
type TokenIssuer interface {
	Login(ctx context.Context, email, password string) (credential.Credential, error)
	Register(ctx context.Context, name, email, password string) (credential.Credential, error)
}

// Session is the part of the session controller the service drives.
type Session interface {
	Login(ctx context.Context, c credential.Credential) (session.Snapshot, error)
	Logout(ctx context.Context) (session.Snapshot, error)
}

type authService struct {
	issuer  TokenIssuer
	session Session
}

func NewAuthService(issuer TokenIssuer, s Session) AuthService {
	return &authService{issuer: issuer, session: s}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (session.Snapshot, error) {
	cred, err := a.issuer.Login(ctx, normalizeEmail(email), string(password))
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("login error: %w", err)
	}
	return a.establish(ctx, cred)
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (session.Snapshot, error) {
	cred, err := a.issuer.Register(ctx, strings.TrimSpace(name), normalizeEmail(email), string(password))
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("register error: %w", err)
	}
	return a.establish(ctx, cred)
}

func (a *authService) establish(ctx context.Context, cred credential.Credential) (session.Snapshot, error) {
	s, err := a.session.Login(ctx, cred)
	if err != nil {
		return s, fmt.Errorf("session error: %w", err)
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) (session.Snapshot, error) {
	return a.session.Logout(ctx)
}
