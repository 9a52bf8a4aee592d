// Package authn derives the outgoing Authorization header from the current
// credential. Authenticator is the only place the header value is stored;
// request builders ask it for headers explicitly instead of relying on a
// shared client default.
package authn

import (
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/common"
)

// Authenticator holds the header value for the current credential.
// Apply has a single caller (the session controller); Header and Decorate
// may be called from any goroutine issuing requests.
type Authenticator struct {
	mu      sync.RWMutex
	header  string
	applied uint64
}

func New() *Authenticator {
	return &Authenticator{}
}

// Normalize returns the wire form of c: "Bearer " is prepended unless c
// already starts with it.
func Normalize(c credential.Credential) string {
	s := string(c)
	if strings.HasPrefix(s, common.BearerPrefix) {
		return s
	}
	return common.BearerPrefix + s
}

// Apply sets the header for a present credential and removes it for an
// absent one. Applying the same credential twice leaves a single, identical
// header.
func (a *Authenticator) Apply(c credential.Credential) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c.Present() {
		a.header = Normalize(c)
	} else {
		a.header = ""
	}
	a.applied++
}

// Header returns the current header value and whether one is set.
func (a *Authenticator) Header() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.header, a.header != ""
}

// applyCount returns how many times Apply has run.
func (a *Authenticator) applyCount() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.applied
}

// Decorate sets the Authorization header on req, or deletes any stale one
// when no credential is applied.
func (a *Authenticator) Decorate(req *http.Request) {
	if h, ok := a.Header(); ok {
		req.Header.Set(common.AuthorizationHeaderName, h)
		return
	}
	req.Header.Del(common.AuthorizationHeaderName)
}
