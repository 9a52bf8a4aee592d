// Package navigation tracks the REPL's current location and remembers where
// the user was when a login-gated action interrupted them.
package navigation

import "sync"

const (
	DefaultRoute = "/"
	LoginRoute   = "/login"
)

type Coordinator struct {
	mu            sync.Mutex
	location      string
	previous      string
	promptVisible bool
}

func New() *Coordinator {
	return &Coordinator{location: DefaultRoute, previous: DefaultRoute}
}

// Navigate sets the current location. An empty path means DefaultRoute.
func (c *Coordinator) Navigate(path string) {
	if path == "" {
		path = DefaultRoute
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = path
}

func (c *Coordinator) Location() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

// CaptureAndPrompt remembers the current location and shows the login prompt.
func (c *Coordinator) CaptureAndPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previous = c.location
	c.promptVisible = true
}

func (c *Coordinator) PromptVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.promptVisible
}

func (c *Coordinator) PreviousLocation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previous
}

// ResolveAfterLogin returns where to go after a successful login and resets
// the memory to DefaultRoute. The login route itself resolves to
// DefaultRoute.
func (c *Coordinator) ResolveAfterLogin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked()
}

func (c *Coordinator) resolveLocked() string {
	target := c.previous
	if target == "" || target == LoginRoute {
		target = DefaultRoute
	}
	c.previous = DefaultRoute
	c.promptVisible = false
	return target
}

// NavigateAfterLogin resolves the post-login target and moves there.
func (c *Coordinator) NavigateAfterLogin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.resolveLocked()
	c.location = target
	return target
}

// DismissPrompt hides the login prompt without touching the memory.
func (c *Coordinator) DismissPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promptVisible = false
}
