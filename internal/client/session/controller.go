package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/common"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

type CredentialStore interface {
	Read(ctx context.Context) (credential.Credential, bool)
	Write(ctx context.Context, c credential.Credential) error
	Clear(ctx context.Context) error
}

type HeaderApplier interface {
	Apply(c credential.Credential)
}

type ProfileFetcher interface {
	FetchUser(ctx context.Context) (*models.User, error)
}

type Navigator interface {
	Navigate(path string)
}

// Snapshot is a read-only view of the session published after every event.
type Snapshot struct {
	Phase         State
	Credential    credential.Credential
	User          *models.User
	IsOwner       bool
	Bootstrapping bool
	Generation    uint64
}

func (s Snapshot) Authenticated() bool {
	return s.Phase == StateAuthenticated && s.User != nil
}

type envelope struct {
	ev    Event
	reply chan<- Snapshot
}

// Controller runs the session machine on a single goroutine (Run). Public
// methods only enqueue events; all state changes and effects happen on the
// loop.
type Controller struct {
	store    CredentialStore
	header   HeaderApplier
	fetcher  ProfileFetcher
	notifier notice.Notifier
	nav      Navigator
	logger   logging.Logger

	events chan envelope
	done   chan struct{}

	// loop-owned
	machine     Machine
	fetchCancel context.CancelFunc
	fetches     sync.WaitGroup

	mu      sync.RWMutex
	snap    Snapshot
	changed chan struct{}

	settled    chan struct{}
	settleOnce sync.Once
	runOnce    sync.Once
	closeDone  sync.Once
}

func NewController(store CredentialStore, header HeaderApplier, fetcher ProfileFetcher,
	notifier notice.Notifier, nav Navigator, logger logging.Logger) *Controller {

	m := NewMachine()
	return &Controller{
		store:    store,
		header:   header,
		fetcher:  fetcher,
		notifier: notifier,
		nav:      nav,
		logger:   logger.With("component", "session"),
		events:   make(chan envelope, 16),
		done:     make(chan struct{}),
		machine:  m,
		snap:     snapshotOf(m),
		changed:  make(chan struct{}),
		settled:  make(chan struct{}),
	}
}

func snapshotOf(m Machine) Snapshot {
	s := Snapshot{
		Phase:         m.State,
		Credential:    m.Credential,
		Bootstrapping: m.Bootstrapping,
		Generation:    m.Gen,
	}
	if m.User != nil {
		u := *m.User
		s.User = &u
		s.IsOwner = u.IsOwner()
	}
	return s
}

// Run processes events until ctx is cancelled. It must be called once.
func (c *Controller) Run(ctx context.Context) error {
	started := false
	c.runOnce.Do(func() { started = true })
	if !started {
		return fmt.Errorf("session controller already running")
	}

	defer func() {
		c.cancelFetch()
		c.closeDone.Do(func() { close(c.done) })
		c.fetches.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case env := <-c.events:
			c.handle(ctx, env)
		}
	}
}

func (c *Controller) handle(ctx context.Context, env envelope) {
	queue := []Event{env.ev}
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		from := c.machine.State
		next, effects := c.machine.Step(ev)
		c.machine = next
		if from != next.State {
			c.logger.Debug(ctx, "session transition", "from", from.String(), "to", next.State.String(),
				"event", fmt.Sprintf("%T", ev), "gen", next.Gen)
		}

		for _, eff := range effects {
			if follow := c.execute(ctx, eff); follow != nil {
				queue = append(queue, follow)
			}
		}
		c.publish(snapshotOf(c.machine))
	}

	if env.reply != nil {
		env.reply <- c.Snapshot()
	}
}

// execute performs one effect and may return a follow-up event, which is
// processed on the loop before the next queued event.
func (c *Controller) execute(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case ReadStoredCredential:
		cred, found := c.store.Read(ctx)
		return StoredCredentialRead{Credential: cred, Found: found}

	case ClearStoredCredential:
		if err := c.store.Clear(ctx); err != nil {
			c.logger.Error(ctx, "clear stored credential", "error", err)
		}

	case PersistCredential:
		if err := c.store.Write(ctx, e.Credential); err != nil {
			c.logger.Error(ctx, "persist credential", "error", err, "credential", e.Credential.Redacted())
		}

	case ApplyHeader:
		c.header.Apply(e.Credential)

	case FetchProfile:
		c.startFetch(ctx, e)

	case CancelFetch:
		c.cancelFetch()

	case Notify:
		if c.notifier != nil {
			c.notifier.Notify(ctx, e.Notice)
		}

	case Navigate:
		if c.nav != nil {
			c.nav.Navigate(e.Path)
		}

	case Settle:
		c.settleOnce.Do(func() { close(c.settled) })
	}
	return nil
}

func (c *Controller) startFetch(ctx context.Context, e FetchProfile) {
	c.cancelFetch()
	fctx, cancel := context.WithCancel(ctx)
	c.fetchCancel = cancel

	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		user, err := c.fetcher.FetchUser(fctx)
		if err != nil {
			c.logger.Warn(fctx, "profile fetch failed", "gen", e.Gen, "error", err)
		}
		select {
		case c.events <- envelope{ev: ProfileResolved{Gen: e.Gen, User: user, Err: err}}:
		case <-c.done:
		}
	}()
}

func (c *Controller) cancelFetch() {
	if c.fetchCancel != nil {
		c.fetchCancel()
		c.fetchCancel = nil
	}
}

func (c *Controller) publish(s Snapshot) {
	c.mu.Lock()
	c.snap = s
	close(c.changed)
	c.changed = make(chan struct{})
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Settled is closed once bootstrap has completed.
func (c *Controller) Settled() <-chan struct{} {
	return c.settled
}

// WaitFor blocks until a published snapshot satisfies pred.
func (c *Controller) WaitFor(ctx context.Context, pred func(Snapshot) bool) (Snapshot, error) {
	for {
		c.mu.RLock()
		s, ch := c.snap, c.changed
		c.mu.RUnlock()

		if pred(s) {
			return s, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return s, ctx.Err()
		case <-c.done:
			return c.Snapshot(), common.ErrSessionClosed
		}
	}
}

func (c *Controller) post(ctx context.Context, ev Event, reply chan<- Snapshot) error {
	select {
	case <-c.done:
		return common.ErrSessionClosed
	default:
	}

	select {
	case c.events <- envelope{ev: ev, reply: reply}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return common.ErrSessionClosed
	}
}

func (c *Controller) call(ctx context.Context, ev Event) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	if err := c.post(ctx, ev, reply); err != nil {
		return c.Snapshot(), err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	case <-c.done:
		return c.Snapshot(), common.ErrSessionClosed
	}
}

// Mount starts bootstrap recovery from the stored credential. Only the first
// call has an effect.
func (c *Controller) Mount(ctx context.Context) error {
	return c.post(ctx, Mount{}, nil)
}

// Refresh re-resolves the profile of an authenticated session.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.post(ctx, Refresh{}, nil)
}

// Logout tears the session down from any state.
func (c *Controller) Logout(ctx context.Context) (Snapshot, error) {
	return c.call(ctx, Logout{})
}

// Login installs cred and waits for its profile to resolve. A malformed cred
// is rejected without touching the session.
func (c *Controller) Login(ctx context.Context, cred credential.Credential) (Snapshot, error) {
	if !credential.ValidateShape(string(cred)) {
		return c.Snapshot(), common.ErrMalformedCredential
	}

	s, err := c.call(ctx, CredentialChanged{Credential: cred})
	if err != nil {
		return s, err
	}

	if s.Phase == StateFetchingUser && s.Credential == cred {
		gen := s.Generation
		s, err = c.WaitFor(ctx, func(s Snapshot) bool {
			return s.Generation != gen || s.Phase != StateFetchingUser
		})
		if err != nil {
			return s, err
		}
	}

	if !s.Authenticated() || s.Credential != cred {
		return s, common.ErrNotAuthenticated
	}
	return s, nil
}

// StartSessionCheck posts Refresh every interval until ctx is done, so an
// expired or revoked credential is noticed while the session is idle.
func (c *Controller) StartSessionCheck(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}
