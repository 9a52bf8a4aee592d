package session

import (
	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
)

const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgLoggedOut      = "Logged out successfully"

	// HomeRoute is where Logout navigates.
	HomeRoute = "/"
)

type State int

const (
	StateInit State = iota
	StateCheckingStoredCredential
	StateNoCredential
	StateInvalidShape
	StateValidShape
	StateFetchingUser
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCheckingStoredCredential:
		return "checking_stored_credential"
	case StateNoCredential:
		return "no_credential"
	case StateInvalidShape:
		return "invalid_shape"
	case StateValidShape:
		return "valid_shape"
	case StateFetchingUser:
		return "fetching_user"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Event is an input to the machine.
type Event interface{ isEvent() }

type (
	Mount                struct{}
	StoredCredentialRead struct {
		Credential credential.Credential
		Found      bool
	}
	// CredentialChanged is an explicit login with a new credential.
	CredentialChanged struct{ Credential credential.Credential }
	ProfileResolved   struct {
		Gen  uint64
		User *models.User
		Err  error
	}
	// Refresh re-resolves the profile of an authenticated session.
	Refresh struct{}
	Logout  struct{}
)

func (Mount) isEvent()                {}
func (StoredCredentialRead) isEvent() {}
func (CredentialChanged) isEvent()    {}
func (ProfileResolved) isEvent()      {}
func (Refresh) isEvent()              {}
func (Logout) isEvent()               {}

// Effect is an instruction the controller carries out, in order, after a
// transition.
type Effect interface{ isEffect() }

type (
	ReadStoredCredential  struct{}
	ClearStoredCredential struct{}
	PersistCredential     struct{ Credential credential.Credential }
	// ApplyHeader with an absent credential removes the header.
	ApplyHeader  struct{ Credential credential.Credential }
	FetchProfile struct {
		Gen        uint64
		Credential credential.Credential
	}
	CancelFetch struct{}
	Notify      struct{ Notice notice.Notice }
	Navigate    struct{ Path string }
	// Settle ends bootstrapping. Emitted at most once per machine.
	Settle struct{}
)

func (ReadStoredCredential) isEffect()  {}
func (ClearStoredCredential) isEffect() {}
func (PersistCredential) isEffect()     {}
func (ApplyHeader) isEffect()           {}
func (FetchProfile) isEffect()          {}
func (CancelFetch) isEffect()           {}
func (Notify) isEffect()                {}
func (Navigate) isEffect()              {}
func (Settle) isEffect()                {}

// Machine is the session state. Step is pure: it never performs I/O.
type Machine struct {
	State         State
	Credential    credential.Credential
	User          *models.User
	Bootstrapping bool
	// Gen tags profile fetches; results with another Gen are stale.
	Gen uint64
	// Established is set once the current credential has resolved a user.
	Established bool
}

func NewMachine() Machine {
	return Machine{State: StateInit, Bootstrapping: true}
}

func (m Machine) Step(ev Event) (Machine, []Effect) {
	switch e := ev.(type) {
	case Mount:
		return m.onMount()
	case StoredCredentialRead:
		return m.onStoredCredentialRead(e)
	case CredentialChanged:
		return m.onCredentialChanged(e)
	case ProfileResolved:
		return m.onProfileResolved(e)
	case Refresh:
		return m.onRefresh()
	case Logout:
		return m.onLogout()
	}
	return m, nil
}

func (m *Machine) settle(effects []Effect) []Effect {
	if !m.Bootstrapping {
		return effects
	}
	m.Bootstrapping = false
	return append(effects, Settle{})
}

func (m Machine) onMount() (Machine, []Effect) {
	if m.State != StateInit {
		return m, nil
	}
	m.State = StateCheckingStoredCredential
	return m, []Effect{ReadStoredCredential{}}
}

func (m Machine) onStoredCredentialRead(e StoredCredentialRead) (Machine, []Effect) {
	// A login or logout during the read wins over the stored value.
	if m.State != StateCheckingStoredCredential {
		return m, nil
	}

	if !e.Found || !e.Credential.Present() {
		m.State = StateNoCredential
		return m, m.settle(nil)
	}

	if !credential.ValidateShape(string(e.Credential)) {
		m.State = StateInvalidShape
		return m, m.settle([]Effect{ClearStoredCredential{}})
	}

	m.State = StateValidShape
	return m.beginFetch(e.Credential, nil)
}

// beginFetch moves to FetchingUser for c. The header is applied before the
// fetch is issued.
func (m Machine) beginFetch(c credential.Credential, effects []Effect) (Machine, []Effect) {
	m.Credential = c
	m.Gen++
	m.State = StateFetchingUser
	return m, append(effects, ApplyHeader{Credential: c}, FetchProfile{Gen: m.Gen, Credential: c})
}

func (m Machine) onCredentialChanged(e CredentialChanged) (Machine, []Effect) {
	if !credential.ValidateShape(string(e.Credential)) {
		return m, nil
	}
	if e.Credential == m.Credential && (m.State == StateFetchingUser || m.State == StateAuthenticated) {
		return m, nil
	}

	var effects []Effect
	if m.State == StateFetchingUser || m.State == StateAuthenticated {
		effects = append(effects, CancelFetch{})
	}
	m.User = nil
	m.Established = false
	return m.beginFetch(e.Credential, append(effects, PersistCredential{Credential: e.Credential}))
}

func (m Machine) onProfileResolved(e ProfileResolved) (Machine, []Effect) {
	if e.Gen != m.Gen || (m.State != StateFetchingUser && m.State != StateAuthenticated) {
		return m, nil
	}

	if e.Err == nil && e.User != nil {
		m.State = StateAuthenticated
		m.User = e.User
		m.Established = true
		return m, m.settle(nil)
	}

	var effects []Effect
	if m.Established {
		effects = []Effect{Notify{Notice: notice.Error(MsgSessionExpired)}}
	}
	m, teardown := m.teardown()
	m.State = StateUnauthenticated
	return m, m.settle(append(teardown, effects...))
}

func (m Machine) onRefresh() (Machine, []Effect) {
	if m.State != StateAuthenticated {
		return m, nil
	}
	m.Gen++
	return m, []Effect{CancelFetch{}, FetchProfile{Gen: m.Gen, Credential: m.Credential}}
}

func (m Machine) onLogout() (Machine, []Effect) {
	m, effects := m.teardown()
	m.Gen++
	m.State = StateNoCredential
	effects = append([]Effect{CancelFetch{}}, effects...)
	effects = append(effects,
		Navigate{Path: HomeRoute},
		Notify{Notice: notice.Success(MsgLoggedOut)},
	)
	return m, m.settle(effects)
}

// teardown forgets the credential in storage, in memory and on the wire.
func (m Machine) teardown() (Machine, []Effect) {
	m.Credential = ""
	m.User = nil
	m.Established = false
	return m, []Effect{ClearStoredCredential{}, ApplyHeader{}}
}
