package appstate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/config"
	"github.com/dmitrijs2005/carrental/internal/client/credential"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/navigation"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/client/session"
	"github.com/dmitrijs2005/carrental/internal/client/storage"
	"github.com/dmitrijs2005/carrental/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func mint(t *testing.T, userID string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID}).SignedString(secret)
	require.NoError(t, err)
	return tok
}

// marketplace is a minimal fake of the rental API.
type marketplace struct {
	mu    sync.Mutex
	users map[string]models.User // by id
	creds map[string]string      // email -> password
	ids   map[string]string      // email -> id
	cars  []models.Car
}

func (m *marketplace) userFromRequest(r *http.Request) (models.User, bool) {
	h := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return models.User{}, false
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return secret, nil }); err != nil {
		return models.User{}, false
	}
	id, _ := claims["id"].(string)

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (m *marketplace) router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/user/data", func(w http.ResponseWriter, req *http.Request) {
		u, ok := m.userFromRequest(req)
		if !ok {
			writeJSON(w, models.MessageResponse{Success: false, Message: "not authorized"})
			return
		}
		writeJSON(w, models.UserResponse{Success: true, User: &u})
	})
	r.Get("/api/user/cars", func(w http.ResponseWriter, _ *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		writeJSON(w, models.CarsResponse{Success: true, Cars: m.cars})
	})
	r.Post("/api/user/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(req.Body).Decode(&body)
		m.mu.Lock()
		pw, ok := m.creds[body["email"]]
		id := m.ids[body["email"]]
		m.mu.Unlock()
		if !ok || pw != body["password"] {
			writeJSON(w, models.TokenResponse{Success: false, Message: "Invalid Credentials"})
			return
		}
		writeJSON(w, models.TokenResponse{Success: true, Token: mint(t, id)})
	})
	return r
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []notice.Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n notice.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func newApp(t *testing.T, stored string) (*AppState, *recordingNotifier) {
	t.Helper()
	m := &marketplace{
		users: map[string]models.User{"u1": {ID: "u1", Name: "Ann", Email: "ann@example.com", Role: models.RoleOwner}},
		creds: map[string]string{"ann@example.com": "secret"},
		ids:   map[string]string{"ann@example.com": "u1"},
		cars:  []models.Car{{ID: "c1", Brand: "BMW", Model: "X5", Year: 2021, PricePerDay: 120, IsAvailable: true}},
	}
	srv := httptest.NewServer(m.router(t))
	t.Cleanup(srv.Close)

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = srv.URL
	cfg.RequestTimeout = 2 * time.Second
	cfg.SessionCheckInterval = 0

	var logs bytes.Buffer
	n := &recordingNotifier{}
	app := New(cfg, db, n, logging.NewTextLogger(&logs, "debug"))

	if stored != "" {
		require.NoError(t, app.Credentials.Write(context.Background(), credential.Credential(stored)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = app.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		if stored != "" {
			assert.NotContains(t, logs.String(), stored, "raw credential must not be logged")
		}
	})
	return app, n
}

func bootCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestBootstrap_RecoversStoredSession(t *testing.T) {
	app, n := newApp(t, mint(t, "u1"))
	require.NoError(t, app.Bootstrap(bootCtx(t)))

	v := app.Snapshot()
	assert.True(t, v.Session.Authenticated())
	assert.True(t, v.Session.IsOwner)
	assert.False(t, v.Session.Bootstrapping)
	assert.Len(t, v.Cars, 1)
	assert.Empty(t, n.got)

	ran := false
	err := app.RequireSession(func(s session.Snapshot) error {
		ran = true
		assert.Equal(t, "u1", s.User.ID)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestBootstrap_UnknownUserIsTornDown(t *testing.T) {
	app, n := newApp(t, mint(t, "ghost"))
	require.NoError(t, app.Bootstrap(bootCtx(t)))

	v := app.Snapshot()
	assert.Equal(t, session.StateUnauthenticated, v.Session.Phase)
	_, found := app.Credentials.Read(context.Background())
	assert.False(t, found)
	_, ok := app.Authenticator.Header()
	assert.False(t, ok)
	assert.Empty(t, n.got)
}

func TestBootstrap_MalformedStoredCredential(t *testing.T) {
	app, _ := newApp(t, "not-a-jwt")
	require.NoError(t, app.Bootstrap(bootCtx(t)))

	v := app.Snapshot()
	assert.Equal(t, session.StateInvalidShape, v.Session.Phase)
	_, found := app.Credentials.Read(context.Background())
	assert.False(t, found)
}

func TestRequireSession_PromptsThenReturnsAfterLogin(t *testing.T) {
	app, _ := newApp(t, "")
	ctx := bootCtx(t)
	require.NoError(t, app.Bootstrap(ctx))

	app.Navigation.Navigate("/owner/add-car")
	err := app.RequireSession(func(session.Snapshot) error {
		t.Fatal("action must not run without a session")
		return nil
	})
	require.ErrorIs(t, err, ErrLoginRequired)

	v := app.Snapshot()
	assert.True(t, v.PromptVisible)
	assert.Equal(t, "/owner/add-car", v.PreviousLocation)

	app.Navigation.Navigate(navigation.LoginRoute)
	s, err := app.Auth.Login(ctx, "ann@example.com", []byte("secret"))
	require.NoError(t, err)
	assert.True(t, s.IsOwner)
	assert.Equal(t, "/owner/add-car", app.Navigation.NavigateAfterLogin())

	v = app.Snapshot()
	assert.False(t, v.PromptVisible)
	assert.Equal(t, "/owner/add-car", v.Location)
	assert.Equal(t, navigation.DefaultRoute, v.PreviousLocation)

	stored, found := app.Credentials.Read(context.Background())
	assert.True(t, found)
	assert.Equal(t, s.Credential, stored)
}

func TestLogout_ClearsEverything(t *testing.T) {
	app, n := newApp(t, mint(t, "u1"))
	ctx := bootCtx(t)
	require.NoError(t, app.Bootstrap(ctx))
	app.Navigation.Navigate("/my-bookings")

	s, err := app.Auth.Logout(ctx)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	v := app.Snapshot()
	assert.Equal(t, navigation.DefaultRoute, v.Location)
	_, found := app.Credentials.Read(context.Background())
	assert.False(t, found)
	assert.Equal(t, []notice.Notice{notice.Success(session.MsgLoggedOut)}, n.got)
}
