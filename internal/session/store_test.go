package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/apiclient"
	"gorecipes/internal/pkg/localstore"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

// fakeAPI simula os endpoints de usuário do backend.
func fakeAPI(t *testing.T, lastAuth *string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}

	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret1" {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid email or password"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"_id":"64b7f0c2a1e4d3b2c1a09f8e","name":"Ana","email":"`+req.Email+`","token":"tok-1","plan":"free"}`)
	})
	mux.HandleFunc("POST /api/users/register", func(w http.ResponseWriter, r *http.Request) {
		// Cadastro que exige confirmação: sem token
		writeJSON(w, http.StatusCreated, `{"_id":"64b7f0c2a1e4d3b2c1a09f8f","name":"Bia","email":"bia@example.com"}`)
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if lastAuth != nil {
			*lastAuth = r.Header.Get("Authorization")
		}
		writeJSON(w, http.StatusOK, `{"_id":"64b7f0c2a1e4d3b2c1a09f8e","name":"Ana Server","email":"ana@example.com"}`)
	})
	mux.HandleFunc("PUT /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"_id":"64b7f0c2a1e4d3b2c1a09f8e","name":"Ana Maria","email":"ana@example.com","bio":"cozinheira"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T, baseURL, path string) (*session.Store, *localstore.FileStore) {
	t.Helper()
	log := logger.NewNop()
	local, err := localstore.Open(path, log)
	require.NoError(t, err)
	client := apiclient.NewClient(baseURL, apiclient.FromStore(local, session.KeyToken), log)
	return session.NewStore(client, local, log), local
}

func TestLogin_PersistsTokenAndFullPayload(t *testing.T) {
	srv := fakeAPI(t, nil)
	path := filepath.Join(t.TempDir(), "session.json")
	store, local := newStore(t, srv.URL+"/api", path)

	record, err := store.Login(context.Background(), "ana@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "tok-1", record.Token)
	assert.True(t, store.IsLoggedIn())

	user, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ana", user.Name)

	// O registro salvo é o payload inteiro, incluindo campos desconhecidos
	raw, _ := local.Get(session.KeyUser)
	assert.JSONEq(t, string(record.Raw), raw)
	assert.Contains(t, raw, `"plan":"free"`)

	// Sobrevive a um "restart": nova instância sobre o mesmo arquivo
	again, _ := newStore(t, srv.URL+"/api", path)
	assert.True(t, again.IsLoggedIn())
}

func TestUpdateProfile_KeepsTokenWrittenByOtherStore(t *testing.T) {
	srv := fakeAPI(t, nil)
	path := filepath.Join(t.TempDir(), "session.json")
	b, _ := newStore(t, srv.URL+"/api", path)
	a, _ := newStore(t, srv.URL+"/api", path)

	_, err := a.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = b.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: "Ana Maria", Email: "ana@example.com"})
	require.NoError(t, err)

	reopened, err := localstore.Open(path, logger.NewNop())
	require.NoError(t, err)
	tok, ok := reopened.Get(session.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)
	user, _ := reopened.Get(session.KeyUser)
	assert.Contains(t, user, `"Ana Maria"`)
}

func TestLogin_InvalidCredentialsIsAuthError(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, _ := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))

	_, err := store.Login(context.Background(), "ana@example.com", "wrong!")

	var authErr *apperror.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.Equal(t, 401, apperror.StatusOf(err))
	assert.False(t, store.IsLoggedIn())
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	store, _ := newStore(t, url, filepath.Join(t.TempDir(), "s.json"))

	_, err := store.Login(context.Background(), "ana@example.com", "secret1")

	var netErr *apperror.NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.False(t, store.IsLoggedIn())
}

func TestRegister_WithoutTokenDoesNotPersist(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, _ := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))

	record, err := store.Register(context.Background(), domain.RegisterRequest{Name: "Bia", Email: "bia@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "Bia", record.User.Name)
	assert.False(t, store.IsLoggedIn())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestLogout_ClearsBothKeys(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, local := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))
	_, err := store.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	store.Logout()

	assert.False(t, store.IsLoggedIn())
	_, ok := local.Get(session.KeyUser)
	assert.False(t, ok)
	_, ok = store.CurrentUser()
	assert.False(t, ok)

	// Idempotente
	store.Logout()
	assert.False(t, store.IsLoggedIn())
}

func TestIsLoggedIn_DependsOnlyOnToken(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, local := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))

	require.NoError(t, local.Set(map[string]string{session.KeyUser: `{"name":"Ghost"}`}))
	assert.False(t, store.IsLoggedIn())

	require.NoError(t, local.Set(map[string]string{session.KeyToken: "opaque"}))
	require.NoError(t, local.Remove(session.KeyUser))
	assert.True(t, store.IsLoggedIn())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestProfile_SendsBearerAndDoesNotPersist(t *testing.T) {
	var auth string
	srv := fakeAPI(t, &auth)
	store, _ := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))
	_, err := store.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	user, err := store.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
	assert.Equal(t, "Ana Server", user.Name)
	current, _ := store.CurrentUser()
	assert.Equal(t, "Ana", current.Name)
}

func TestUpdateProfile_ReplacesUserRecord(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, local := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))
	_, err := store.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	user, err := store.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: "Ana Maria", Email: "ana@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)
	raw, _ := local.Get(session.KeyUser)
	// Substituição total: o campo "plan" do login não sobrevive
	assert.NotContains(t, raw, "plan")
	assert.Equal(t, "tok-1", store.Token())
}

func TestSubscribe_LocalEvents(t *testing.T) {
	srv := fakeAPI(t, nil)
	store, _ := newStore(t, srv.URL+"/api", filepath.Join(t.TempDir(), "s.json"))
	events, cancel := store.Subscribe()
	defer cancel()

	_, err := store.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	store.Logout()

	got := []session.Event{<-events, <-events, <-events, <-events}
	assert.Equal(t, session.Event{Key: session.KeyToken, Origin: session.OriginLocal}, got[0])
	assert.Equal(t, session.Event{Key: session.KeyUser, Origin: session.OriginLocal}, got[1])
	assert.True(t, got[2].Removed)
	assert.True(t, got[3].Removed)
}

func TestWatch_ExternalLogoutReachesSubscribers(t *testing.T) {
	srv := fakeAPI(t, nil)
	path := filepath.Join(t.TempDir(), "s.json")
	tabA, _ := newStore(t, srv.URL+"/api", path)
	_, err := tabA.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)

	// A segunda aba abre depois do login e já enxerga a sessão
	tabB, _ := newStore(t, srv.URL+"/api", path)
	require.True(t, tabB.IsLoggedIn())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tabB.Watch(ctx) }()
	events, unsubscribe := tabB.Subscribe()
	time.Sleep(100 * time.Millisecond)

	tabA.Logout()

	select {
	case ev := <-events:
		assert.Equal(t, session.OriginExternal, ev.Origin)
		assert.True(t, ev.Removed)
	case <-time.After(3 * time.Second):
		t.Fatal("logout da outra aba não foi observado")
	}
	assert.False(t, tabB.IsLoggedIn())

	cancel()
	require.NoError(t, <-done)
	unsubscribe()
}
