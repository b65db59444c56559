package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup aponta a CLI para uma API falsa e um arquivo de sessão temporário.
func setup(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"64b7f0c2a1e4d3b2c1a09f8e","name":"Ana","email":"ana@example.com","token":"tok-1"}`))
	})
	mux.HandleFunc("GET /api/recipes/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"64b7f0c2a1e4d3b2c1a09f8e","title":"Shakshuka","category":"Asian"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL+"/api")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecipeCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "recipe", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Chicken Curry [mock]")
	assert.Contains(t, out, "1. Heat oil and fry the onions until golden")

	_, err = run(t, "recipe", "999")
	assert.ErrorContains(t, err, "recipe not found")
}

func TestLoginWhoamiLogout(t *testing.T) {
	setup(t)

	out, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in\n", out)

	out, err = run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Ana\n", out)

	// Um novo processo lê a sessão do arquivo
	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Ana\n", out)

	_, err = run(t, "logout")
	require.NoError(t, err)
	out, _ = run(t, "whoami")
	assert.Equal(t, "Not logged in\n", out)
}

func TestLogin_ValidationError(t *testing.T) {
	setup(t)

	_, err := run(t, "login", "--email", "ana@example.com", "--password", "123")
	assert.EqualError(t, err, "Password must be at least 6 characters")
}

func TestExportCommand(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	_, err := run(t, "export", "--out", filepath.Join(dir, "mine.csv"))
	assert.ErrorContains(t, err, "not logged in")

	out, err := run(t, "export", "--catalog", "--out", filepath.Join(dir, "all.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 15 recipes")

	_, err = run(t, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	out, err = run(t, "export", "--out", filepath.Join(dir, "mine.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 recipes")

	data, err := os.ReadFile(filepath.Join(dir, "mine.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Shakshuka")
}

func TestWhoami_ExpiredToken(t *testing.T) {
	setup(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "64b7f0c2a1e4d3b2c1a09f8e",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("segredo-do-backend"))
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]string{
		"token": expired,
		"user":  `{"_id":"64b7f0c2a1e4d3b2c1a09f8e","name":"Ana","email":"ana@example.com"}`,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(os.Getenv("SESSION_FILE"), raw, 0o600))

	out, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ana")
	assert.Contains(t, out, "Token expired")
}
