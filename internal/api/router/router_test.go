package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gorecipes/internal/api/page"
	"gorecipes/internal/api/recipe"
	"gorecipes/internal/api/router"
	"gorecipes/internal/api/user"
	"gorecipes/internal/pkg/logger"
	"gorecipes/internal/pkg/token"
)

type loggedOut struct{}

func (loggedOut) IsLoggedIn() bool             { return false }
func (loggedOut) Claims() (token.Claims, bool) { return token.Claims{}, false }

// Os handlers recebem serviços nil: as rotas testadas não chegam até eles.
func newRouter() http.Handler {
	log := logger.NewNop()
	return router.NewRouter(
		page.NewHandler(nil, nil, log),
		recipe.NewHandler(nil, log),
		user.NewHandler(nil, log),
		loggedOut{},
		router.RateLimit{},
		log,
	)
}

func TestPing(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestProtectedRoutes(t *testing.T) {
	tests := []struct {
		method, path string
		wantStatus   int
	}{
		{http.MethodGet, "/profile", http.StatusSeeOther},
		{http.MethodGet, "/add-recipe", http.StatusSeeOther},
		{http.MethodPost, "/add-recipe", http.StatusSeeOther},
		{http.MethodPost, "/v1/recipes", http.StatusUnauthorized},
		{http.MethodPut, "/v1/session/profile", http.StatusUnauthorized},
	}

	h := newRouter()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.wantStatus, rec.Code, tt.method+" "+tt.path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/recipes/newest", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/recipes/{id}")
}
