package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gorecipes/internal/api/user"
	"gorecipes/internal/domain"
	apperror "gorecipes/internal/errors"
	"gorecipes/internal/pkg/logger"
)

// MockUserService é uma implementação mock do serviço de usuário.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, req domain.LoginRequest) (domain.SessionRecord, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SessionRecord), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.SessionRecord, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SessionRecord), args.Error(1)
}

func (m *MockUserService) Logout() { m.Called() }

func (m *MockUserService) Current() (domain.User, bool) {
	args := m.Called()
	return args.Get(0).(domain.User), args.Bool(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())
	creds := domain.LoginRequest{Email: "ana@example.com", Password: "secret1"}
	svc.On("Login", mock.Anything, creds).
		Return(domain.SessionRecord{Token: "tok-1", User: domain.User{Name: "Ana"}}, nil)

	rec := httptest.NewRecorder()
	h.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/session/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret1"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "tok-1")
	var got user.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.LoggedIn)
	assert.Equal(t, "Ana", got.User.Name)
}

func TestLoginHandler_Rejected(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())
	svc.On("Login", mock.Anything, mock.Anything).
		Return(domain.SessionRecord{}, apperror.NewAuthError(apperror.NewHTTPError(401, nil, "Invalid credentials")))

	rec := httptest.NewRecorder()
	h.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/session/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong12"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"AUTH_ERROR"`)
}

func TestRegisterHandler_NoTokenMeansLoggedOut(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())
	svc.On("Register", mock.Anything, mock.Anything).
		Return(domain.SessionRecord{User: domain.User{Name: "Ana"}}, nil)

	rec := httptest.NewRecorder()
	h.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/session/register",
		strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"logged_in":false}`, rec.Body.String())
}

func TestLogoutAndCurrent(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())
	svc.On("Logout").Return()
	svc.On("Current").Return(domain.User{}, false)

	rec := httptest.NewRecorder()
	h.LogoutHandler(rec, httptest.NewRequest(http.MethodDelete, "/v1/session", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.CurrentHandler(rec, httptest.NewRequest(http.MethodGet, "/v1/session", nil))
	assert.JSONEq(t, `{"logged_in":false}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdateProfileHandler(t *testing.T) {
	svc := new(MockUserService)
	h := user.NewHandler(svc, logger.NewNop())
	update := domain.ProfileUpdate{Name: "Ana B", Email: "ana@example.com"}
	svc.On("UpdateProfile", mock.Anything, update).Return(domain.User{Name: "Ana B", Email: "ana@example.com"}, nil)

	rec := httptest.NewRecorder()
	h.UpdateProfileHandler(rec, httptest.NewRequest(http.MethodPut, "/v1/session/profile",
		strings.NewReader(`{"name":"Ana B","email":"ana@example.com"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ana B"`)
}
