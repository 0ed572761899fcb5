package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wb-service/portal/backend/internal/mocks"
	"github.com/wb-service/portal/backend/internal/service"
)

const testToken = "token-1"

type testEnv struct {
	router    *gin.Engine
	auth      *mocks.MockAuthService
	profiles  *mocks.MockProfileService
	birthdays *mocks.MockBirthdayService
	static    *mocks.MockStaticService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		auth:      new(mocks.MockAuthService),
		profiles:  new(mocks.MockProfileService),
		birthdays: new(mocks.MockBirthdayService),
		static:    new(mocks.MockStaticService),
	}
	env.auth.On("ValidateToken", mock.Anything, testToken).Return(int64(1), nil).Maybe()
	env.auth.On("ValidateToken", mock.Anything, mock.Anything).Return(int64(0), service.Unauthorized("invalid token")).Maybe()

	env.router = NewRouter(Deps{
		Profiles:    env.profiles,
		Birthdays:   env.birthdays,
		Static:      env.static,
		Auth:        env.auth,
		Logger:      zerolog.New(io.Discard),
		DefaultLang: LangRU,
	})

	t.Cleanup(func() {
		env.profiles.AssertExpectations(t)
		env.birthdays.AssertExpectations(t)
		env.static.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("healthy", func(t *testing.T) {
		router := NewRouter(Deps{Logger: zerolog.New(io.Discard), Health: func(context.Context) error { return nil }})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"healthy"`)
	})

	t.Run("database down", func(t *testing.T) {
		router := NewRouter(Deps{Logger: zerolog.New(io.Discard), Health: func(context.Context) error { return errors.New("connection refused") }})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "connection refused")
	})
}

func TestRoutesRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/profile/me"},
		{http.MethodPatch, "/api/v1/profile/me"},
		{http.MethodGet, "/api/v1/profile/log"},
		{http.MethodGet, "/api/v1/profiles/2"},
		{http.MethodGet, "/api/v1/birthday/upcoming"},
		{http.MethodPost, "/api/v1/static/add"},
		{http.MethodGet, "/api/v1/static/get?id=1"},
		{http.MethodDelete, "/api/v1/static/delete?id=1"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := env.do(req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}
