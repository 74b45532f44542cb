package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/pkg/hash"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	F     *testutil.Fixture
	Ready error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	pw, err := hash.HashPassword("123456")
	require.NoError(t, err)

	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	auth := &service.AuthService{
		Repo:          r,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}

	env := &testEnv{T: t, E: echo.New(), F: testutil.Seed(t, db, pw)}
	Register(env.E, &Deps{
		CategoryHandler: &CategoryHTTP{Svc: &service.CategoryService{Repo: r, Events: events.Nop{}}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: r, Index: search.Nop{}, Events: events.Nop{}}},
		LocationHandler: &LocationHTTP{Svc: &service.LocationService{Repo: r}},
		ClientHandler:   &ClientHTTP{Svc: &service.ClientService{Repo: r, Events: events.Nop{}, ImgSize: 50, ImgPrefix: "cp"}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events.Nop{}}},
		AuthHandler:     &AuthHTTP{Svc: auth},
		JWTSecret:       auth.AccessSecret,
		Refresher:       auth,
		Ready:           func(context.Context) error { return env.Ready },
	})
	return env
}

func (e *testEnv) doJSONRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.E.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(email string) (string, string) {
	e.T.Helper()
	rec := e.doJSONRequest(http.MethodPost, "/login", map[string]string{"email": email, "password": "123456"}, "")
	require.Equal(e.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(e.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(e.T, resp.AccessToken)
	return resp.AccessToken, resp.RefreshToken
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/ready", nil, "").Code)

	env.Ready = errors.New("db down")
	assert.Equal(t, http.StatusServiceUnavailable, env.doJSONRequest(http.MethodGet, "/health/ready", nil, "").Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/login", map[string]string{"email": "maria@example.com", "password": "nope"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, 401, body.Status)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, "/login", body.Path)
}

func TestRefreshToken_FromBody(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.login("maria@example.com")

	rec := env.doJSONRequest(http.MethodPost, "/auth/refresh_token", map[string]string{"refresh_token": refresh}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderAuthorization), "Bearer ")

	rec = env.doJSONRequest(http.MethodPost, "/auth/refresh_token", map[string]string{"refresh_token": refresh}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.login("maria@example.com")

	rec := env.doJSONRequest(http.MethodPost, "/logout", map[string]string{"refresh_token": refresh}, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/auth/refresh_token", map[string]string{"refresh_token": refresh}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgot_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/auth/forgot", map[string]string{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Email not found", decodeError(t, rec).Message)

	rec = env.doJSONRequest(http.MethodPost, "/auth/forgot", map[string]string{"email": "maria@example.com"}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
