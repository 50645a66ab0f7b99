package akiba

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/akiba-auth/internal/http/middlewarectx"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/jwt"
	"github.com/magabrotheeeer/akiba-auth/internal/lib/password"
	"github.com/magabrotheeeer/akiba-auth/internal/models"
	"github.com/magabrotheeeer/akiba-auth/internal/services/auth"
	"github.com/magabrotheeeer/akiba-auth/internal/storage"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memoryUsers) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return nil, storage.ErrDuplicateEmail
	}
	user.UUID = uuid.NewString()
	user.RegisteredAt = time.Now().UTC()
	m.users[user.Email] = user
	return &user, nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *prometheus.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := jwt.NewJWTMaker("test_secret_key", "HS256", 30*time.Minute)
	require.NoError(t, err)

	svc := auth.NewAuthService(
		&memoryUsers{users: make(map[string]models.User)},
		nil,
		password.New(bcrypt.MinCost),
		tokens,
		nil,
		time.Minute,
		logger,
	)

	reg := prometheus.NewRegistry()
	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, middlewarectx.NewMetrics(reg), nil)
	return router, reg
}

func TestRoutes_RegisterLoginMe(t *testing.T) {
	router, _ := newTestRouter(t)

	// регистрация через форму
	values := url.Values{
		"firstname": {"Jane"},
		"lastname":  {"Doe"},
		"email":     {"jane@x.com"},
		"password":  {"secret1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// повторная регистрация
	req = httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"firstname":"Jane","lastname":"Doe","email":"jane@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":"Error","errors":["User already exists!"]}`, rec.Body.String())

	// вход
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"jane@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Data models.AccessToken `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loginResp))
	assert.Equal(t, "bearer", loginResp.Data.TokenType)
	require.NotEmpty(t, loginResp.Data.AccessToken)

	// текущий пользователь
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var meResp struct {
		Data models.UserProfile `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meResp))
	assert.Equal(t, "jane@x.com", meResp.Data.Email)
	assert.Equal(t, "Jane", meResp.Data.Firstname)
	assert.NotEmpty(t, meResp.Data.UUID)
}

func TestRoutes_RegisterMultipartThenLowercaseBearer(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"firstname": "Jane",
		"lastname":  "Doe",
		"email":     "jane@x.com",
		"password":  "secret1",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	values := url.Values{"username": {"jane@x.com"}, "password": {"secret1"}}
	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var token models.AccessToken
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&token))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_RegisterPasswordOverByteLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	values := url.Values{
		"firstname": {"Jane"},
		"lastname":  {"Doe"},
		"email":     {"jane@x.com"},
		"password":  {strings.Repeat("é", 40)},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"status":"Error","errors":["Password must be at most 72 bytes"]}`, rec.Body.String())
}

func TestRoutes_TokenGrant(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"firstname":"Jane","lastname":"Doe","email":"jane@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name     string
		password string
		wantCode int
	}{
		{name: "correct password", password: "secret1", wantCode: http.StatusOK},
		{name: "wrong password", password: "nope!", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"grant_type": {"password"}, "username": {"jane@x.com"}, "password": {tt.password}}
			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRoutes_MeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_ServiceEndpoints(t *testing.T) {
	router, reg := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/register")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "akiba_http_requests_total")
}
