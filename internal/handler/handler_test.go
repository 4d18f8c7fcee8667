package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/catapp/backend/internal/config"
	"github.com/catapp/backend/internal/db"
	"github.com/catapp/backend/internal/model"
	"github.com/catapp/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	tokens map[int64]*model.Token
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string]*model.User{}, tokens: map[int64]*model.Token{}}
}

func (r *fakeAuthRepo) CreateUser(_ context.Context, loginID, passwordHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[loginID]; ok {
		return nil, db.ErrConflict
	}
	user := &model.User{ID: int64(len(r.users) + 1), LoginID: loginID, PasswordHash: passwordHash}
	r.users[loginID] = user
	return user, nil
}

func (r *fakeAuthRepo) GetUserByLoginID(_ context.Context, loginID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[loginID]; ok {
		return user, nil
	}
	return nil, db.ErrNotFound
}

func (r *fakeAuthRepo) GetTokenByKey(_ context.Context, key string) (*model.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.Key == key {
			copied := *token
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeAuthRepo) FetchOrRotateToken(_ context.Context, userID int64, freshKey string, now, staleBefore time.Time) (*model.Token, model.IssueOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := model.TokenCreated
	if existing, ok := r.tokens[userID]; ok {
		if !existing.CreatedAt.Before(staleBefore) {
			copied := *existing
			return &copied, model.TokenReused, nil
		}
		outcome = model.TokenRotated
	}
	token := &model.Token{Key: freshKey, UserID: userID, CreatedAt: now}
	r.tokens[userID] = token
	copied := *token
	return &copied, outcome, nil
}

func (r *fakeAuthRepo) DeleteTokenByUserID(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[userID]; !ok {
		return db.ErrNotFound
	}
	delete(r.tokens, userID)
	return nil
}

// seedToken stores a token for a fresh account created age ago.
func (r *fakeAuthRepo) seedToken(t *testing.T, loginID, key string, age time.Duration) {
	t.Helper()
	user, err := r.CreateUser(context.Background(), loginID, "unused")
	require.NoError(t, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[user.ID] = &model.Token{Key: key, UserID: user.ID, LoginID: loginID, CreatedAt: time.Now().Add(-age)}
}

type fakeHomes struct {
	homes map[int64]model.Home
	next  int64
}

func (f *fakeHomes) ListHomes(context.Context) ([]model.Home, error) {
	out := make([]model.Home, 0, len(f.homes))
	for _, h := range f.homes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHomes) GetHome(_ context.Context, id int64) (*model.Home, error) {
	h, ok := f.homes[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &h, nil
}

func (f *fakeHomes) CreateHome(ctx context.Context, in model.HomeInput) (*model.Home, error) {
	f.next++
	f.homes[f.next] = model.Home{ID: f.next}
	return f.UpdateHome(ctx, f.next, in)
}

func (f *fakeHomes) UpdateHome(_ context.Context, id int64, in model.HomeInput) (*model.Home, error) {
	if _, ok := f.homes[id]; !ok {
		return nil, db.ErrNotFound
	}
	h := model.Home{ID: id, Name: in.Name, Address: in.Address, Type: in.Type}
	h.Resolve()
	f.homes[id] = h
	return &h, nil
}

func (f *fakeHomes) DeleteHome(_ context.Context, id int64) error {
	if _, ok := f.homes[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.homes, id)
	return nil
}

type testServer struct {
	router *gin.Engine
	repo   *fakeAuthRepo
	homes  *fakeHomes
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithAuth(t, config.AuthConfig{TokenExpirySeconds: 86400, CookieSecure: "false"})
}

func newTestServerWithAuth(t *testing.T, cfg config.AuthConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeAuthRepo()
	auth, err := service.NewAuthService(repo, cfg)
	require.NoError(t, err)
	homes := &fakeHomes{homes: map[int64]model.Home{}}

	r := gin.New()
	r.Use(RequestLogger(nil))
	r.NoRoute(NotFound)
	RegisterRoutes(r, Services{
		Auth:  auth,
		Homes: service.NewHomeService(homes),
	})
	return &testServer{router: r, repo: repo, homes: homes}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddlewareResponses(t *testing.T) {
	srv := newTestServer(t)
	srv.repo.seedToken(t, "admin", "live-key", time.Hour)
	srv.repo.seedToken(t, "old", "stale-key", 25*time.Hour)

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantCode: "not_authenticated", wantDetail: "Authentication credentials were not provided."},
		{name: "wrong scheme", header: "Bearer live-key", wantStatus: http.StatusUnauthorized, wantCode: "authentication_failed", wantDetail: "Invalid token header."},
		{name: "key with spaces", header: "Token live key", wantStatus: http.StatusUnauthorized, wantCode: "authentication_failed", wantDetail: "Invalid token header."},
		{name: "unknown key", header: "Token nope", wantStatus: http.StatusUnauthorized, wantCode: "authentication_failed", wantDetail: "Invalid Token"},
		{name: "expired key", header: "Token stale-key", wantStatus: http.StatusUnauthorized, wantCode: "authentication_failed", wantDetail: "The Token is expired"},
		{name: "live key", header: "Token live-key", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			w := srv.do(http.MethodGet, "/api/v1/home", "", headers)
			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus != http.StatusUnauthorized {
				require.JSONEq(t, `[]`, w.Body.String())
				return
			}
			require.Equal(t, "Token", w.Header().Get("WWW-Authenticate"))
			resp := decodeError(t, w)
			require.Equal(t, tc.wantCode, resp.Error)
			require.Equal(t, tc.wantDetail, resp.Detail)
		})
	}

	_, err := srv.repo.GetTokenByKey(context.Background(), "stale-key")
	require.NoError(t, err, "authentication must not remove expired tokens")
}

func TestAuthMiddlewareSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	srv.repo.seedToken(t, "admin", "live-key", time.Minute)

	w := srv.do(http.MethodGet, "/api/v1/auth/me", "", map[string]string{"Cookie": "catapp_session=live-key"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userId": 1, "loginId": "admin"}`, w.Body.String())

	w = srv.do(http.MethodGet, "/api/v1/auth/me", "", map[string]string{
		"Cookie":        "catapp_session=live-key",
		"Authorization": "Token wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code, "header takes precedence over the cookie")
}

func TestObtainToken(t *testing.T) {
	srv := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = srv.repo.CreateUser(context.Background(), "admin", string(hash))
	require.NoError(t, err)

	w := srv.do(http.MethodPost, "/api-token-auth/", `{"username": "admin", "password": "secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first model.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Len(t, first.Token, 43)
	require.Equal(t, int64(86400), first.ExpiresIn)

	w = srv.do(http.MethodPost, "/api/v1/auth/token", `{"username": "admin", "password": "secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second model.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Equal(t, first.Token, second.Token)
	require.LessOrEqual(t, second.ExpiresIn, first.ExpiresIn)

	w = srv.do(http.MethodGet, "/api/v1/home", "", map[string]string{"Authorization": "Token " + first.Token})
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(http.MethodPost, "/api-token-auth/", `{"username": "admin", "password": "wrong"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, model.CodeAuthorization, resp.Fields[model.NonFieldErrors][0].Code)

	w = srv.do(http.MethodPost, "/api-token-auth/", `{"username": ""}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp = decodeError(t, w)
	require.Equal(t, model.CodeBlank, resp.Fields["username"][0].Code)
	require.Equal(t, model.CodeRequired, resp.Fields["password"][0].Code)
}

func TestLoginSetsSessionCookieAndRevoke(t *testing.T) {
	srv := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = srv.repo.CreateUser(context.Background(), "admin", string(hash))
	require.NoError(t, err)

	w := srv.do(http.MethodPost, "/api/v1/auth/login", `{"username": "admin", "password": "secret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 2)
	session := findCookie(t, w, "catapp_session")
	require.True(t, session.HttpOnly)
	csrf := findCookie(t, w, csrfCookieName)
	require.False(t, csrf.HttpOnly, "the CSRF cookie must be readable by scripts")
	require.NotEmpty(t, csrf.Value)
	require.Equal(t, csrf.Value, w.Header().Get(csrfHeader))
	key := session.Value

	cookies := "catapp_session=" + key + "; " + csrfCookieName + "=" + csrf.Value
	w = srv.do(http.MethodDelete, "/api/v1/auth/token", "", map[string]string{"Cookie": cookies})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodDelete, "/api/v1/auth/token", "", map[string]string{"Cookie": cookies, csrfHeader: csrf.Value})
	require.Equal(t, http.StatusNoContent, w.Code)
	for _, cookie := range w.Result().Cookies() {
		require.Negative(t, cookie.MaxAge, cookie.Name)
	}

	w = srv.do(http.MethodGet, "/api/v1/auth/me", "", map[string]string{"Authorization": "Token " + key})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid Token", decodeError(t, w).Detail)
}

func TestAuthConfigAndRegisterDisabled(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/v1/auth/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"allowSignup": false, "tokenExpiry": 86400}`, w.Body.String())

	w = srv.do(http.MethodPost, "/api/v1/auth/register", `{"username": "alice", "password": "pw"}`, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServerWithAuth(t, config.AuthConfig{TokenExpirySeconds: 86400, CookieSecure: "false", AllowSignup: "true"})

	w := srv.do(http.MethodPost, "/api/v1/auth/register", `{"username": "al", "password": "pw"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, model.CodeMinLength, resp.Fields["username"][0].Code)
	require.Equal(t, model.CodeMinLength, resp.Fields["password"][0].Code)

	long := strings.Repeat("p", 100)
	w = srv.do(http.MethodPost, "/api/v1/auth/register", `{"username": "alice", "password": "`+long+`"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, model.CodeMaxLength, decodeError(t, w).Fields["password"][0].Code)
	require.Empty(t, srv.repo.users)

	w = srv.do(http.MethodPost, "/api/v1/auth/register", `{"username": "alice", "password": "password1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, findCookie(t, w, "catapp_session").Value)

	w = srv.do(http.MethodPost, "/api/v1/auth/register", `{"username": "alice", "password": "password1"}`, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCookieWritesRequireCSRF(t *testing.T) {
	srv := newTestServer(t)
	srv.repo.seedToken(t, "admin", "live-key", time.Minute)
	body := `{"name": "pwned", "address": "x", "type": "LANDED"}`

	cases := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "cookie without csrf token",
			headers:    map[string]string{"Cookie": "catapp_session=live-key", "Origin": "https://evil.example.com"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "cookie as text/plain",
			headers:    map[string]string{"Cookie": "catapp_session=live-key", "Content-Type": "text/plain"},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "mismatched csrf token",
			headers: map[string]string{
				"Cookie":   "catapp_session=live-key; catapp_csrf=abc",
				csrfHeader: "xyz",
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "csrf header without cookie",
			headers: map[string]string{
				"Cookie":   "catapp_session=live-key",
				csrfHeader: "abc",
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "matching token but text/plain",
			headers: map[string]string{
				"Cookie":       "catapp_session=live-key; catapp_csrf=abc",
				csrfHeader:     "abc",
				"Content-Type": "text/plain",
			},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "authorization header as text/plain",
			headers:    map[string]string{"Authorization": "Token live-key", "Content-Type": "text/plain"},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name: "matching csrf token",
			headers: map[string]string{
				"Cookie":   "catapp_session=live-key; catapp_csrf=abc",
				csrfHeader: "abc",
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(http.MethodPost, "/api/v1/home", body, tc.headers)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
		})
	}
	require.Len(t, srv.homes.homes, 1)

	w := srv.do(http.MethodGet, "/api/v1/home", "", map[string]string{"Cookie": "catapp_session=live-key"})
	require.Equal(t, http.StatusOK, w.Code, "safe methods need no csrf token")
}

func TestHomeEndpoints(t *testing.T) {
	srv := newTestServer(t)
	srv.repo.seedToken(t, "admin", "live-key", time.Minute)
	auth := map[string]string{"Authorization": "Token live-key"}

	w := srv.do(http.MethodPost, "/api/v1/home", `{"name": "", "address": "", "type": ""}`, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, "invalid", resp.Error)
	for _, field := range []string{"name", "address", "type"} {
		require.Equal(t, model.CodeBlank, resp.Fields[field][0].Code, field)
	}

	w = srv.do(http.MethodPost, "/api/v1/home", `{"name": "My Home", "address": "My Address", "type": "BLABLA"}`, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, model.CodeInvalidChoice, decodeError(t, w).Fields["type"][0].Code)

	w = srv.do(http.MethodPost, "/api/v1/home", `{"name": "My Home", "address": "My Address", "type": "LANDED"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"id": 1, "url": "/api/v1/home/1", "name": "My Home", "address": "My Address", "type": "LANDED", "type_display": "Landed"}`, w.Body.String())

	w = srv.do(http.MethodPatch, "/api/v1/home/1", `{"type": "CONDO"}`, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var home model.Home
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &home))
	require.Equal(t, "Condominium", home.TypeDisplay)

	w = srv.do(http.MethodPut, "/api/v1/home/1", `{"name": "Office"}`, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, model.CodeRequired, decodeError(t, w).Fields["address"][0].Code)

	for _, path := range []string{"/api/v1/home/-2", "/api/v1/home/abc", "/api/v1/home/999"} {
		w = srv.do(http.MethodGet, path, "", auth)
		require.Equal(t, http.StatusNotFound, w.Code, path)
		resp := decodeError(t, w)
		require.Equal(t, "not_found", resp.Error)
		require.Equal(t, "Not found.", resp.Detail)
	}

	w = srv.do(http.MethodDelete, "/api/v1/home/1", "", auth)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, srv.homes.homes)

	w = srv.do(http.MethodDelete, "/api/v1/home/1", "", auth)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonObjectBody(t *testing.T) {
	srv := newTestServer(t)
	srv.repo.seedToken(t, "admin", "live-key", time.Minute)

	w := srv.do(http.MethodPost, "/api/v1/home", `["x"]`, map[string]string{"Authorization": "Token live-key"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, model.CodeInvalid, decodeError(t, w).Fields[model.NonFieldErrors][0].Code)
}

func TestPublicEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message": "pong"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = srv.do(http.MethodGet, "/ping", "", map[string]string{requestIDHeader: "req-1"})
	require.Equal(t, "req-1", w.Header().Get(requestIDHeader))

	w = srv.do(http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, path := range []string{
		"/api-token-auth/", "/api/v1/auth/token",
		"/api/v1/home", "/api/v1/home/{id}", "/api/v1/human", "/api/v1/human/{id}",
		"/api/v1/breed", "/api/v1/breed/{id}", "/api/v1/cat", "/api/v1/cat/{id}",
	} {
		require.Contains(t, paths, path)
	}

	w = srv.do(http.MethodGet, "/api/v1/home", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = srv.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "catapp_auth_authentications_total")

	w = srv.do(http.MethodGet, "/nowhere", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com", " "}, true))
	r.GET("/ping", Ping)

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
