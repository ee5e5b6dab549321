package router

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

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartchakula/internal/auth"
	"smartchakula/internal/config"
	"smartchakula/internal/db"
	"smartchakula/internal/handler"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
	"smartchakula/internal/service"
)

type blacklistStore struct {
	mu      sync.Mutex
	refresh map[string]string
	revoked map[string]bool
}

func (s *blacklistStore) StoreRefreshToken(_ context.Context, tokenID, userUID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[tokenID] = userUID
	return nil
}

func (s *blacklistStore) GetRefreshToken(_ context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.refresh[tokenID]
	if !ok {
		return "", assert.AnError
	}
	return uid, nil
}

func (s *blacklistStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, tokenID)
	return nil
}

func (s *blacklistStore) BlacklistAccessToken(_ context.Context, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = true
	return nil
}

func (s *blacklistStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[tokenID], nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := db.Open(db.DriverSQLite, ":memory:", db.Options{})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repos := repository.New(gdb)
	hasher := auth.BcryptHasher{Cost: bcrypt.MinCost}
	jwtService := auth.NewJWTService("router-secret", time.Hour, 24*time.Hour)
	tokens := &blacklistStore{refresh: map[string]string{}, revoked: map[string]bool{}}
	authorizer := policy.NewAuthorizer(repos.Restaurants, repos.Assignments)

	users := service.NewUserService(repos.Users, hasher)
	_, _, err = users.EnsureRootUser(context.Background(), service.RootUser{
		Email:    "root@test.local",
		Password: "root-pass",
		FullName: "Root",
	})
	require.NoError(t, err)

	e := echo.New()
	Register(e, &config.Config{}, jwtService, tokens, Handlers{
		Auth:        handler.NewAuthHandler(service.NewAuthService(repos.Users, repos, hasher, jwtService, tokens)),
		Users:       handler.NewUserHandler(users),
		Restaurants: handler.NewRestaurantHandler(service.NewRestaurantService(repos, authorizer, nil, time.Minute)),
		Categories:  handler.NewCategoryHandler(service.NewCategoryService(repos, authorizer)),
		MenuItems:   handler.NewMenuItemHandler(service.NewMenuItemService(repos, authorizer)),
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

// ok sends the request and expects a Success envelope.
func (s *testServer) ok(method, path, token string, body interface{}, dst interface{}) envelope {
	s.t.Helper()
	code, env := s.do(method, path, token, body)
	require.Equal(s.t, http.StatusOK, code)
	require.Equal(s.t, "Success", env.Status, env.Message)
	if dst != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func (s *testServer) login(identifier, password string) handler.AuthView {
	s.t.Helper()
	var view handler.AuthView
	s.ok(http.MethodPost, "/api/auth/login", "", map[string]string{"identifier": identifier, "password": password}, &view)
	return view
}

func TestRouter_Healthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_OwnerScenario(t *testing.T) {
	s := newTestServer(t)

	s.ok(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Jane Doe", "email": "j@d.com", "password": "pw123456", "role": "ADMIN",
	}, nil)
	jane := s.login("j@d.com", "pw123456")
	assert.NotEmpty(t, jane.Token)
	assert.Equal(t, "USER", jane.User.Role)

	root := s.login("root@test.local", "root-pass")
	var owner handler.AuthView
	s.ok(http.MethodPost, "/api/auth/owners", root.Token, map[string]string{
		"fullName": "Olive", "email": "olive@d.com", "password": "pw123456",
	}, &owner)
	assert.Equal(t, "OWNER", owner.User.Role)

	ownerToken := s.login("olive@d.com", "pw123456").Token

	var cafe handler.RestaurantView
	s.ok(http.MethodPost, "/api/restaurants", ownerToken, map[string]interface{}{
		"ownerUid": owner.User.UID, "name": "Cafe",
	}, &cafe)
	assert.True(t, cafe.IsActive)
	assert.False(t, cafe.IsDeleted)
	assert.True(t, cafe.IsOpen)

	var drinks handler.CategoryView
	s.ok(http.MethodPost, "/api/categories", ownerToken, map[string]string{
		"restaurantUid": cafe.UID, "name": "Drinks",
	}, &drinks)

	var tea handler.MenuItemView
	s.ok(http.MethodPost, "/api/menu-items", ownerToken, map[string]interface{}{
		"categoryUid": drinks.UID, "name": "Tea", "price": 1.5,
	}, &tea)
	assert.Equal(t, 1.5, tea.Price)
	assert.True(t, tea.IsAvailable)
	assert.Equal(t, cafe.UID, tea.RestaurantUID)

	s.ok(http.MethodPost, "/api/auth/owners", root.Token, map[string]string{
		"fullName": "Sam", "email": "sam@d.com", "password": "pw123456",
	}, nil)
	stranger := s.login("sam@d.com", "pw123456").Token

	code, env := s.do(http.MethodDelete, "/api/menu-items/"+tea.UID, stranger, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "You do not own this restaurant", env.Message)

	var items []handler.MenuItemView
	s.ok(http.MethodGet, "/api/restaurants/"+cafe.UID+"/menu-items", "", nil, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].Name)
}

func TestRouter_MenuItemWarning(t *testing.T) {
	s := newTestServer(t)
	root := s.login("root@test.local", "root-pass")

	var owner handler.AuthView
	s.ok(http.MethodPost, "/api/auth/owners", root.Token, map[string]string{
		"fullName": "Olive", "email": "olive@d.com", "password": "pw123456",
	}, &owner)
	var cafe handler.RestaurantView
	s.ok(http.MethodPost, "/api/restaurants", owner.Token, map[string]interface{}{"ownerUid": owner.User.UID, "name": "Cafe"}, &cafe)
	var drinks handler.CategoryView
	s.ok(http.MethodPost, "/api/categories", owner.Token, map[string]string{"restaurantUid": cafe.UID, "name": "Drinks"}, &drinks)

	code, env := s.do(http.MethodPost, "/api/menu-items", owner.Token, map[string]interface{}{
		"categoryUid": drinks.UID, "name": "Tea", "price": "2.00", "description": strings.Repeat("d", 300),
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Warning", env.Status)
	assert.Equal(t, "Menu item saved successfully. Description truncated to 255 characters.", env.Message)

	var item handler.MenuItemView
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Len(t, item.Description, 255)

	_, env = s.do(http.MethodPost, "/api/menu-items", owner.Token, map[string]interface{}{
		"categoryUid": drinks.UID, "name": "Free", "price": 0,
	})
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Valid price is required", env.Message)
}

func TestRouter_AuthFailuresAreEnvelopes(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Error", env.Status)
	assert.Contains(t, env.Message, "Unauthorized")

	_, env = s.do(http.MethodGet, "/api/me", "not-a-jwt", nil)
	assert.Equal(t, "Error", env.Status)

	s.ok(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Jane", "email": "j@d.com", "password": "pw123456",
	}, nil)
	user := s.login("j@d.com", "pw123456")

	_, env = s.do(http.MethodPost, "/api/restaurants", user.Token, map[string]string{"name": "Nope"})
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Unauthorized: insufficient role", env.Message)

	_, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"identifier": "j@d.com", "password": "wrong"})
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestRouter_LogoutRevokesAccessToken(t *testing.T) {
	s := newTestServer(t)
	root := s.login("root@test.local", "root-pass")

	var me handler.UserView
	s.ok(http.MethodGet, "/api/me", root.Token, nil, &me)
	assert.Equal(t, "ADMIN", me.Role)

	var refreshed handler.AuthView
	s.ok(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": root.RefreshToken}, &refreshed)
	assert.NotEmpty(t, refreshed.Token)

	s.ok(http.MethodPost, "/api/auth/logout", root.Token, map[string]string{"refreshToken": root.RefreshToken}, nil)

	_, env := s.do(http.MethodGet, "/api/me", root.Token, nil)
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Unauthorized: token has been revoked", env.Message)

	_, env = s.do(http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": root.RefreshToken})
	assert.Equal(t, "Error", env.Status)

	s.ok(http.MethodGet, "/api/me", refreshed.Token, nil, nil)

	for _, path := range []string{"/api/me", "/api/users"} {
		_, env = s.do(http.MethodGet, path, root.RefreshToken, nil)
		assert.Equal(t, "Error", env.Status, path)
		assert.Equal(t, "Unauthorized: invalid or missing token", env.Message, path)
	}
}

func TestRouter_RefreshTokenIsNotABearerToken(t *testing.T) {
	s := newTestServer(t)
	root := s.login("root@test.local", "root-pass")

	_, env := s.do(http.MethodGet, "/api/users", root.RefreshToken, nil)
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Unauthorized: invalid or missing token", env.Message)

	s.ok(http.MethodGet, "/api/users", root.Token, nil, nil)
}

func TestRouter_PhoneCannotShadowEmail(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Mallory", "email": "m@d.com", "password": "attacker99", "phone": "j@d.com",
	})
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "phone must be a phone number", env.Message)

	s.ok(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Jane", "email": "j@d.com", "password": "pw123456", "phone": "+254712345678",
	}, nil)
	jane := s.login("j@d.com", "pw123456")
	assert.Equal(t, "Jane", jane.User.FullName)
	assert.Equal(t, "Jane", s.login("+254712345678", "pw123456").User.FullName)
}

func TestRouter_RequestProblems(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/auth/login", "", "{not json")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Failure", env.Status)

	_, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bad"})
	assert.Equal(t, "Error", env.Status)
	assert.Contains(t, env.Message, "fullName is required")

	code, env = s.do(http.MethodGet, "/api/restaurants", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Success", env.Status)
	assert.JSONEq(t, "[]", string(env.Data))

	_, env = s.do(http.MethodGet, "/api/restaurants/missing", "", nil)
	assert.Equal(t, "Error", env.Status)
	assert.Equal(t, "Restaurant not found", env.Message)

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
