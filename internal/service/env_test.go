package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartchakula/internal/auth"
	"smartchakula/internal/db"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
)

// memoryTokenStore keeps tokens in process so refresh and logout can be
// exercised without redis.
type memoryTokenStore struct {
	mu          sync.Mutex
	refresh     map[string]string
	blacklisted map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{refresh: map[string]string{}, blacklisted: map[string]bool{}}
}

func (m *memoryTokenStore) StoreRefreshToken(_ context.Context, tokenID, userUID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[tokenID] = userUID
	return nil
}

func (m *memoryTokenStore) GetRefreshToken(_ context.Context, tokenID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.refresh[tokenID]
	if !ok {
		return "", fmt.Errorf("refresh token not found")
	}
	return uid, nil
}

func (m *memoryTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, tokenID)
	return nil
}

func (m *memoryTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklisted[tokenID] = true
	return nil
}

func (m *memoryTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blacklisted[tokenID], nil
}

type testEnv struct {
	repos       *repository.Repositories
	jwt         *auth.JWTService
	tokens      *memoryTokenStore
	auth        AuthService
	users       UserService
	restaurants RestaurantService
	categories  CategoryService
	menuItems   MenuItemService
}

func newTestEnv(t *testing.T) *testEnv {
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
	jwtService := auth.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	tokens := newMemoryTokenStore()
	authorizer := policy.NewAuthorizer(repos.Restaurants, repos.Assignments)

	return &testEnv{
		repos:       repos,
		jwt:         jwtService,
		tokens:      tokens,
		auth:        NewAuthService(repos.Users, repos, hasher, jwtService, tokens),
		users:       NewUserService(repos.Users, hasher),
		restaurants: NewRestaurantService(repos, authorizer, nil, time.Minute),
		categories:  NewCategoryService(repos, authorizer),
		menuItems:   NewMenuItemService(repos, authorizer),
	}
}

func (e *testEnv) admin(t *testing.T) auth.Identity {
	t.Helper()
	user, _, err := e.users.EnsureRootUser(context.Background(), RootUser{
		Email:    "root@test.local",
		Password: "root-pass",
		FullName: "Root",
	})
	require.NoError(t, err)
	return auth.IdentityOf(user)
}

func (e *testEnv) owner(t *testing.T, email string) auth.Identity {
	t.Helper()
	res, err := e.auth.SaveOwner(context.Background(), e.admin(t), UserInput{
		FullName: "Owner " + email,
		Email:    email,
		Password: "owner-pass",
	})
	require.NoError(t, err)
	return auth.IdentityOf(res.User)
}

func (e *testEnv) manager(t *testing.T, owner auth.Identity, email string, restaurantUIDs ...string) auth.Identity {
	t.Helper()
	res, err := e.auth.SaveManager(context.Background(), owner, UserInput{
		FullName: "Manager " + email,
		Email:    email,
		Password: "manager-pass",
	}, restaurantUIDs)
	require.NoError(t, err)
	return auth.IdentityOf(res.User)
}

func (e *testEnv) restaurant(t *testing.T, owner auth.Identity, name string) *model.Restaurant {
	t.Helper()
	r, err := e.restaurants.Create(context.Background(), owner, RestaurantInput{OwnerUID: owner.UID, Name: &name})
	require.NoError(t, err)
	return r
}

func (e *testEnv) category(t *testing.T, actor auth.Identity, restaurantUID, name string) *model.Category {
	t.Helper()
	c, err := e.categories.Create(context.Background(), actor, CategoryInput{RestaurantUID: restaurantUID, Name: name})
	require.NoError(t, err)
	return c
}

func (e *testEnv) menuItem(t *testing.T, actor auth.Identity, categoryUID, name, price string) *model.MenuItem {
	t.Helper()
	item, _, err := e.menuItems.Create(context.Background(), actor, MenuItemInput{
		CategoryUID: categoryUID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return item
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
