package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smartchakula/internal/auth"
	"smartchakula/internal/db"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
	"smartchakula/internal/service"
)

func newTestSeeder(t *testing.T) (*seeder, *model.User) {
	t.Helper()

	gdb, err := db.Open(db.DriverSQLite, ":memory:", db.Options{})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gdb))

	repos := repository.New(gdb)
	hasher := auth.BcryptHasher{Cost: bcrypt.MinCost}
	authorizer := policy.NewAuthorizer(repos.Restaurants, repos.Assignments)
	jwtService := auth.NewJWTService("seed-secret", time.Hour, time.Hour)

	root, _, err := service.NewUserService(repos.Users, hasher).EnsureRootUser(context.Background(), service.RootUser{
		Email:    "root@test.local",
		Password: "root-pass",
		FullName: "Root",
	})
	require.NoError(t, err)

	return &seeder{
		repos:       repos,
		auth:        service.NewAuthService(repos.Users, repos, hasher, jwtService, auth.NewTokenStore(nil)),
		restaurants: service.NewRestaurantService(repos, authorizer, nil, time.Minute),
		categories:  service.NewCategoryService(repos, authorizer),
		menuItems:   service.NewMenuItemService(repos, authorizer),
	}, root
}

func TestSeeder_EmbeddedFixtureIsIdempotent(t *testing.T) {
	fixture, err := parseFixture(bytes.NewReader(defaultFixture))
	require.NoError(t, err)
	require.Len(t, fixture.Owners, 2)

	s, root := newTestSeeder(t)
	ctx := context.Background()

	counts, err := s.run(ctx, root, fixture)
	require.NoError(t, err)
	assert.Equal(t, Counts{Owners: 2, Restaurants: 2, Categories: 3, MenuItems: 6}, counts)

	restaurants, err := s.repos.Restaurants.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, restaurants, 2)
	for _, r := range restaurants {
		require.NotNil(t, r.Owner)
		assert.Equal(t, model.RoleOwner, r.Owner.Role)
	}

	again := &seeder{
		repos:       s.repos,
		auth:        s.auth,
		restaurants: s.restaurants,
		categories:  s.categories,
		menuItems:   s.menuItems,
	}
	counts, err = again.run(ctx, root, fixture)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)

	items, err := s.repos.MenuItems.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 6)
}

func TestSeeder_RejectsInvalidItem(t *testing.T) {
	s, root := newTestSeeder(t)

	fixture, err := parseFixture(bytes.NewReader([]byte(`{"owners":[{"fullName":"O","email":"o@x.com","password":"pw123456",
		"restaurants":[{"name":"R","categories":[{"name":"C","items":[{"name":"Free","price":"0"}]}]}]}]}`)))
	require.NoError(t, err)

	_, err = s.run(context.Background(), root, fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Valid price is required")
}

func TestFetchFixture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixture.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(defaultFixture)
	}))
	defer srv.Close()

	fixture, err := fetchFixture(srv.URL + "/fixture.json")
	require.NoError(t, err)
	assert.Equal(t, "Amani Mwangi", fixture.Owners[0].FullName)
	assert.Equal(t, "450", fixture.Owners[0].Restaurants[0].Categories[0].Items[0].Price.String())

	_, err = fetchFixture(srv.URL + "/missing")
	assert.Error(t, err)
}
