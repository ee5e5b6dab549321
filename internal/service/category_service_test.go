package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartchakula/internal/errors"
)

func TestCategoryService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.owner(t, "owner@y.com")
	r := env.restaurant(t, owner, "Cafe")

	tests := []struct {
		name    string
		input   CategoryInput
		wantErr error
		wantMsg string
	}{
		{
			name:    "blank name",
			input:   CategoryInput{RestaurantUID: r.UID, Name: " "},
			wantErr: apperrors.ErrValidation,
			wantMsg: "Category name is required",
		},
		{
			name:    "blank restaurant",
			input:   CategoryInput{Name: "Drinks"},
			wantErr: apperrors.ErrValidation,
			wantMsg: "Restaurant UID is required",
		},
		{
			name:    "missing restaurant",
			input:   CategoryInput{RestaurantUID: "nope", Name: "Drinks"},
			wantErr: apperrors.ErrNotFound,
			wantMsg: "Restaurant not found with UID: nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := env.categories.Create(ctx, owner, tt.input)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	all, err := env.categories.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "failed creates persist nothing")
}

func TestCategoryService_OwnerScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.owner(t, "owner@y.com")
	other := env.owner(t, "other@y.com")
	r := env.restaurant(t, owner, "Cafe")

	_, err := env.categories.Create(ctx, other, CategoryInput{RestaurantUID: r.UID, Name: "Drinks"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, "You do not own this restaurant", err.Error())

	c := env.category(t, owner, r.UID, "Drinks")

	_, err = env.categories.Update(ctx, other, c.UID, CategoryInput{Name: "Mine"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.True(t, errors.Is(env.categories.Delete(ctx, other, c.UID), apperrors.ErrUnauthorized))

	updated, err := env.categories.Update(ctx, owner, c.UID, CategoryInput{Name: "Hot Drinks", Description: "Tea and coffee"})
	require.NoError(t, err)
	assert.Equal(t, "Hot Drinks", updated.Name)
	assert.Equal(t, r.UID, updated.Restaurant.UID)
}

func TestCategoryService_ManagerScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.owner(t, "owner@y.com")
	r := env.restaurant(t, owner, "Cafe")
	r2 := env.restaurant(t, owner, "Annex")
	manager := env.manager(t, owner, "m@y.com", r.UID)

	c, err := env.categories.Create(ctx, manager, CategoryInput{RestaurantUID: r.UID, Name: "Snacks"})
	require.NoError(t, err)
	require.NoError(t, env.categories.Delete(ctx, manager, c.UID))

	_, err = env.categories.Create(ctx, manager, CategoryInput{RestaurantUID: r2.UID, Name: "Snacks"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, "You are not assigned to this restaurant", err.Error())
}

func TestCategoryService_Reads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.owner(t, "owner@y.com")
	r1 := env.restaurant(t, owner, "One")
	r2 := env.restaurant(t, owner, "Two")
	drinks := env.category(t, owner, r1.UID, "Drinks")
	env.category(t, owner, r1.UID, "Food")
	env.category(t, owner, r2.UID, "Dessert")

	byRestaurant, err := env.categories.ListByRestaurant(ctx, r1.UID)
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 2)

	all, err := env.categories.ListByRestaurant(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 3, "blank restaurant uid lists every active category")

	require.NoError(t, env.categories.Delete(ctx, owner, drinks.UID))

	_, err = env.categories.GetByUID(ctx, drinks.UID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Category not found", err.Error())

	byRestaurant, err = env.categories.ListByRestaurant(ctx, r1.UID)
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 1)

	stored, err := env.repos.Categories.ListActive(ctx)
	require.NoError(t, err)
	for _, c := range stored {
		assert.NotEqual(t, drinks.UID, c.UID)
	}
}
