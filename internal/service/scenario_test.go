package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
)

func TestScenario_OwnerBuildsMenu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, UserInput{FullName: "Jane Doe", Email: "j@d.com", Password: "pw123456"}, "")
	require.NoError(t, err)
	login, err := env.auth.Login(ctx, "j@d.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, model.RoleUser, login.User.Role)

	ownerRes, err := env.auth.SaveOwner(ctx, env.admin(t), UserInput{FullName: "Olive", Email: "olive@d.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, ownerRes.User.Role)
	owner := auth.IdentityOf(ownerRes.User)

	cafe := env.restaurant(t, owner, "Cafe")
	assert.True(t, cafe.IsActive())
	drinks := env.category(t, owner, cafe.UID, "Drinks")
	tea, warnings, err := env.menuItems.Create(ctx, owner, MenuItemInput{
		CategoryUID: drinks.UID,
		Name:        "Tea",
		Price:       decimal.RequireFromString("1.5"),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	stranger := env.owner(t, "stranger@d.com")
	err = env.menuItems.Delete(ctx, stranger, tea.UID)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	stored, err := env.menuItems.GetByUID(ctx, tea.UID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive())
}
