package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
)

func TestUserService_EnsureRootUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := RootUser{Email: "root@test.local", Password: "root-pass", FullName: "Root", Phone: "0700"}

	first, created, err := env.users.EnsureRootUser(ctx, root)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleAdmin, first.Role)

	second, created, err := env.users.EnsureRootUser(ctx, root)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.UID, second.UID)

	res, err := env.auth.Login(ctx, "0700", "root-pass")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, res.User.Role)
}

func TestUserService_AdminOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)

	reg, err := env.auth.Register(ctx, UserInput{FullName: "J", Email: "j@d.com", Password: "pw123456"}, "")
	require.NoError(t, err)

	users, err := env.users.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	updated, err := env.users.UpdateUserRole(ctx, admin, reg.User.UID, "owner")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, updated.Role)

	_, err = env.users.UpdateUserRole(ctx, admin, reg.User.UID, "CHEF")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = env.users.UpdateUserRole(ctx, admin, "missing", "USER")
	assert.Equal(t, "User not found", err.Error())

	_, err = env.users.ChangeUserPassword(ctx, admin, reg.User.UID, " ")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = env.users.ChangeUserPassword(ctx, admin, reg.User.UID, "new-secret")
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, "j@d.com", "pw123456")
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	res, err := env.auth.Login(ctx, "j@d.com", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, res.User.Role)
}

func TestUserService_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.owner(t, "owner@y.com")

	_, err := env.users.ListUsers(ctx, owner)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	_, err = env.users.UpdateUserRole(ctx, owner, owner.UID, "ADMIN")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	me, err := env.users.Me(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "owner@y.com", me.Email)
}
