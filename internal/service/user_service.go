package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/repository"
)

// RootUser describes the bootstrap ADMIN account.
type RootUser struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// UserService handles account administration.
type UserService interface {
	Me(ctx context.Context, actor auth.Identity) (*model.User, error)
	ListUsers(ctx context.Context, actor auth.Identity) ([]model.User, error)
	UpdateUserRole(ctx context.Context, actor auth.Identity, uid, role string) (*model.User, error)
	ChangeUserPassword(ctx context.Context, actor auth.Identity, uid, newPassword string) (*model.User, error)
	// EnsureRootUser creates the ADMIN account unless a user with its email exists.
	EnsureRootUser(ctx context.Context, root RootUser) (*model.User, bool, error)
}

type userService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	log    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		log:    slog.Default().With("service", "user"),
	}
}

func (s *userService) Me(ctx context.Context, actor auth.Identity) (*model.User, error) {
	return resolveActor(ctx, s.users, actor)
}

func (s *userService) ListUsers(ctx context.Context, actor auth.Identity) ([]model.User, error) {
	if _, err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, actor auth.Identity, uid, role string) (*model.User, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	newRole, ok := model.ParseRole(role)
	if !ok {
		return nil, apperrors.Validation("Invalid role: " + role)
	}

	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "User not found", "find user")
	}

	user.Role = newRole
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.InfoContext(ctx, "role changed", "uid", user.UID, "role", newRole, "by", admin.UID)
	return user, nil
}

func (s *userService) ChangeUserPassword(ctx context.Context, actor auth.Identity, uid, newPassword string) (*model.User, error) {
	admin, err := s.requireAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	if isBlank(newPassword) {
		return nil, apperrors.Validation("Password is required")
	}

	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "User not found", "find user")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.InfoContext(ctx, "password reset", "uid", user.UID, "by", admin.UID)
	return user, nil
}

func (s *userService) EnsureRootUser(ctx context.Context, root RootUser) (*model.User, bool, error) {
	email := strings.TrimSpace(root.Email)
	if email == "" || root.Password == "" {
		return nil, false, apperrors.Validation("Root email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find root user: %w", err)
	}

	hash, err := s.hasher.Hash(root.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		FullName:     root.FullName,
		Email:        email,
		Phone:        optionalPhone(root.Phone),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create root user: %w", err)
	}
	s.log.InfoContext(ctx, "root user created", "uid", user.UID, "email", email)
	return user, true, nil
}

func (s *userService) requireAdmin(ctx context.Context, actor auth.Identity) (*model.User, error) {
	user, err := resolveActor(ctx, s.users, actor)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleAdmin {
		return nil, apperrors.Unauthorized("Administrator role required")
	}
	return user, nil
}
