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

// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
var ErrInvalidRefreshToken = apperrors.Unauthorized("Invalid or expired refresh token")

// UserInput carries the fields of a new account.
type UserInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

// AuthResult is returned by every operation that issues a token.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// AuthService handles authentication and staff provisioning.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	// Register creates a USER account. The requested role is ignored.
	Register(ctx context.Context, in UserInput, requestedRole string) (*AuthResult, error)
	SaveOwner(ctx context.Context, actor auth.Identity, in UserInput) (*AuthResult, error)
	SaveManager(ctx context.Context, actor auth.Identity, in UserInput, restaurantUIDs []string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, actor auth.Identity, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	tx         repository.Transactor
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	log        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tx repository.Transactor,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		users:      users,
		tx:         tx,
		hasher:     hasher,
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        slog.Default().With("service", "auth"),
	}
}

// Login authenticates by email or phone. Every failure looks the same to the caller.
func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.InfoContext(ctx, "login rejected", "identifier", identifier, "reason", "unknown")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) || !user.Active {
		s.log.InfoContext(ctx, "login rejected", "identifier", identifier, "uid", user.UID)
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.UID, s.jwtService.RefreshExpiry()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.InfoContext(ctx, "login", "uid", user.UID, "role", user.Role)
	return &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (s *authService) Register(ctx context.Context, in UserInput, requestedRole string) (*AuthResult, error) {
	if r, ok := model.ParseRole(requestedRole); ok && r != model.RoleUser {
		s.log.WarnContext(ctx, "register requested elevated role", "email", in.Email, "requested", r)
	}

	user, err := s.createUser(ctx, s.users, in, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// SaveOwner creates an OWNER account. Only ADMIN may call it.
func (s *authService) SaveOwner(ctx context.Context, actor auth.Identity, in UserInput) (*AuthResult, error) {
	admin, err := resolveActor(ctx, s.users, actor)
	if err != nil {
		return nil, err
	}
	if admin.Role != model.RoleAdmin {
		return nil, apperrors.Unauthorized("Only administrators can create owners")
	}

	user, err := s.createUser(ctx, s.users, in, model.RoleOwner)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "owner created", "uid", user.UID, "by", admin.UID)
	return s.issue(user)
}

// SaveManager creates a MANAGER and assigns them to restaurants the calling
// OWNER owns. The user and its assignments are written in one transaction.
func (s *authService) SaveManager(ctx context.Context, actor auth.Identity, in UserInput, restaurantUIDs []string) (*AuthResult, error) {
	owner, err := resolveActor(ctx, s.users, actor)
	if err != nil {
		return nil, err
	}
	if owner.Role != model.RoleOwner {
		return nil, apperrors.ErrNotAnOwner
	}

	var manager *model.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		created, err := s.createUser(ctx, tx.Users, in, model.RoleManager)
		if err != nil {
			return err
		}

		seen := make(map[string]bool, len(restaurantUIDs))
		for _, uid := range restaurantUIDs {
			uid = strings.TrimSpace(uid)
			if uid == "" || seen[uid] {
				continue
			}
			seen[uid] = true

			restaurant, err := tx.Restaurants.FindByUID(ctx, uid)
			if err != nil {
				return notFound(err, "Restaurant not found with UID: "+uid, "find restaurant")
			}
			if !restaurant.OwnedBy(owner.UID) {
				return apperrors.ErrRestaurantNotOwned
			}

			assignment := &model.UserRestaurant{
				UserID:       created.ID,
				RestaurantID: restaurant.ID,
				Role:         model.RoleManager,
			}
			if err := tx.Assignments.Create(ctx, assignment); err != nil {
				return fmt.Errorf("assign restaurant: %w", err)
			}
		}

		manager = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "manager created", "uid", manager.UID, "by", owner.UID, "restaurants", len(restaurantUIDs))
	return s.issue(manager)
}

// Refresh exchanges a stored refresh token for a new access token carrying
// the user's current role.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	storedUID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUID != claims.Subject {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.FindByUID(ctx, storedUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if !user.Active {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes the refresh token, if given, and blacklists the caller's
// access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, actor auth.Identity, refreshToken string) error {
	if refreshToken != "" {
		tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
		if err != nil {
			return ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if actor.TokenID != "" {
		if err := s.tokenStore.BlacklistAccessToken(ctx, actor.TokenID, s.jwtService.AccessExpiry()); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}

	s.log.InfoContext(ctx, "logout", "uid", actor.UID)
	return nil
}

func (s *authService) createUser(ctx context.Context, users repository.UserRepository, in UserInput, role model.Role) (*model.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	switch {
	case fullName == "":
		return nil, apperrors.Validation("Full name is required")
	case email == "":
		return nil, apperrors.Validation("Email is required")
	case isBlank(in.Password):
		return nil, apperrors.Validation("Password is required")
	}
	phone := optionalPhone(in.Phone)
	if phone != nil && !model.ValidPhone(*phone) {
		return nil, apperrors.Validation("Invalid phone number")
	}

	// Login matches either column, so each value must be free in both.
	taken, err := users.ExistsByIdentifier(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if phone != nil {
		taken, err := users.ExistsByIdentifier(ctx, *phone)
		if err != nil {
			return nil, fmt.Errorf("check phone: %w", err)
		}
		if taken {
			return nil, apperrors.ErrPhoneAlreadyExists
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Email or phone already registered", err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}
