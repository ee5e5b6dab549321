package handler

import (
	"github.com/labstack/echo/v4"

	"smartchakula/internal/response"
	"smartchakula/internal/service"
)

// AuthHandler handles authentication and staff provisioning endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request. Identifier is an email or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RegisterRequest represents a self-registration request.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Role     string `json:"role"`
}

// SaveOwnerRequest represents an owner provisioning request.
type SaveOwnerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
}

// SaveManagerRequest represents a manager provisioning request.
type SaveManagerRequest struct {
	FullName       string   `json:"fullName" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Phone          string   `json:"phone" validate:"omitempty,phone"`
	RestaurantUIDs []string `json:"restaurantUids"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login godoc
// @Summary Login with email or phone
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Envelope{data=AuthView}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return reply(c, response.FromError("Failed to login", err))
	}
	return reply(c, response.Success("Login successful", authView(result)))
}

// Register godoc
// @Summary Register a new user
// @Description The account always gets role USER.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} response.Envelope{data=AuthView}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	result, err := h.authService.Register(c.Request().Context(), service.UserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, req.Role)
	if err != nil {
		return reply(c, response.FromError("Failed to register", err))
	}
	return reply(c, response.Success("Registration successful", authView(result)))
}

// SaveOwner godoc
// @Summary Create an owner account
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveOwnerRequest true "Owner data"
// @Success 200 {object} response.Envelope{data=AuthView}
// @Router /auth/owners [post]
func (h *AuthHandler) SaveOwner(c echo.Context) error {
	var req SaveOwnerRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	result, err := h.authService.SaveOwner(c.Request().Context(), identity(c), service.UserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return reply(c, response.FromError("Failed to create owner", err))
	}
	return reply(c, response.Success("Owner created successfully", authView(result)))
}

// SaveManager godoc
// @Summary Create a manager assigned to the caller's restaurants
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveManagerRequest true "Manager data"
// @Success 200 {object} response.Envelope{data=AuthView}
// @Router /auth/managers [post]
func (h *AuthHandler) SaveManager(c echo.Context) error {
	var req SaveManagerRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	result, err := h.authService.SaveManager(c.Request().Context(), identity(c), service.UserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, req.RestaurantUIDs)
	if err != nil {
		return reply(c, response.FromError("Failed to create manager", err))
	}
	return reply(c, response.Success("Manager created successfully", authView(result)))
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Envelope{data=AuthView}
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return reply(c, response.FromError("Failed to refresh token", err))
	}
	return reply(c, response.Success("Token refreshed successfully", AuthView{Token: accessToken}))
}

// Logout godoc
// @Summary Logout and revoke tokens
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	if err := h.authService.Logout(c.Request().Context(), identity(c), req.RefreshToken); err != nil {
		return reply(c, response.FromError("Failed to logout", err))
	}
	return reply(c, response.Success("Logged out successfully", nil))
}

func authView(r *service.AuthResult) AuthView {
	return AuthView{
		Token:        r.AccessToken,
		RefreshToken: r.RefreshToken,
		User:         userView(r.User),
	}
}
