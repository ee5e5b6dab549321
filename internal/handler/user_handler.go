package handler

import (
	"github.com/labstack/echo/v4"

	"smartchakula/internal/response"
	"smartchakula/internal/service"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateRoleRequest represents a role change.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN OWNER MANAGER USER admin owner manager user"`
}

// ChangePasswordRequest represents an administrative password reset.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=UserView}
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userService.Me(c.Request().Context(), identity(c))
	if err != nil {
		return reply(c, response.FromError("Failed to fetch user", err))
	}
	return reply(c, response.Success("User fetched successfully", userView(user)))
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]UserView}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context(), identity(c))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch users", err))
	}
	return reply(c, response.List("Users fetched successfully", userViews(users)))
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User UID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} response.Envelope{data=UserView}
// @Router /users/{uid}/role [put]
func (h *UserHandler) UpdateUserRole(c echo.Context) error {
	var req UpdateRoleRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	user, err := h.userService.UpdateUserRole(c.Request().Context(), identity(c), c.Param("uid"), req.Role)
	if err != nil {
		return reply(c, response.FromError("Failed to update user role", err))
	}
	return reply(c, response.Success("User role updated successfully", userView(user)))
}

// ChangeUserPassword godoc
// @Summary Reset a user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "User UID"
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} response.Envelope{data=UserView}
// @Router /users/{uid}/password [put]
func (h *UserHandler) ChangeUserPassword(c echo.Context) error {
	var req ChangePasswordRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	user, err := h.userService.ChangeUserPassword(c.Request().Context(), identity(c), c.Param("uid"), req.NewPassword)
	if err != nil {
		return reply(c, response.FromError("Failed to change password", err))
	}
	return reply(c, response.Success("Password changed successfully", userView(user)))
}
