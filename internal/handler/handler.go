// Package handler adapts HTTP requests to service calls. Every application
// outcome is answered with HTTP 200 and a response envelope.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartchakula/internal/auth"
	"smartchakula/internal/response"
)

// UserContextKey is where the JWT middleware stores the *auth.Claims.
const UserContextKey = "user"

// identity returns the authenticated caller, or a zero Identity on public routes.
func identity(c echo.Context) auth.Identity {
	claims, ok := c.Get(UserContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return auth.Identity{}
	}
	return claims.Identity()
}

// bind decodes and validates the request body. A non-nil envelope is the
// answer to send instead of calling the service.
func bind(c echo.Context, req interface{}) *response.Envelope {
	if err := c.Bind(req); err != nil {
		env := response.Failure("Invalid request body")
		return &env
	}
	if err := c.Validate(req); err != nil {
		env := response.Envelope{Status: response.StatusError, Message: err.Error()}
		return &env
	}
	return nil
}

func reply(c echo.Context, env response.Envelope) error {
	return c.JSON(http.StatusOK, env)
}
