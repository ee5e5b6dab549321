package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smartchakula/docs"
	"smartchakula/internal/auth"
	"smartchakula/internal/config"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/handler"
	"smartchakula/internal/model"
	"smartchakula/internal/response"
)

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Restaurants *handler.RestaurantHandler
	Categories  *handler.CategoryHandler
	MenuItems   *handler.MenuItemHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/refresh", h.Auth.Refresh)

	api.GET("/restaurants", h.Restaurants.List)
	api.GET("/restaurants/:uid", h.Restaurants.Get)
	api.GET("/restaurants/:uid/categories", h.Categories.ListByRestaurant)
	api.GET("/restaurants/:uid/menu-items", h.MenuItems.ListByRestaurant)
	api.GET("/categories", h.Categories.List)
	api.GET("/categories/:uid", h.Categories.Get)
	api.GET("/categories/:uid/menu-items", h.MenuItems.ListByCategory)
	api.GET("/menu-items", h.MenuItems.List)
	api.GET("/menu-items/:uid", h.MenuItems.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.UserContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return deny(c, "Unauthorized: invalid or missing token")
		},
	}), rejectRevoked(tokenStore))

	staff := requireRoles(model.RoleOwner, model.RoleManager, model.RoleAdmin)
	owners := requireRoles(model.RoleOwner, model.RoleAdmin)
	admins := requireRoles(model.RoleAdmin)

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.POST("/auth/owners", h.Auth.SaveOwner, admins)
	secured.POST("/auth/managers", h.Auth.SaveManager, requireRoles(model.RoleOwner))

	secured.GET("/me", h.Users.Me)
	secured.GET("/me/restaurants", h.Restaurants.ListMine, staff)
	secured.GET("/users", h.Users.ListUsers, admins)
	secured.PUT("/users/:uid/role", h.Users.UpdateUserRole, admins)
	secured.PUT("/users/:uid/password", h.Users.ChangeUserPassword, admins)

	secured.POST("/restaurants", h.Restaurants.Create, owners)
	secured.PUT("/restaurants/:uid", h.Restaurants.Update, owners)
	secured.DELETE("/restaurants/:uid", h.Restaurants.Delete, owners)

	secured.POST("/categories", h.Categories.Create, staff)
	secured.PUT("/categories/:uid", h.Categories.Update, staff)
	secured.DELETE("/categories/:uid", h.Categories.Delete, staff)

	secured.POST("/menu-items", h.MenuItems.Create, staff)
	secured.PUT("/menu-items/:uid", h.MenuItems.Update, staff)
	secured.DELETE("/menu-items/:uid", h.MenuItems.Delete, staff)
}

// rejectRevoked denies access tokens blacklisted by logout.
func rejectRevoked(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(handler.UserContextKey).(*auth.Claims)
			if !ok {
				return deny(c, "Unauthorized: invalid or missing token")
			}
			revoked, err := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err == nil && revoked {
				return deny(c, "Unauthorized: token has been revoked")
			}
			return next(c)
		}
	}
}

// requireRoles is the coarse allow-list in front of a route. Services still
// apply the ownership policy.
func requireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(handler.UserContextKey).(*auth.Claims)
			if !ok || !claims.Identity().HasRole(roles...) {
				return deny(c, "Unauthorized: insufficient role")
			}
			return next(c)
		}
	}
}

func deny(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, response.Envelope{Status: response.StatusError, Message: message})
}

// errorHandler answers errors that escape a handler: routing errors keep
// their status, anything else goes through the domain mapping.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, apperrors.ErrorResponse{
			Error: fmt.Sprint(he.Message),
			Code:  strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")),
		})
		return
	}

	mapped := apperrors.MapErrorToHTTP(err)
	c.Logger().Errorf("unhandled error: %v", err)
	_ = c.JSON(mapped.StatusCode, mapped.ToErrorResponse())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator. Field errors use JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return model.ValidPhone(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "phone":
			msgs = append(msgs, fe.Field()+" must be a phone number")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
