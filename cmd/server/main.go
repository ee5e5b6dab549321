package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	_ "smartchakula/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"smartchakula/internal/auth"
	"smartchakula/internal/cache"
	"smartchakula/internal/config"
	"smartchakula/internal/db"
	"smartchakula/internal/handler"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
	"smartchakula/internal/router"
	"smartchakula/internal/service"
)

// @title SmartChakula Menu API
// @version 1.0
// @description Multi-tenant restaurant menu backend: restaurants, categories, menu items and role based access.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := model.DropAll(gormDB); err != nil {
			log.Printf("Warning: failed to drop tables: %v", err)
		}
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "smartchakula:")

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		log.Fatalf("password hasher: %v", err)
	}
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	repos := repository.New(gormDB)
	authorizer := policy.NewAuthorizer(repos.Restaurants, repos.Assignments)

	authService := service.NewAuthService(repos.Users, repos, hasher, jwtService, tokenStore)
	userService := service.NewUserService(repos.Users, hasher)
	restaurantService := service.NewRestaurantService(repos, authorizer, cacheClient, cfg.CacheTTL)
	categoryService := service.NewCategoryService(repos, authorizer)
	menuItemService := service.NewMenuItemService(repos, authorizer)

	root, created, err := userService.EnsureRootUser(context.Background(), service.RootUser{
		Email:    cfg.Root.Email,
		Password: cfg.Root.Password,
		FullName: cfg.Root.FullName,
		Phone:    cfg.Root.Phone,
	})
	if err != nil {
		log.Fatalf("root user: %v", err)
	}
	if created {
		log.Printf("Root user created: %s", root.Email)
	}

	e := echo.New()
	router.Register(e, cfg, jwtService, tokenStore, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserHandler(userService),
		Restaurants: handler.NewRestaurantHandler(restaurantService),
		Categories:  handler.NewCategoryHandler(categoryService),
		MenuItems:   handler.NewMenuItemHandler(menuItemService),
	})

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := cfg.SwaggerHost
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		swaggerURL = host + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
