package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"log"
	"os"

	"smartchakula/internal/auth"
	"smartchakula/internal/cache"
	"smartchakula/internal/config"
	"smartchakula/internal/db"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
	"smartchakula/internal/service"
)

//go:embed fixture.json
var defaultFixture []byte

func main() {
	file := flag.String("file", "", "path to a JSON fixture (defaults to the embedded one)")
	url := flag.String("url", "", "URL of a JSON fixture")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fixture, err := loadFixture(*file, *url)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}
	log.Printf("Loaded fixture with %d owners", len(fixture.Owners))

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		log.Fatalf("Failed to build password hasher: %v", err)
	}
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "smartchakula:")
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	repos := repository.New(gormDB)
	authorizer := policy.NewAuthorizer(repos.Restaurants, repos.Assignments)
	users := service.NewUserService(repos.Users, hasher)

	ctx := context.Background()
	root, _, err := users.EnsureRootUser(ctx, service.RootUser{
		Email:    cfg.Root.Email,
		Password: cfg.Root.Password,
		FullName: cfg.Root.FullName,
		Phone:    cfg.Root.Phone,
	})
	if err != nil {
		log.Fatalf("Failed to ensure root user: %v", err)
	}

	s := &seeder{
		repos:       repos,
		auth:        service.NewAuthService(repos.Users, repos, hasher, jwtService, auth.NewTokenStore(cacheClient)),
		restaurants: service.NewRestaurantService(repos, authorizer, cacheClient, cfg.CacheTTL),
		categories:  service.NewCategoryService(repos, authorizer),
		menuItems:   service.NewMenuItemService(repos, authorizer),
	}
	counts, err := s.run(ctx, root, fixture)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Owners created: %d", counts.Owners)
	log.Printf("  - Restaurants created: %d", counts.Restaurants)
	log.Printf("  - Categories created: %d", counts.Categories)
	log.Printf("  - Menu items created: %d", counts.MenuItems)
	if counts.Warnings > 0 {
		log.Printf("  - Menu items adjusted on save: %d", counts.Warnings)
	}
}

func loadFixture(file, url string) (*Fixture, error) {
	switch {
	case url != "":
		log.Printf("Fetching fixture from: %s", url)
		return fetchFixture(url)
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return parseFixture(f)
	default:
		return parseFixture(bytes.NewReader(defaultFixture))
	}
}
