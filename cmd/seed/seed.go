package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/repository"
	"smartchakula/internal/service"
)

// Fixture is the seed document: owners with their restaurants and menus.
type Fixture struct {
	Owners []SeedOwner `json:"owners"`
}

type SeedOwner struct {
	FullName    string           `json:"fullName"`
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	Phone       string           `json:"phone"`
	Restaurants []SeedRestaurant `json:"restaurants"`
}

type SeedRestaurant struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	PhoneNumber string         `json:"phoneNumber"`
	Region      string         `json:"region"`
	City        string         `json:"city"`
	OpeningTime string         `json:"openingTime"`
	ClosingTime string         `json:"closingTime"`
	Type        string         `json:"type"`
	Days        string         `json:"days"`
	Categories  []SeedCategory `json:"categories"`
}

type SeedCategory struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []SeedMenuItem `json:"items"`
}

type SeedMenuItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// Counts reports what a seed run created.
type Counts struct {
	Owners      int
	Restaurants int
	Categories  int
	MenuItems   int
	Warnings    int
}

func parseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &f, nil
}

// fetchFixture downloads a fixture document.
func fetchFixture(url string) (*Fixture, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture URL returned status code: %d", resp.StatusCode)
	}
	return parseFixture(resp.Body)
}

// seeder provisions a fixture through the services, so every row passes the
// same validation and authorization as an API call. Existing rows are matched
// by email or name and reused.
type seeder struct {
	repos       *repository.Repositories
	auth        service.AuthService
	restaurants service.RestaurantService
	categories  service.CategoryService
	menuItems   service.MenuItemService
	counts      Counts
}

func (s *seeder) run(ctx context.Context, admin *model.User, f *Fixture) (Counts, error) {
	adminID := auth.Identity{UID: admin.UID, Email: admin.Email, Role: admin.Role}
	for _, o := range f.Owners {
		owner, err := s.owner(ctx, adminID, o)
		if err != nil {
			return s.counts, fmt.Errorf("owner %s: %w", o.Email, err)
		}
		ownerID := auth.Identity{UID: owner.UID, Email: owner.Email, Role: owner.Role}
		for _, r := range o.Restaurants {
			if err := s.restaurant(ctx, ownerID, r); err != nil {
				return s.counts, fmt.Errorf("restaurant %s: %w", r.Name, err)
			}
		}
	}
	return s.counts, nil
}

func (s *seeder) owner(ctx context.Context, admin auth.Identity, o SeedOwner) (*model.User, error) {
	result, err := s.auth.SaveOwner(ctx, admin, service.UserInput{
		FullName: o.FullName,
		Email:    o.Email,
		Password: o.Password,
		Phone:    o.Phone,
	})
	if err == nil {
		s.counts.Owners++
		return result.User, nil
	}
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return nil, err
	}

	existing, err := s.repos.Users.FindByEmail(ctx, o.Email)
	if err != nil {
		return nil, err
	}
	if existing.Role != model.RoleOwner {
		return nil, fmt.Errorf("existing user has role %s", existing.Role)
	}
	return existing, nil
}

func (s *seeder) restaurant(ctx context.Context, owner auth.Identity, r SeedRestaurant) error {
	owned, err := s.repos.Restaurants.ListByOwner(ctx, owner.UID)
	if err != nil {
		return err
	}
	var restaurant *model.Restaurant
	for i := range owned {
		if strings.EqualFold(owned[i].Name, r.Name) {
			restaurant = &owned[i]
			break
		}
	}
	if restaurant == nil {
		restaurant, err = s.restaurants.Create(ctx, owner, service.RestaurantInput{
			OwnerUID:    owner.UID,
			Name:        &r.Name,
			Description: &r.Description,
			PhoneNumber: &r.PhoneNumber,
			Region:      &r.Region,
			City:        &r.City,
			OpeningTime: &r.OpeningTime,
			ClosingTime: &r.ClosingTime,
			Type:        &r.Type,
			Days:        &r.Days,
		})
		if err != nil {
			return err
		}
		s.counts.Restaurants++
	}

	for _, c := range r.Categories {
		if err := s.category(ctx, owner, restaurant.UID, c); err != nil {
			return fmt.Errorf("category %s: %w", c.Name, err)
		}
	}
	return nil
}

func (s *seeder) category(ctx context.Context, owner auth.Identity, restaurantUID string, c SeedCategory) error {
	existing, err := s.categories.ListByRestaurant(ctx, restaurantUID)
	if err != nil {
		return err
	}
	var category *model.Category
	for i := range existing {
		if strings.EqualFold(existing[i].Name, c.Name) {
			category = &existing[i]
			break
		}
	}
	if category == nil {
		category, err = s.categories.Create(ctx, owner, service.CategoryInput{
			RestaurantUID: restaurantUID,
			Name:          c.Name,
			Description:   c.Description,
		})
		if err != nil {
			return err
		}
		s.counts.Categories++
	}

	items, err := s.menuItems.ListByCategory(ctx, category.UID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[strings.ToLower(item.Name)] = true
	}

	for _, item := range c.Items {
		if seen[strings.ToLower(item.Name)] {
			continue
		}
		_, warnings, err := s.menuItems.Create(ctx, owner, service.MenuItemInput{
			CategoryUID: category.UID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Image:       item.Image,
		})
		if err != nil {
			return fmt.Errorf("menu item %s: %w", item.Name, err)
		}
		s.counts.MenuItems++
		s.counts.Warnings += len(warnings)
	}
	return nil
}
