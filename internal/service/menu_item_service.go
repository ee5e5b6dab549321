package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
)

const (
	warnDescriptionTruncated = "Description truncated to 255 characters."
	warnImageRemoved         = "Image URL too long, removed."
)

// MenuItemInput holds the writable menu item fields. CategoryUID and
// RestaurantUID are only read on create; an item never changes category.
type MenuItemInput struct {
	CategoryUID   string
	RestaurantUID string
	Name          string
	Description   string
	Price         decimal.Decimal
	Image         string
	IsAvailable   *bool
}

// MenuItemService manages menu items. Create and Update report the
// adjustments made to the input as warnings.
type MenuItemService interface {
	Create(ctx context.Context, actor auth.Identity, in MenuItemInput) (*model.MenuItem, []string, error)
	Update(ctx context.Context, actor auth.Identity, uid string, in MenuItemInput) (*model.MenuItem, []string, error)
	Delete(ctx context.Context, actor auth.Identity, uid string) error
	GetByUID(ctx context.Context, uid string) (*model.MenuItem, error)
	ListAllActive(ctx context.Context) ([]model.MenuItem, error)
	ListByCategory(ctx context.Context, categoryUID string) ([]model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.MenuItem, error)
}

type menuItemService struct {
	repos  *repository.Repositories
	policy policy.Policy
	log    *slog.Logger
}

// NewMenuItemService creates a new menu item service.
func NewMenuItemService(repos *repository.Repositories, p policy.Policy) MenuItemService {
	return &menuItemService{
		repos:  repos,
		policy: p,
		log:    slog.Default().With("service", "menu_item"),
	}
}

func (s *menuItemService) Create(ctx context.Context, actor auth.Identity, in MenuItemInput) (*model.MenuItem, []string, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, nil, err
	}

	name, err := validateMenuItem(in)
	if err != nil {
		return nil, nil, err
	}
	categoryUID := strings.TrimSpace(in.CategoryUID)
	if categoryUID == "" {
		return nil, nil, apperrors.Validation("Category UID is required")
	}

	category, err := s.repos.Categories.FindByUID(ctx, categoryUID)
	if err != nil {
		return nil, nil, notFound(err, "Category not found", "find category")
	}
	restaurant := category.Restaurant
	if err := requireActiveRestaurant(restaurant); err != nil {
		return nil, nil, err
	}
	if restaurantUID := strings.TrimSpace(in.RestaurantUID); restaurantUID != "" && restaurantUID != restaurant.UID {
		return nil, nil, apperrors.Validation("Category does not belong to restaurant " + restaurantUID)
	}
	if err := s.policy.Authorize(ctx, user, restaurant.UID); err != nil {
		return nil, nil, err
	}

	description, image, warnings := sanitizeMenuItem(in.Description, in.Image)
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	item := &model.MenuItem{
		Name:         name,
		Description:  description,
		Price:        in.Price,
		Image:        image,
		IsAvailable:  available,
		CategoryID:   category.ID,
		RestaurantID: restaurant.ID,
	}
	if err := s.repos.MenuItems.Create(ctx, item); err != nil {
		return nil, nil, fmt.Errorf("create menu item: %w", err)
	}
	item.Category = category
	item.Restaurant = restaurant

	s.log.InfoContext(ctx, "menu item created", "uid", item.UID, "category", category.UID, "by", user.UID, "warnings", len(warnings))
	return item, warnings, nil
}

func (s *menuItemService) Update(ctx context.Context, actor auth.Identity, uid string, in MenuItemInput) (*model.MenuItem, []string, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, nil, err
	}

	name, err := validateMenuItem(in)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.repos.MenuItems.FindByUID(ctx, uid)
	if err != nil {
		return nil, nil, notFound(err, "Menu item not found", "find menu item")
	}
	if err := requireActiveRestaurant(item.Restaurant); err != nil {
		return nil, nil, err
	}
	if err := s.policy.Authorize(ctx, user, item.Restaurant.UID); err != nil {
		return nil, nil, err
	}

	description, image, warnings := sanitizeMenuItem(in.Description, in.Image)
	item.Name = name
	item.Description = description
	item.Price = in.Price
	item.Image = image
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if err := s.repos.MenuItems.Update(ctx, item); err != nil {
		return nil, nil, fmt.Errorf("update menu item: %w", err)
	}

	s.log.InfoContext(ctx, "menu item updated", "uid", item.UID, "by", user.UID, "warnings", len(warnings))
	return item, warnings, nil
}

func (s *menuItemService) Delete(ctx context.Context, actor auth.Identity, uid string) error {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return err
	}

	item, err := s.repos.MenuItems.FindByUID(ctx, uid)
	if err != nil {
		return notFound(err, "Menu item not found", "find menu item")
	}
	if err := s.policy.Authorize(ctx, user, item.Restaurant.UID); err != nil {
		return err
	}

	item.MarkDeleted(user.UID, time.Now())
	if err := s.repos.MenuItems.Update(ctx, item); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.log.InfoContext(ctx, "menu item deleted", "uid", item.UID, "by", user.UID)
	return nil
}

func (s *menuItemService) GetByUID(ctx context.Context, uid string) (*model.MenuItem, error) {
	item, err := s.repos.MenuItems.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Menu item not found", "find menu item")
	}
	return item, nil
}

func (s *menuItemService) ListAllActive(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repos.MenuItems.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *menuItemService) ListByCategory(ctx context.Context, categoryUID string) ([]model.MenuItem, error) {
	items, err := s.repos.MenuItems.ListByCategory(ctx, categoryUID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *menuItemService) ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.MenuItem, error) {
	items, err := s.repos.MenuItems.ListByRestaurant(ctx, restaurantUID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func validateMenuItem(in MenuItemInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", apperrors.Validation("Name is required")
	}
	if !in.Price.IsPositive() {
		return "", apperrors.Validation("Valid price is required")
	}
	return name, nil
}

// sanitizeMenuItem trims and truncates the description and drops an
// oversized image URL. Lengths are counted in characters.
func sanitizeMenuItem(description, image string) (string, string, []string) {
	var warnings []string

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > model.MaxDescriptionLength {
		description = string([]rune(description)[:model.MaxDescriptionLength])
		warnings = append(warnings, warnDescriptionTruncated)
	}

	image = strings.TrimSpace(image)
	if utf8.RuneCountInString(image) > model.MaxImageLength {
		image = ""
		warnings = append(warnings, warnImageRemoved)
	}

	return description, image, warnings
}
