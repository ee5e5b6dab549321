package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
)

// CategoryInput holds the writable category fields.
type CategoryInput struct {
	RestaurantUID string
	Name          string
	Description   string
}

// CategoryService manages the categories of a restaurant.
type CategoryService interface {
	Create(ctx context.Context, actor auth.Identity, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, actor auth.Identity, uid string, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, actor auth.Identity, uid string) error
	GetByUID(ctx context.Context, uid string) (*model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
	// ListByRestaurant returns every active category when restaurantUID is blank.
	ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.Category, error)
}

type categoryService struct {
	repos  *repository.Repositories
	policy policy.Policy
	log    *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repos *repository.Repositories, p policy.Policy) CategoryService {
	return &categoryService{
		repos:  repos,
		policy: p,
		log:    slog.Default().With("service", "category"),
	}
}

func (s *categoryService) Create(ctx context.Context, actor auth.Identity, in CategoryInput) (*model.Category, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	restaurantUID := strings.TrimSpace(in.RestaurantUID)
	if name == "" {
		return nil, apperrors.Validation("Category name is required")
	}
	if restaurantUID == "" {
		return nil, apperrors.Validation("Restaurant UID is required")
	}

	restaurant, err := s.repos.Restaurants.FindByUID(ctx, restaurantUID)
	if err != nil {
		return nil, notFound(err, "Restaurant not found with UID: "+restaurantUID, "find restaurant")
	}
	if err := s.policy.Authorize(ctx, user, restaurant.UID); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		RestaurantID: restaurant.ID,
	}
	if err := s.repos.Categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	category.Restaurant = restaurant

	s.log.InfoContext(ctx, "category created", "uid", category.UID, "restaurant", restaurant.UID, "by", user.UID)
	return category, nil
}

// Update renames a category. The restaurant of a category never changes.
func (s *categoryService) Update(ctx context.Context, actor auth.Identity, uid string, in CategoryInput) (*model.Category, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, err
	}

	category, err := s.repos.Categories.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Category not found", "find category")
	}
	if err := requireActiveRestaurant(category.Restaurant); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(ctx, user, category.Restaurant.UID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("Category name is required")
	}
	category.Name = name
	category.Description = strings.TrimSpace(in.Description)

	if err := s.repos.Categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.log.InfoContext(ctx, "category updated", "uid", category.UID, "by", user.UID)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, actor auth.Identity, uid string) error {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return err
	}

	category, err := s.repos.Categories.FindByUID(ctx, uid)
	if err != nil {
		return notFound(err, "Category not found", "find category")
	}
	if err := s.policy.Authorize(ctx, user, category.Restaurant.UID); err != nil {
		return err
	}

	category.MarkDeleted(user.UID, time.Now())
	if err := s.repos.Categories.Update(ctx, category); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.InfoContext(ctx, "category deleted", "uid", category.UID, "by", user.UID)
	return nil
}

func (s *categoryService) GetByUID(ctx context.Context, uid string) (*model.Category, error) {
	category, err := s.repos.Categories.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Category not found", "find category")
	}
	return category, nil
}

func (s *categoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repos.Categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.Category, error) {
	restaurantUID = strings.TrimSpace(restaurantUID)
	if restaurantUID == "" {
		return s.ListAll(ctx)
	}
	categories, err := s.repos.Categories.ListByRestaurant(ctx, restaurantUID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
