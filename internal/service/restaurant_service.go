package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"smartchakula/internal/auth"
	"smartchakula/internal/cache"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/policy"
	"smartchakula/internal/repository"
)

const restaurantCacheKeyPrefix = "restaurant:"

// RestaurantInput holds restaurant fields. Nil fields are left untouched on
// update and take their zero value on create, except IsOpen which defaults to true.
type RestaurantInput struct {
	OwnerUID    string
	Name        *string
	Description *string
	PhoneNumber *string
	Region      *string
	City        *string
	IsOpen      *bool
	OpeningTime *string
	ClosingTime *string
	Image       *string
	Type        *string
	Rank        *string
	Address     *string
	WebsiteURL  *string
	Days        *string
}

// RestaurantService manages restaurants.
type RestaurantService interface {
	Create(ctx context.Context, actor auth.Identity, in RestaurantInput) (*model.Restaurant, error)
	Update(ctx context.Context, actor auth.Identity, uid string, in RestaurantInput) (*model.Restaurant, error)
	Delete(ctx context.Context, actor auth.Identity, uid string) error
	GetByUID(ctx context.Context, uid string) (*model.Restaurant, error)
	ListActive(ctx context.Context) ([]model.Restaurant, error)
	// ListManaged returns the restaurants the actor may manage.
	ListManaged(ctx context.Context, actor auth.Identity) ([]model.Restaurant, error)
}

type restaurantService struct {
	repos    *repository.Repositories
	policy   policy.Policy
	cache    *cache.Client
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewRestaurantService creates a new restaurant service. GetByUID results are
// cached for cacheTTL; a nil cache disables caching.
func NewRestaurantService(repos *repository.Repositories, p policy.Policy, c *cache.Client, cacheTTL time.Duration) RestaurantService {
	return &restaurantService{
		repos:    repos,
		policy:   p,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      slog.Default().With("service", "restaurant"),
	}
}

func (s *restaurantService) Create(ctx context.Context, actor auth.Identity, in RestaurantInput) (*model.Restaurant, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(model.RoleOwner, model.RoleAdmin) {
		return nil, apperrors.Unauthorized("Only owners and administrators can create restaurants")
	}

	ownerUID := strings.TrimSpace(in.OwnerUID)
	if ownerUID == "" {
		return nil, apperrors.Validation("Owner UID is required")
	}
	if user.Role == model.RoleOwner && ownerUID != user.UID {
		return nil, apperrors.Unauthorized("Owners can only create restaurants for themselves")
	}

	owner, err := s.repos.Users.FindByUID(ctx, ownerUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if owner.Role != model.RoleOwner {
		return nil, apperrors.Validation("Restaurant owner must have role OWNER")
	}

	if in.Name == nil || isBlank(*in.Name) {
		return nil, apperrors.Validation("Restaurant name is required")
	}

	restaurant := &model.Restaurant{IsOpen: true, OwnerID: owner.ID}
	applyRestaurantInput(restaurant, in)

	if err := s.repos.Restaurants.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	restaurant.Owner = owner

	s.log.InfoContext(ctx, "restaurant created", "uid", restaurant.UID, "owner", owner.UID, "by", user.UID)
	return restaurant, nil
}

func (s *restaurantService) Update(ctx context.Context, actor auth.Identity, uid string, in RestaurantInput) (*model.Restaurant, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.repos.Restaurants.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Restaurant not found", "find restaurant")
	}
	if err := s.policy.Authorize(ctx, user, restaurant.UID); err != nil {
		return nil, err
	}
	if in.Name != nil && isBlank(*in.Name) {
		return nil, apperrors.Validation("Restaurant name is required")
	}

	applyRestaurantInput(restaurant, in)
	if err := s.repos.Restaurants.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	_ = s.cache.Delete(ctx, restaurantCacheKeyPrefix+restaurant.UID)

	s.log.InfoContext(ctx, "restaurant updated", "uid", restaurant.UID, "by", user.UID)
	return restaurant, nil
}

func (s *restaurantService) Delete(ctx context.Context, actor auth.Identity, uid string) error {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return err
	}

	restaurant, err := s.repos.Restaurants.FindByUID(ctx, uid)
	if err != nil {
		return notFound(err, "Restaurant not found", "find restaurant")
	}
	if err := s.policy.Authorize(ctx, user, restaurant.UID); err != nil {
		return err
	}

	restaurant.MarkDeleted(user.UID, time.Now())
	if err := s.repos.Restaurants.Update(ctx, restaurant); err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	_ = s.cache.Delete(ctx, restaurantCacheKeyPrefix+restaurant.UID)

	s.log.InfoContext(ctx, "restaurant deleted", "uid", restaurant.UID, "by", user.UID)
	return nil
}

// GetByUID may serve from the cache, where ID and OwnerID are not kept.
// The result is for reads only; write paths load through the repository.
func (s *restaurantService) GetByUID(ctx context.Context, uid string) (*model.Restaurant, error) {
	var cached model.Restaurant
	if s.cache.GetJSON(ctx, restaurantCacheKeyPrefix+uid, &cached) && cached.IsActive() {
		return &cached, nil
	}

	restaurant, err := s.repos.Restaurants.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err, "Restaurant not found", "find restaurant")
	}
	s.cache.SetJSON(ctx, restaurantCacheKeyPrefix+uid, restaurant, s.cacheTTL)
	return restaurant, nil
}

func (s *restaurantService) ListActive(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.repos.Restaurants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

func (s *restaurantService) ListManaged(ctx context.Context, actor auth.Identity) ([]model.Restaurant, error) {
	user, err := resolveActor(ctx, s.repos.Users, actor)
	if err != nil {
		return nil, err
	}

	var restaurants []model.Restaurant
	switch user.Role {
	case model.RoleAdmin:
		restaurants, err = s.repos.Restaurants.ListActive(ctx)
	case model.RoleOwner:
		restaurants, err = s.repos.Restaurants.ListByOwner(ctx, user.UID)
	default:
		restaurants, err = s.repos.Assignments.ListRestaurantsByUser(ctx, user.UID)
	}
	if err != nil {
		return nil, fmt.Errorf("list managed restaurants: %w", err)
	}
	return restaurants, nil
}

func applyRestaurantInput(r *model.Restaurant, in RestaurantInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&r.Name, in.Name)
	set(&r.Description, in.Description)
	set(&r.PhoneNumber, in.PhoneNumber)
	set(&r.Region, in.Region)
	set(&r.City, in.City)
	set(&r.OpeningTime, in.OpeningTime)
	set(&r.ClosingTime, in.ClosingTime)
	set(&r.Image, in.Image)
	set(&r.Type, in.Type)
	set(&r.Rank, in.Rank)
	set(&r.Address, in.Address)
	set(&r.WebsiteURL, in.WebsiteURL)
	set(&r.Days, in.Days)
	if in.IsOpen != nil {
		r.IsOpen = *in.IsOpen
	}
}
