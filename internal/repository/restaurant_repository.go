package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartchakula/internal/model"
)

// RestaurantRepository defines restaurant persistence operations. Finders
// only return active rows and always load the owner.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	Update(ctx context.Context, restaurant *model.Restaurant) error
	FindByUID(ctx context.Context, uid string) (*model.Restaurant, error)
	ListActive(ctx context.Context) ([]model.Restaurant, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]model.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Create creates a new restaurant. The owner row must already exist.
func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(restaurant).Error
}

// Update saves every column of an existing restaurant.
func (r *restaurantRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(restaurant).Error
}

// FindByUID finds an active restaurant by UID.
func (r *restaurantRepository) FindByUID(ctx context.Context, uid string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.active(ctx).Where("restaurants.uid = ?", uid).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListActive lists all active restaurants.
func (r *restaurantRepository) ListActive(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.active(ctx).Order("restaurants.id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ListByOwner lists the active restaurants owned by the user.
func (r *restaurantRepository) ListByOwner(ctx context.Context, ownerUID string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.active(ctx).
		Joins("JOIN users owners ON owners.id = restaurants.owner_id").
		Where("owners.uid = ?", ownerUID).
		Order("restaurants.id").
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Where("restaurants.state = ?", model.StateActive)
}
