package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartchakula/internal/model"
)

// UserRestaurantRepository persists restaurant assignments of staff.
type UserRestaurantRepository interface {
	Create(ctx context.Context, assignment *model.UserRestaurant) error
	// Exists is the permission check: is the user assigned to the active restaurant.
	Exists(ctx context.Context, userUID, restaurantUID string) (bool, error)
	// ListRestaurantsByUser returns the active restaurants the user is assigned to.
	ListRestaurantsByUser(ctx context.Context, userUID string) ([]model.Restaurant, error)
	// ListByRestaurant returns the staff of a restaurant.
	ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.UserRestaurant, error)
}

type userRestaurantRepository struct {
	db *gorm.DB
}

// NewUserRestaurantRepository creates a new assignment repository.
func NewUserRestaurantRepository(db *gorm.DB) UserRestaurantRepository {
	return &userRestaurantRepository{db: db}
}

func (r *userRestaurantRepository) Create(ctx context.Context, assignment *model.UserRestaurant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error
}

func (r *userRestaurantRepository) Exists(ctx context.Context, userUID, restaurantUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRestaurant{}).
		Joins("JOIN users ON users.id = user_restaurants.user_id").
		Joins("JOIN restaurants ON restaurants.id = user_restaurants.restaurant_id").
		Where("users.uid = ? AND restaurants.uid = ? AND restaurants.state = ?", userUID, restaurantUID, model.StateActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRestaurantRepository) ListRestaurantsByUser(ctx context.Context, userUID string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Joins("JOIN user_restaurants ON user_restaurants.restaurant_id = restaurants.id").
		Joins("JOIN users ON users.id = user_restaurants.user_id").
		Where("users.uid = ? AND restaurants.state = ?", userUID, model.StateActive).
		Order("restaurants.id").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *userRestaurantRepository) ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.UserRestaurant, error) {
	var assignments []model.UserRestaurant
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN restaurants ON restaurants.id = user_restaurants.restaurant_id").
		Where("restaurants.uid = ?", restaurantUID).
		Order("user_restaurants.id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
