package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartchakula/internal/model"
)

// CategoryRepository defines category persistence operations. Finders only
// return active rows and load the restaurant with its owner.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByUID(ctx context.Context, uid string) (*model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

func (r *categoryRepository) FindByUID(ctx context.Context, uid string) (*model.Category, error) {
	var category model.Category
	if err := r.active(ctx).Where("categories.uid = ?", uid).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.active(ctx).Order("categories.id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.Category, error) {
	var categories []model.Category
	err := r.active(ctx).
		Joins("JOIN restaurants ON restaurants.id = categories.restaurant_id").
		Where("restaurants.uid = ? AND restaurants.state = ?", restaurantUID, model.StateActive).
		Order("categories.id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Restaurant.Owner").
		Where("categories.state = ?", model.StateActive)
}
