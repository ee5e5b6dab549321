package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartchakula/internal/model"
)

// MenuItemRepository defines menu item persistence operations. Finders only
// return active rows and load the category and the restaurant with its owner.
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, item *model.MenuItem) error
	FindByUID(ctx context.Context, uid string) (*model.MenuItem, error)
	ListActive(ctx context.Context) ([]model.MenuItem, error)
	ListByCategory(ctx context.Context, categoryUID string) ([]model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.MenuItem, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository.
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *menuItemRepository) Update(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *menuItemRepository) FindByUID(ctx context.Context, uid string) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.active(ctx).Where("menu_items.uid = ?", uid).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) ListActive(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.active(ctx).Order("menu_items.id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) ListByCategory(ctx context.Context, categoryUID string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.active(ctx).
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("categories.uid = ? AND categories.state = ?", categoryUID, model.StateActive).
		Order("menu_items.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) ListByRestaurant(ctx context.Context, restaurantUID string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.active(ctx).
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("restaurants.uid = ? AND restaurants.state = ?", restaurantUID, model.StateActive).
		Order("menu_items.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Restaurant.Owner").
		Where("menu_items.state = ?", model.StateActive)
}
