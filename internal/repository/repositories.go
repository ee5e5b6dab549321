package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles every repository over one connection or transaction.
type Repositories struct {
	Users       UserRepository
	Restaurants RestaurantRepository
	Assignments UserRestaurantRepository
	Categories  CategoryRepository
	MenuItems   MenuItemRepository

	db *gorm.DB
}

// Transactor runs fn with repositories bound to a single transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error
}

// New builds all repositories on db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Restaurants: NewRestaurantRepository(db),
		Assignments: NewUserRestaurantRepository(db),
		Categories:  NewCategoryRepository(db),
		MenuItems:   NewMenuItemRepository(db),
		db:          db,
	}
}

// WithTransaction executes fn within a database transaction. Returning an
// error from fn rolls back every write made through tx.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}
