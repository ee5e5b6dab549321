// Package policy decides which users may manage which restaurant.
package policy

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/repository"
)

const (
	msgNotOwner    = "You do not own this restaurant"
	msgNotAssigned = "You are not assigned to this restaurant"
)

// Policy is consulted before every restaurant, category or menu item mutation.
type Policy interface {
	CanManage(ctx context.Context, user *model.User, restaurantUID string) (bool, error)
	Authorize(ctx context.Context, user *model.User, restaurantUID string) error
}

// Authorizer implements Policy over the restaurant and assignment stores.
type Authorizer struct {
	restaurants repository.RestaurantRepository
	assignments repository.UserRestaurantRepository
}

var _ Policy = (*Authorizer)(nil)

// NewAuthorizer creates a new authorizer.
func NewAuthorizer(restaurants repository.RestaurantRepository, assignments repository.UserRestaurantRepository) *Authorizer {
	return &Authorizer{restaurants: restaurants, assignments: assignments}
}

// CanManage reports whether user may mutate the restaurant and everything
// under it. ADMIN may manage any restaurant, OWNER only active restaurants
// they own, everyone else only restaurants they are assigned to.
func (a *Authorizer) CanManage(ctx context.Context, user *model.User, restaurantUID string) (bool, error) {
	if user == nil {
		return false, nil
	}

	switch user.Role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleOwner:
		restaurant, err := a.restaurants.FindByUID(ctx, restaurantUID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("find restaurant: %w", err)
		}
		return restaurant.OwnedBy(user.UID), nil
	default:
		ok, err := a.assignments.Exists(ctx, user.UID, restaurantUID)
		if err != nil {
			return false, fmt.Errorf("check assignment: %w", err)
		}
		return ok, nil
	}
}

// Authorize is CanManage turned into an Unauthorized error.
func (a *Authorizer) Authorize(ctx context.Context, user *model.User, restaurantUID string) error {
	ok, err := a.CanManage(ctx, user, restaurantUID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if user != nil && user.Role == model.RoleOwner {
		return apperrors.Unauthorized(msgNotOwner)
	}
	return apperrors.Unauthorized(msgNotAssigned)
}
