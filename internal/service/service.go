// Package service holds the business rules of the menu backend. Services
// return plain values and errors; the handler layer turns them into envelopes.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"smartchakula/internal/auth"
	apperrors "smartchakula/internal/errors"
	"smartchakula/internal/model"
	"smartchakula/internal/repository"
)

// resolveActor loads the stored user behind an identity. The stored role is
// authoritative, so role changes apply to tokens issued before them.
func resolveActor(ctx context.Context, users repository.UserRepository, actor auth.Identity) (*model.User, error) {
	if actor.IsZero() {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	user, err := users.FindByUID(ctx, actor.UID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.Active {
		return nil, apperrors.Unauthorized("User account is disabled")
	}
	return user, nil
}

// notFound translates a missing row into a NotFound error with message and
// wraps every other store failure.
func notFound(err error, message, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// optionalPhone maps a blank phone to NULL so the unique index allows many.
func optionalPhone(phone string) *string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	return &phone
}

// requireActiveRestaurant rejects writes under a soft-deleted restaurant.
func requireActiveRestaurant(r *model.Restaurant) error {
	if r == nil || !r.IsActive() {
		return apperrors.NotFound("Restaurant not found")
	}
	return nil
}
