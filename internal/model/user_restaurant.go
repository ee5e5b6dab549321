package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRestaurant grants a user (usually a MANAGER) access to one restaurant.
type UserRestaurant struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UID          string    `json:"uid" gorm:"size:36;uniqueIndex;not null"`
	UserID       uint      `json:"-" gorm:"not null;uniqueIndex:idx_user_restaurant"`
	RestaurantID uint      `json:"-" gorm:"not null;uniqueIndex:idx_user_restaurant;index"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relations
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
}

// BeforeCreate sets the UID before creating the record.
func (ur *UserRestaurant) BeforeCreate(tx *gorm.DB) error {
	if ur.UID == "" {
		ur.UID = uuid.New().String()
	}
	return nil
}
