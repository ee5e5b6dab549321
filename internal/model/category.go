package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups menu items of one restaurant.
type Category struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UID          string    `json:"uid" gorm:"size:36;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	RestaurantID uint      `json:"-" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	SoftDelete

	// Relations
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
}

// BeforeCreate sets the UID and initial state before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.UID == "" {
		c.UID = uuid.New().String()
	}
	c.initState()
	return nil
}
