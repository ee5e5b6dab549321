package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// MaxDescriptionLength is the stored limit for menu item descriptions.
	MaxDescriptionLength = 255
	// MaxImageLength is the longest image URL kept on a menu item.
	MaxImageLength = 2555
)

// MenuItem is a priced entry of a category. RestaurantID always equals the
// category's restaurant.
type MenuItem struct {
	ID           uint            `json:"-" gorm:"primaryKey"`
	UID          string          `json:"uid" gorm:"size:36;uniqueIndex;not null"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"size:255"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Image        string          `json:"image" gorm:"type:text"`
	IsAvailable  bool            `json:"isAvailable"`
	CategoryID   uint            `json:"-" gorm:"not null;index"`
	RestaurantID uint            `json:"-" gorm:"not null;index"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	SoftDelete

	// Relations
	Category   *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
}

// BeforeCreate sets the UID and initial state before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.UID == "" {
		m.UID = uuid.New().String()
	}
	m.initState()
	return nil
}
