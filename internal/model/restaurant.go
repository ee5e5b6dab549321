package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is owned by exactly one OWNER and holds the menu.
type Restaurant struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UID         string    `json:"uid" gorm:"size:36;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PhoneNumber string    `json:"phoneNumber" gorm:"size:32"`
	Region      string    `json:"region" gorm:"size:100"`
	City        string    `json:"city" gorm:"size:100"`
	IsOpen      bool      `json:"isOpen"`
	OpeningTime string    `json:"openingTime" gorm:"size:16"`
	ClosingTime string    `json:"closingTime" gorm:"size:16"`
	Image       string    `json:"image" gorm:"type:text"`
	Type        string    `json:"type" gorm:"size:100"`
	Rank        string    `json:"rank" gorm:"size:50"`
	Address     string    `json:"address" gorm:"size:255"`
	WebsiteURL  string    `json:"websiteUrl" gorm:"size:255"`
	Days        string    `json:"days" gorm:"size:100"`
	OwnerID     uint      `json:"-" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	SoftDelete

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets the UID and initial state before creating the record.
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.UID == "" {
		r.UID = uuid.New().String()
	}
	r.initState()
	return nil
}

// OwnedBy reports whether userUID is the owner. The Owner relation must be loaded.
func (r *Restaurant) OwnedBy(userUID string) bool {
	return r.Owner != nil && r.Owner.UID == userUID
}
