package handler

import (
	"time"

	"smartchakula/internal/model"
)

// UserView is the public projection of a user.
type UserView struct {
	UID       string  `json:"uid"`
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
}

// AuthView is returned by every operation that issues a token.
type AuthView struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         *UserView `json:"user"`
}

// RestaurantView is the public projection of a restaurant.
type RestaurantView struct {
	UID         string    `json:"uid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhoneNumber string    `json:"phoneNumber"`
	Region      string    `json:"region"`
	City        string    `json:"city"`
	IsOpen      bool      `json:"isOpen"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	OwnerUID    string    `json:"ownerUid"`
	Image       string    `json:"image"`
	Type        string    `json:"type"`
	Rank        string    `json:"rank"`
	Address     string    `json:"address"`
	WebsiteURL  string    `json:"websiteUrl"`
	Days        string    `json:"days"`
	IsActive    bool      `json:"isActive"`
	IsDeleted   bool      `json:"isDeleted"`
	Owner       *UserView `json:"owner"`
}

// CategoryView is the public projection of a category.
type CategoryView struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	RestaurantUID  string `json:"restaurantUid"`
	RestaurantName string `json:"restaurantName"`
	IsActive       bool   `json:"isActive"`
	IsDeleted      bool   `json:"isDeleted"`
}

// MenuItemView is the public projection of a menu item.
type MenuItemView struct {
	UID            string  `json:"uid"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Image          string  `json:"image"`
	IsAvailable    bool    `json:"isAvailable"`
	CategoryUID    string  `json:"categoryUid"`
	CategoryName   string  `json:"categoryName"`
	RestaurantUID  string  `json:"restaurantUid"`
	RestaurantName string  `json:"restaurantName"`
	IsActive       bool    `json:"isActive"`
	IsDeleted      bool    `json:"isDeleted"`
}

func userView(u *model.User) *UserView {
	if u == nil {
		return nil
	}
	v := &UserView{
		UID:      u.UID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     string(u.Role),
		IsActive: u.Active,
	}
	if !u.CreatedAt.IsZero() {
		v.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return v
}

func userViews(users []model.User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, *userView(&users[i]))
	}
	return out
}

func restaurantView(r *model.Restaurant) *RestaurantView {
	v := &RestaurantView{
		UID:         r.UID,
		Name:        r.Name,
		Description: r.Description,
		PhoneNumber: r.PhoneNumber,
		Region:      r.Region,
		City:        r.City,
		IsOpen:      r.IsOpen,
		OpeningTime: r.OpeningTime,
		ClosingTime: r.ClosingTime,
		Image:       r.Image,
		Type:        r.Type,
		Rank:        r.Rank,
		Address:     r.Address,
		WebsiteURL:  r.WebsiteURL,
		Days:        r.Days,
		IsActive:    r.IsActive(),
		IsDeleted:   r.IsDeleted(),
		Owner:       userView(r.Owner),
	}
	if r.Owner != nil {
		v.OwnerUID = r.Owner.UID
	}
	return v
}

func restaurantViews(restaurants []model.Restaurant) []RestaurantView {
	out := make([]RestaurantView, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, *restaurantView(&restaurants[i]))
	}
	return out
}

func categoryView(c *model.Category) *CategoryView {
	v := &CategoryView{
		UID:         c.UID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive(),
		IsDeleted:   c.IsDeleted(),
	}
	if c.Restaurant != nil {
		v.RestaurantUID = c.Restaurant.UID
		v.RestaurantName = c.Restaurant.Name
	}
	return v
}

func categoryViews(categories []model.Category) []CategoryView {
	out := make([]CategoryView, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryView(&categories[i]))
	}
	return out
}

func menuItemView(m *model.MenuItem) *MenuItemView {
	v := &MenuItemView{
		UID:         m.UID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price.InexactFloat64(),
		Image:       m.Image,
		IsAvailable: m.IsAvailable,
		IsActive:    m.IsActive(),
		IsDeleted:   m.IsDeleted(),
	}
	if m.Category != nil {
		v.CategoryUID = m.Category.UID
		v.CategoryName = m.Category.Name
	}
	if m.Restaurant != nil {
		v.RestaurantUID = m.Restaurant.UID
		v.RestaurantName = m.Restaurant.Name
	}
	return v
}

func menuItemViews(items []model.MenuItem) []MenuItemView {
	out := make([]MenuItemView, 0, len(items))
	for i := range items {
		out = append(out, *menuItemView(&items[i]))
	}
	return out
}
