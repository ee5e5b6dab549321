package handler

import (
	"github.com/labstack/echo/v4"

	"smartchakula/internal/response"
	"smartchakula/internal/service"
)

// RestaurantHandler handles restaurant endpoints.
type RestaurantHandler struct {
	restaurantService service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(restaurantService service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// RestaurantRequest carries restaurant fields. Omitted fields are left
// untouched on update.
type RestaurantRequest struct {
	OwnerUID    string  `json:"ownerUid"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PhoneNumber *string `json:"phoneNumber"`
	Region      *string `json:"region"`
	City        *string `json:"city"`
	IsOpen      *bool   `json:"isOpen"`
	OpeningTime *string `json:"openingTime"`
	ClosingTime *string `json:"closingTime"`
	Image       *string `json:"image"`
	Type        *string `json:"type"`
	Rank        *string `json:"rank"`
	Address     *string `json:"address"`
	WebsiteURL  *string `json:"websiteUrl" validate:"omitempty,url"`
	Days        *string `json:"days"`
}

func (r RestaurantRequest) input() service.RestaurantInput {
	return service.RestaurantInput{
		OwnerUID:    r.OwnerUID,
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
	}
}

// List godoc
// @Summary List active restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {object} response.Envelope{data=[]RestaurantView}
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants, err := h.restaurantService.ListActive(c.Request().Context())
	if err != nil {
		return reply(c, response.ListError("Failed to fetch restaurants", err))
	}
	return reply(c, response.List("Restaurants fetched successfully", restaurantViews(restaurants)))
}

// ListMine godoc
// @Summary List the restaurants the caller manages
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]RestaurantView}
// @Router /me/restaurants [get]
func (h *RestaurantHandler) ListMine(c echo.Context) error {
	restaurants, err := h.restaurantService.ListManaged(c.Request().Context(), identity(c))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch restaurants", err))
	}
	return reply(c, response.List("Restaurants fetched successfully", restaurantViews(restaurants)))
}

// Get godoc
// @Summary Get a restaurant
// @Tags restaurants
// @Produce json
// @Param uid path string true "Restaurant UID"
// @Success 200 {object} response.Envelope{data=RestaurantView}
// @Router /restaurants/{uid} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	restaurant, err := h.restaurantService.GetByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.FromError("Failed to fetch restaurant", err))
	}
	return reply(c, response.Success("Restaurant fetched successfully", restaurantView(restaurant)))
}

// Create godoc
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RestaurantRequest true "Restaurant data"
// @Success 200 {object} response.Envelope{data=RestaurantView}
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req RestaurantRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	restaurant, err := h.restaurantService.Create(c.Request().Context(), identity(c), req.input())
	if err != nil {
		return reply(c, response.FromError("Failed to create restaurant", err))
	}
	return reply(c, response.Success("Restaurant created successfully", restaurantView(restaurant)))
}

// Update godoc
// @Summary Update a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Restaurant UID"
// @Param request body RestaurantRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=RestaurantView}
// @Router /restaurants/{uid} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	var req RestaurantRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	restaurant, err := h.restaurantService.Update(c.Request().Context(), identity(c), c.Param("uid"), req.input())
	if err != nil {
		return reply(c, response.FromError("Failed to update restaurant", err))
	}
	return reply(c, response.Success("Restaurant updated successfully", restaurantView(restaurant)))
}

// Delete godoc
// @Summary Soft delete a restaurant
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Restaurant UID"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{uid} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	uid := c.Param("uid")
	if err := h.restaurantService.Delete(c.Request().Context(), identity(c), uid); err != nil {
		return reply(c, response.FromError("Failed to delete restaurant", err))
	}
	return reply(c, response.Success("Restaurant deleted successfully", uid))
}
