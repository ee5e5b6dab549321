package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smartchakula/internal/response"
	"smartchakula/internal/service"
)

// MenuItemHandler handles menu item endpoints.
type MenuItemHandler struct {
	menuItemService service.MenuItemService
}

// NewMenuItemHandler creates a new menu item handler.
func NewMenuItemHandler(menuItemService service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{menuItemService: menuItemService}
}

// MenuItemRequest represents a menu item create or update. CategoryUID and
// RestaurantUID are ignored on update.
type MenuItemRequest struct {
	CategoryUID   string          `json:"categoryUid"`
	RestaurantUID string          `json:"restaurantUid"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" swaggertype:"number"`
	Image         string          `json:"image"`
	IsAvailable   *bool           `json:"isAvailable"`
}

func (r MenuItemRequest) input() service.MenuItemInput {
	return service.MenuItemInput{
		CategoryUID:   r.CategoryUID,
		RestaurantUID: r.RestaurantUID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Image:         r.Image,
		IsAvailable:   r.IsAvailable,
	}
}

// List godoc
// @Summary List active menu items
// @Tags menu-items
// @Produce json
// @Success 200 {object} response.Envelope{data=[]MenuItemView}
// @Router /menu-items [get]
func (h *MenuItemHandler) List(c echo.Context) error {
	items, err := h.menuItemService.ListAllActive(c.Request().Context())
	if err != nil {
		return reply(c, response.ListError("Failed to fetch menu items", err))
	}
	return reply(c, response.List("Menu items fetched successfully", menuItemViews(items)))
}

// ListByCategory godoc
// @Summary List the menu items of a category
// @Tags menu-items
// @Produce json
// @Param uid path string true "Category UID"
// @Success 200 {object} response.Envelope{data=[]MenuItemView}
// @Router /categories/{uid}/menu-items [get]
func (h *MenuItemHandler) ListByCategory(c echo.Context) error {
	items, err := h.menuItemService.ListByCategory(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch menu items", err))
	}
	return reply(c, response.List("Menu items fetched successfully", menuItemViews(items)))
}

// ListByRestaurant godoc
// @Summary List the menu items of a restaurant
// @Tags menu-items
// @Produce json
// @Param uid path string true "Restaurant UID"
// @Success 200 {object} response.Envelope{data=[]MenuItemView}
// @Router /restaurants/{uid}/menu-items [get]
func (h *MenuItemHandler) ListByRestaurant(c echo.Context) error {
	items, err := h.menuItemService.ListByRestaurant(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch menu items", err))
	}
	return reply(c, response.List("Menu items fetched successfully", menuItemViews(items)))
}

// Get godoc
// @Summary Get a menu item
// @Tags menu-items
// @Produce json
// @Param uid path string true "Menu item UID"
// @Success 200 {object} response.Envelope{data=MenuItemView}
// @Router /menu-items/{uid} [get]
func (h *MenuItemHandler) Get(c echo.Context) error {
	item, err := h.menuItemService.GetByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.FromError("Failed to fetch menu item", err))
	}
	return reply(c, response.Success("Menu item fetched successfully", menuItemView(item)))
}

// Create godoc
// @Summary Create a menu item
// @Description Oversized descriptions are truncated and oversized image URLs dropped; the envelope status is then Warning.
// @Tags menu-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuItemRequest true "Menu item data"
// @Success 200 {object} response.Envelope{data=MenuItemView}
// @Router /menu-items [post]
func (h *MenuItemHandler) Create(c echo.Context) error {
	var req MenuItemRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	item, warnings, err := h.menuItemService.Create(c.Request().Context(), identity(c), req.input())
	if err != nil {
		return reply(c, response.FromError("Failed to save menu item", err))
	}
	return reply(c, response.WithWarnings("Menu item saved successfully", menuItemView(item), warnings))
}

// Update godoc
// @Summary Update a menu item
// @Tags menu-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Menu item UID"
// @Param request body MenuItemRequest true "Menu item data"
// @Success 200 {object} response.Envelope{data=MenuItemView}
// @Router /menu-items/{uid} [put]
func (h *MenuItemHandler) Update(c echo.Context) error {
	var req MenuItemRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	item, warnings, err := h.menuItemService.Update(c.Request().Context(), identity(c), c.Param("uid"), req.input())
	if err != nil {
		return reply(c, response.FromError("Failed to update menu item", err))
	}
	return reply(c, response.WithWarnings("Menu item updated successfully", menuItemView(item), warnings))
}

// Delete godoc
// @Summary Soft delete a menu item
// @Tags menu-items
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Menu item UID"
// @Success 200 {object} response.Envelope
// @Router /menu-items/{uid} [delete]
func (h *MenuItemHandler) Delete(c echo.Context) error {
	uid := c.Param("uid")
	if err := h.menuItemService.Delete(c.Request().Context(), identity(c), uid); err != nil {
		return reply(c, response.FromError("Failed to delete menu item", err))
	}
	return reply(c, response.Success("Menu item deleted successfully", uid))
}
