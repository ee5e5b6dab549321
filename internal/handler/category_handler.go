package handler

import (
	"github.com/labstack/echo/v4"

	"smartchakula/internal/response"
	"smartchakula/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a category create or update.
type CategoryRequest struct {
	RestaurantUID string `json:"restaurantUid"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
}

// List godoc
// @Summary List active categories
// @Description With restaurantUid only that restaurant's categories are listed.
// @Tags categories
// @Produce json
// @Param restaurantUid query string false "Restaurant UID"
// @Success 200 {object} response.Envelope{data=[]CategoryView}
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.ListByRestaurant(c.Request().Context(), c.QueryParam("restaurantUid"))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch categories", err))
	}
	return reply(c, response.List("Categories fetched successfully", categoryViews(categories)))
}

// ListByRestaurant godoc
// @Summary List the categories of a restaurant
// @Tags categories
// @Produce json
// @Param uid path string true "Restaurant UID"
// @Success 200 {object} response.Envelope{data=[]CategoryView}
// @Router /restaurants/{uid}/categories [get]
func (h *CategoryHandler) ListByRestaurant(c echo.Context) error {
	categories, err := h.categoryService.ListByRestaurant(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.ListError("Failed to fetch categories", err))
	}
	return reply(c, response.List("Categories fetched successfully", categoryViews(categories)))
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param uid path string true "Category UID"
// @Success 200 {object} response.Envelope{data=CategoryView}
// @Router /categories/{uid} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categoryService.GetByUID(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return reply(c, response.FromError("Failed to fetch category", err))
	}
	return reply(c, response.Success("Category fetched successfully", categoryView(category)))
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category data"
// @Success 200 {object} response.Envelope{data=CategoryView}
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	category, err := h.categoryService.Create(c.Request().Context(), identity(c), service.CategoryInput{
		RestaurantUID: req.RestaurantUID,
		Name:          req.Name,
		Description:   req.Description,
	})
	if err != nil {
		return reply(c, response.FromError("Failed to create category", err))
	}
	return reply(c, response.Success("Category created successfully", categoryView(category)))
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Category UID"
// @Param request body CategoryRequest true "Category data"
// @Success 200 {object} response.Envelope{data=CategoryView}
// @Router /categories/{uid} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req CategoryRequest
	if env := bind(c, &req); env != nil {
		return reply(c, *env)
	}

	category, err := h.categoryService.Update(c.Request().Context(), identity(c), c.Param("uid"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return reply(c, response.FromError("Failed to update category", err))
	}
	return reply(c, response.Success("Category updated successfully", categoryView(category)))
}

// Delete godoc
// @Summary Soft delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param uid path string true "Category UID"
// @Success 200 {object} response.Envelope
// @Router /categories/{uid} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	uid := c.Param("uid")
	if err := h.categoryService.Delete(c.Request().Context(), identity(c), uid); err != nil {
		return reply(c, response.FromError("Failed to delete category", err))
	}
	return reply(c, response.Success("Category deleted successfully", uid))
}
