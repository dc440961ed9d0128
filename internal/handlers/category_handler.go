package handlers

import (
	"github.com/gin-gonic/gin"

	"finboard/internal/models"
	"finboard/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	resource resource[models.Category]
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, activityService services.ActivityServicer) *CategoryHandler {
	return &CategoryHandler{resource: resource[models.Category]{
		service:  categoryService,
		activity: activityService,
		name:     "category",
	}}
}

// CategoryRequest represents the request payload for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
	Color       string `json:"color" binding:"omitempty,hex_color"`
}

func (r CategoryRequest) apply(c models.Category) models.Category {
	c.Name = r.Name
	c.Description = r.Description
	c.Color = r.Color
	return c
}

func (r CategoryRequest) changes() map[string]any {
	return map[string]any{"name": r.Name, "color": r.Color}
}

// CategoryPage is a page of categories.
type CategoryPage struct {
	Data       []models.Category `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// ListCategories handles the retrieval of the user's categories
// @Summary     List categories
// @Description Get a page of the authenticated user's expense categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} CategoryPage "Page of categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) { h.resource.list(c) }

// GetCategory handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]models.Category "Category details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) { h.resource.get(c) }

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new expense category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} map[string]models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	createResource[models.Category, CategoryRequest](h.resource, c)
}

// UpdateCategory handles updating an existing category. Expenses that use it
// are relinked.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Category ID"
// @Param       request body CategoryRequest true "Category details"
// @Success     200 {object} map[string]models.Category "Category updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	updateResource[models.Category, CategoryRequest](h.resource, c)
}

// DeleteCategory handles deleting a category. Expenses that used it become
// uncategorized.
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]string "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) { h.resource.delete(c) }
