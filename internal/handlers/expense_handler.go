package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	resource resource[models.Expense]
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, activityService services.ActivityServicer) *ExpenseHandler {
	return &ExpenseHandler{resource: resource[models.Expense]{
		service:  expenseService,
		activity: activityService,
		name:     "expense",
	}}
}

// ExpenseRequest represents the request payload for creating or updating an expense
type ExpenseRequest struct {
	Name        string               `json:"name" binding:"required,max=100"`
	Description string               `json:"description" binding:"max=255"`
	Value       decimal.Decimal      `json:"value" binding:"gte=0" swaggertype:"number"`
	DueDate     models.Date          `json:"dueDate" swaggertype:"string" example:"2024-03-10"`
	Status      models.ExpenseStatus `json:"status" binding:"required,expense_status" enums:"PAID,PENDING,OVERDUE,CANCELLED"`
	CategoryID  *models.ID           `json:"categoryId" swaggertype:"string"`
}

func (r ExpenseRequest) apply(e models.Expense) models.Expense {
	e.Name = r.Name
	e.Description = r.Description
	e.Value = r.Value
	e.DueDate = r.DueDate
	e.Status = r.Status
	e.CategoryID = r.CategoryID
	e.Category = nil
	return e
}

func (r ExpenseRequest) changes() map[string]any {
	changes := map[string]any{"name": r.Name, "value": r.Value.String(), "status": r.Status}
	if r.CategoryID != nil {
		changes["category_id"] = r.CategoryID.String()
	}
	return changes
}

// ListExpenses handles the retrieval of the user's expenses
// @Summary     List expenses
// @Description Get a page of the authenticated user's expenses with their categories
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} map[string]interface{} "Page of expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) { h.resource.list(c) }

// GetExpense handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]models.Expense "Expense details"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) { h.resource.get(c) }

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} map[string]models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	createResource[models.Expense, ExpenseRequest](h.resource, c)
}

// UpdateExpense handles updating an existing expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} map[string]models.Expense "Expense updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	updateResource[models.Expense, ExpenseRequest](h.resource, c)
}

// DeleteExpense handles deleting an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]string "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) { h.resource.delete(c) }
