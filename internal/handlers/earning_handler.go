package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/services"
)

// EarningHandler handles earning-related requests
type EarningHandler struct {
	resource resource[models.Earning]
}

// NewEarningHandler creates a new EarningHandler
func NewEarningHandler(earningService services.EarningServicer, activityService services.ActivityServicer) *EarningHandler {
	return &EarningHandler{resource: resource[models.Earning]{
		service:  earningService,
		activity: activityService,
		name:     "earning",
	}}
}

// EarningRequest represents the request payload for creating or updating an earning
type EarningRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Description  string          `json:"description" binding:"max=255"`
	Value        decimal.Decimal `json:"value" binding:"gte=0" swaggertype:"number"`
	ReceivedDate models.Date     `json:"receivedDate" swaggertype:"string" example:"2024-03-05"`
	Recurring    bool            `json:"recurring"`
}

func (r EarningRequest) apply(e models.Earning) models.Earning {
	e.Name = r.Name
	e.Description = r.Description
	e.Value = r.Value
	e.ReceivedDate = r.ReceivedDate
	e.Recurring = r.Recurring
	return e
}

func (r EarningRequest) changes() map[string]any {
	return map[string]any{"name": r.Name, "value": r.Value.String(), "recurring": r.Recurring}
}

// ListEarnings handles the retrieval of the user's earnings
// @Summary     List earnings
// @Tags        earnings
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} map[string]interface{} "Page of earnings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /earnings [get]
func (h *EarningHandler) ListEarnings(c *gin.Context) { h.resource.list(c) }

// GetEarning handles the retrieval of a specific earning
// @Summary     Get earning by ID
// @Tags        earnings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Earning ID"
// @Success     200 {object} map[string]models.Earning "Earning details"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Router      /earnings/{id} [get]
func (h *EarningHandler) GetEarning(c *gin.Context) { h.resource.get(c) }

// CreateEarning handles the creation of a new earning
// @Summary     Create an earning
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EarningRequest true "Earning details"
// @Success     201 {object} map[string]models.Earning "Earning created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /earnings [post]
func (h *EarningHandler) CreateEarning(c *gin.Context) {
	createResource[models.Earning, EarningRequest](h.resource, c)
}

// UpdateEarning handles updating an existing earning
// @Summary     Update an earning
// @Tags        earnings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Earning ID"
// @Param       request body EarningRequest true "Earning details"
// @Success     200 {object} map[string]models.Earning "Earning updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Router      /earnings/{id} [put]
func (h *EarningHandler) UpdateEarning(c *gin.Context) {
	updateResource[models.Earning, EarningRequest](h.resource, c)
}

// DeleteEarning handles deleting an earning
// @Summary     Delete an earning
// @Tags        earnings
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Earning ID"
// @Success     200 {object} map[string]string "Earning deleted"
// @Failure     404 {object} ErrorResponse "Earning not found"
// @Router      /earnings/{id} [delete]
func (h *EarningHandler) DeleteEarning(c *gin.Context) { h.resource.delete(c) }
