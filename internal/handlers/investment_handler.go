package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/services"
)

// InvestmentHandler handles investment-related requests
type InvestmentHandler struct {
	resource resource[models.Investment]
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService services.InvestmentServicer, activityService services.ActivityServicer) *InvestmentHandler {
	return &InvestmentHandler{resource: resource[models.Investment]{
		service:  investmentService,
		activity: activityService,
		name:     "investment",
	}}
}

// InvestmentRequest represents the request payload for creating or updating an investment
type InvestmentRequest struct {
	Name           string                `json:"name" binding:"required,max=100"`
	Description    string                `json:"description" binding:"max=255"`
	Value          decimal.Decimal       `json:"value" binding:"gte=0" swaggertype:"number"`
	Percentage     decimal.Decimal       `json:"percentage" binding:"gte=0" swaggertype:"number" example:"12"`
	Months         int                   `json:"months" binding:"required,gte=1" example:"12"`
	InvestmentType models.InvestmentType `json:"investmentType" binding:"required,investment_type" enums:"TESOURO,FIIS,ACOES,POUPANCA,CDI,CRYPTO"`
	ObjectiveID    *models.ID            `json:"objectiveId" swaggertype:"string"`
}

func (r InvestmentRequest) apply(i models.Investment) models.Investment {
	i.Name = r.Name
	i.Description = r.Description
	i.Value = r.Value
	i.Percentage = r.Percentage
	i.Months = r.Months
	i.InvestmentType = r.InvestmentType
	i.ObjectiveID = r.ObjectiveID
	return i
}

func (r InvestmentRequest) changes() map[string]any {
	return map[string]any{
		"name":            r.Name,
		"value":           r.Value.String(),
		"investment_type": r.InvestmentType,
	}
}

// ListInvestments handles the retrieval of the user's investments
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} map[string]interface{} "Page of investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) { h.resource.list(c) }

// GetInvestment handles the retrieval of a specific investment
// @Summary     Get investment by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]models.Investment "Investment details"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) { h.resource.get(c) }

// CreateInvestment handles the creation of a new investment
// @Summary     Create an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InvestmentRequest true "Investment details"
// @Success     201 {object} map[string]models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Backend rejected or unavailable"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	createResource[models.Investment, InvestmentRequest](h.resource, c)
}

// UpdateInvestment handles updating an existing investment
// @Summary     Update an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Investment ID"
// @Param       request body InvestmentRequest true "Investment details"
// @Success     200 {object} map[string]models.Investment "Investment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	updateResource[models.Investment, InvestmentRequest](h.resource, c)
}

// DeleteInvestment handles deleting an investment
// @Summary     Delete an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) { h.resource.delete(c) }
