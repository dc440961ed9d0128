package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/services"
)

// ObjectiveHandler handles objective-related requests
type ObjectiveHandler struct {
	resource resource[models.Objective]
}

// NewObjectiveHandler creates a new ObjectiveHandler
func NewObjectiveHandler(objectiveService services.ObjectiveServicer, activityService services.ActivityServicer) *ObjectiveHandler {
	return &ObjectiveHandler{resource: resource[models.Objective]{
		service:  objectiveService,
		activity: activityService,
		name:     "objective",
	}}
}

// ObjectiveRequest represents the request payload for creating or updating an objective
type ObjectiveRequest struct {
	Name   string          `json:"name" binding:"required,max=100"`
	Target decimal.Decimal `json:"target" binding:"gte=0" swaggertype:"number"`
	Term   models.Date     `json:"term" swaggertype:"string" example:"2025-12-31"`
}

func (r ObjectiveRequest) apply(o models.Objective) models.Objective {
	o.Name = r.Name
	o.Target = r.Target
	o.Term = r.Term
	return o
}

func (r ObjectiveRequest) changes() map[string]any {
	return map[string]any{"name": r.Name, "target": r.Target.String()}
}

// ListObjectives handles the retrieval of the user's objectives
// @Summary     List objectives
// @Tags        objectives
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} map[string]interface{} "Page of objectives"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /objectives [get]
func (h *ObjectiveHandler) ListObjectives(c *gin.Context) { h.resource.list(c) }

// GetObjective handles the retrieval of a specific objective
// @Summary     Get objective by ID
// @Tags        objectives
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Objective ID"
// @Success     200 {object} map[string]models.Objective "Objective details"
// @Failure     404 {object} ErrorResponse "Objective not found"
// @Router      /objectives/{id} [get]
func (h *ObjectiveHandler) GetObjective(c *gin.Context) { h.resource.get(c) }

// CreateObjective handles the creation of a new objective
// @Summary     Create an objective
// @Tags        objectives
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ObjectiveRequest true "Objective details"
// @Success     201 {object} map[string]models.Objective "Objective created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /objectives [post]
func (h *ObjectiveHandler) CreateObjective(c *gin.Context) {
	createResource[models.Objective, ObjectiveRequest](h.resource, c)
}

// UpdateObjective handles updating an existing objective
// @Summary     Update an objective
// @Tags        objectives
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Objective ID"
// @Param       request body ObjectiveRequest true "Objective details"
// @Success     200 {object} map[string]models.Objective "Objective updated"
// @Failure     404 {object} ErrorResponse "Objective not found"
// @Router      /objectives/{id} [put]
func (h *ObjectiveHandler) UpdateObjective(c *gin.Context) {
	updateResource[models.Objective, ObjectiveRequest](h.resource, c)
}

// DeleteObjective handles deleting an objective
// @Summary     Delete an objective
// @Tags        objectives
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Objective ID"
// @Success     200 {object} map[string]string "Objective deleted"
// @Failure     404 {object} ErrorResponse "Objective not found"
// @Router      /objectives/{id} [delete]
func (h *ObjectiveHandler) DeleteObjective(c *gin.Context) { h.resource.delete(c) }
