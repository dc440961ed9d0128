package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/services"
)

// MaintenanceHandler handles housekeeping requests from schedulers
type MaintenanceHandler struct {
	maintenanceService services.MaintenanceServicer
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService services.MaintenanceServicer) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// PurgeSessions removes expired sessions and their loaded records
// @Summary     Purge expired sessions
// @Tags        internal
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} services.PurgeResult "Purge result"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Maintenance not configured"
// @Router      /internal/sessions/purge [post]
func (h *MaintenanceHandler) PurgeSessions(c *gin.Context) {
	result, err := h.maintenanceService.PurgeSessions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
