package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/services"
	"finboard/internal/state"
)

// StateHandler exposes the load state of the user's records
type StateHandler struct {
	workspaceService services.WorkspaceServicer
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(workspaceService services.WorkspaceServicer) *StateHandler {
	return &StateHandler{workspaceService: workspaceService}
}

// StateResponse reports the status of every collection
type StateResponse struct {
	Statuses state.Statuses `json:"statuses"`
	Loaded   bool           `json:"loaded"`
}

func newStateResponse(st state.Statuses) StateResponse {
	loaded := st.Categories == state.Loaded && st.Earnings == state.Loaded &&
		st.Expenses == state.Loaded && st.Investments == state.Loaded && st.Objectives == state.Loaded
	return StateResponse{Statuses: st, Loaded: loaded}
}

// Sync refetches every collection
// @Summary     Refresh records
// @Description Refetch every collection from the backend
// @Tags        state
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} StateResponse "Collections refreshed"
// @Failure     401 {object} ErrorResponse "Unauthorized or session expired"
// @Failure     502 {object} ErrorResponse "Backend unavailable"
// @Router      /sync [post]
func (h *StateHandler) Sync(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.workspaceService.Sync(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStateResponse(statuses))
}

// GetState returns the load status of every collection
// @Summary     Collection status
// @Tags        state
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} StateResponse "Collection status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.workspaceService.Statuses(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStateResponse(statuses))
}
