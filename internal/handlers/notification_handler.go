package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/notify"
	"finboard/internal/services"
)

// NotificationHandler hands out the user's pending notifications
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns and clears the pending notifications
// @Summary     Pending notifications
// @Description Returns the notifications raised since the last call, oldest first
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]notify.Notification "Notifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pending := h.notificationService.Drain(userID)
	if pending == nil {
		pending = []notify.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": pending})
}
