package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithemmax/WordLinkapp/internal/middleware"
	"github.com/codewithemmax/WordLinkapp/internal/services"
	"github.com/codewithemmax/WordLinkapp/internal/utils"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	notifications, err := h.notifications.List(c.Request.Context(), user.ID, 50)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	if err := h.notifications.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.notifications.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
