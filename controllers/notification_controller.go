package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/services"
)

type NotificationController struct {
	Push *services.PushService
}

func NewNotificationController(push *services.PushService) *NotificationController {
	return &NotificationController{Push: push}
}

type RegisterPushInput struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

// RegisterDevice exchanges an FCM token for an SNS endpoint tied to the
// caller.
func (n *NotificationController) RegisterDevice(c *gin.Context) {
	var input RegisterPushInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endpoint, err := n.Push.RegisterDevice(c.Request.Context(), c.GetUint("userID"), input.Platform, input.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"endpoint": endpoint})
}
