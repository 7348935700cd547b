package controller

import (
	"net/http"

	"sukoon/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	Subscriptions *service.SubscriptionService
}

func (s SubscriptionController) Status(c *gin.Context) {
	status, err := s.Subscriptions.Status(uint(c.GetInt64("UserId")))
	if err != nil {
		logger.Warnf("[%s] Failed to load subscription status: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription status"})
		return
	}
	c.JSON(http.StatusOK, status)
}
