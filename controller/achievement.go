package controller

import (
	"net/http"

	"sukoon/service"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Achievements *service.AchievementService
}

func (a AchievementController) List(c *gin.Context) {
	views, err := a.Achievements.ListForUser(requestUserId(c))
	if err != nil {
		logger.Warnf("[%s] Failed to list achievements: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": views})
}
