package controller

import (
	"net/http"
	"strconv"

	"sukoon/service"

	"github.com/gin-gonic/gin"
)

type MoodController struct {
	Moods *service.MoodService
}

func (m MoodController) Create(c *gin.Context) {
	var input service.MoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	entry, err := m.Moods.Record(requestUserId(c), &input)
	if err != nil {
		logger.Warnf("[%s] Failed to record mood: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mood entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (m MoodController) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := m.Moods.List(requestUserId(c), limit)
	if err != nil {
		logger.Warnf("[%s] Failed to list moods: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mood entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (m MoodController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := m.Moods.Delete(requestUserId(c), uint(id)); err != nil {
		logger.Warnf("[%s] Failed to delete mood %d: %s", c.GetString("requestId"), id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mood entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood entry deleted"})
}
