package controller

import (
	"net/http"
	"strconv"

	"sukoon/model"
	"sukoon/service"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Chats         *service.ChatService
	Achievements  *service.AchievementService
	Subscriptions *service.SubscriptionService
}

// Chat handles one conversational turn for both anonymous and authenticated
// callers. A failed generation still answers 200 with fallback:true: a
// degraded reply is always preferable to an error page on this surface.
func (ch ChatController) Chat(c *gin.Context) {
	var input struct {
		Message  string `json:"message" binding:"required"`
		Language string `json:"language"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userId := requestUserId(c)
	if userId == "" && !ch.Subscriptions.AllowAnonymousChat(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily limit reached, please sign in"})
		return
	}

	result, err := ch.Chats.Chat(c.Request.Context(), userId, input.Message, input.Language)
	if err != nil {
		// only the loss of the user's own message lands here
		logger.Warnf("[%s] chat persistence failed for user %s: %s", c.GetString("requestId"), userId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save your message", "success": false})
		return
	}

	if userId != "" {
		if err := ch.Achievements.RecordFirstChat(userId); err != nil {
			logger.Warnf("[%s] first-chat achievement failed for user %s: %s", c.GetString("requestId"), userId, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"response": result.Text,
		"success":  true,
		"language": result.Language,
		"fallback": result.Fallback,
	})
}

// History returns the caller's conversation in chronological order.
func (ch ChatController) History(c *gin.Context) {
	userId := requestUserId(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := ch.Chats.History(c.Request.Context(), userId, limit)
	if err != nil {
		logger.Warnf("[%s] failed to load history for user %s: %s", c.GetString("requestId"), userId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ClearHistory deletes the caller's conversation. A failed delete is
// reported as a failure, never masked as success.
func (ch ChatController) ClearHistory(c *gin.Context) {
	userId := requestUserId(c)

	if err := ch.Chats.ClearHistory(c.Request.Context(), userId); err != nil {
		logger.Warnf("[%s] failed to clear history for user %s: %s", c.GetString("requestId"), userId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}
