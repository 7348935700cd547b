package controller

import (
	"net/http"
	"strconv"

	"sukoon/service"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	Resources     *service.ResourceService
	Subscriptions *service.SubscriptionService
}

func (r ResourceController) List(c *gin.Context) {
	resources, err := r.Resources.List(c.Query("category"))
	if err != nil {
		logger.Warnf("[%s] Failed to list resources: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resources"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (r ResourceController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	view, err := r.Resources.Get(uint(id))
	if err != nil {
		logger.Warnf("[%s] Failed to load resource %d: %s", c.GetString("requestId"), id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	if !r.Subscriptions.CanAccessResource(uint(c.GetInt64("UserId")), &view.Resource) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Premium subscription required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": view})
}

// Import pulls an article from a URL into the library. Admin tooling.
func (r ResourceController) Import(c *gin.Context) {
	var input service.ImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	resource, err := r.Resources.Import(c.Request.Context(), &input)
	if err != nil {
		logger.Warnf("[%s] Failed to import resource from %s: %s", c.GetString("requestId"), input.Url, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import resource"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": resource})
}
