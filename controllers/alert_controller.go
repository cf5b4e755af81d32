package controllers

import (
	"net/http"
	"strconv"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
)

// GET /alerts?limit=N — recent out-of-range alerts, newest first.
func ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.Query("limit"))

	alerts, err := services.ListAlerts(config.DB, uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
