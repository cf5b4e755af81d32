package controllers

import (
	"net/http"

	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	email := c.MustGet("email").(string)

	profile, err := services.GetUserProfile(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	email := c.MustGet("email").(string)

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateUserProfile(email, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// DeleteAccount disables the account; readings are kept but no further
// login or submission is possible.
func DeleteAccount(c *gin.Context) {
	email := c.MustGet("email").(string)

	if err := services.DeleteUser(email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account disabled"})
}
