package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserRouter(t *testing.T) (*gin.Engine, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	config.DB = db

	user := models.User{Email: t.Name() + "@example.com", Password: "x", FullName: "Test User"}
	require.NoError(t, db.Create(&user).Error)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("email", user.Email)
	})
	r.GET("/user/profile", GetProfile)
	r.PUT("/user/profile", UpdateProfile)
	r.DELETE("/user/profile", DeleteAccount)

	return r, user
}

func TestDeleteAccount_DisablesUser(t *testing.T) {
	r, user := setupUserRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/user/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, config.DB.First(&stored, user.ID).Error)
	assert.True(t, stored.Disabled)

	// a disabled account no longer resolves as a profile
	req = httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile_TogglesAlertEmails(t *testing.T) {
	r, user := setupUserRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/user/profile", strings.NewReader(`{"alert_emails": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, config.DB.First(&stored, user.ID).Error)
	assert.True(t, stored.AlertEmails)
}
