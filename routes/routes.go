package routes

import (
	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/controllers"
	"github.com/MominAnxs/diabetes-tracker/middlewares"
	"github.com/MominAnxs/diabetes-tracker/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rt *services.RealtimeHub, ps *services.PushService) *gin.Engine {
	r := gin.Default()

	readingCtrl := controllers.NewReadingController(services.NewReadingService(config.DB))
	realtimeCtrl := controllers.NewRealtimeController(rt)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected reading routes
	readings := r.Group("/readings")
	readings.Use(middlewares.AuthMiddleware())
	{
		readings.GET("", readingCtrl.List)
		readings.POST("", readingCtrl.Submit)
		readings.GET("/stats", readingCtrl.Stats)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteAccount)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/alerts", controllers.ListAlerts)
		protected.GET("/ws", realtimeCtrl.ReadingsWS)
	}

	if ps != nil {
		deviceCtrl := controllers.NewDeviceController(ps)
		devices := r.Group("/user/devices")
		devices.Use(middlewares.AuthMiddleware())
		devices.POST("", deviceCtrl.Register)

		devCtrl := controllers.NewDevController(ps)
		dev := r.Group("/dev")
		dev.Use(middlewares.AuthMiddleware())
		dev.POST("/push-test", devCtrl.PushTest)
	}

	return r
}
