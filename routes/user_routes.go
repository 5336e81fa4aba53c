package routes

import (
	"github.com/campusride/CampusRide/controllers"
	"github.com/campusride/CampusRide/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)
	router.POST("/forgot-password", controllers.ForgotPassword)
	router.GET("/schools", controllers.ListSchools)

	// Protected routes
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)
		protected.DELETE("/profile", controllers.DeleteAccount)
		protected.POST("/change-password", controllers.ChangePassword)
		protected.GET("/authorization", controllers.GetAuthorization)

		protected.GET("/wallet", controllers.GetWallet)
		protected.GET("/transactions", controllers.GetTransactions)
		protected.POST("/transactions", controllers.CreateTransaction)
		protected.GET("/notifications", controllers.GetNotifications)

		protected.GET("/free-rides", controllers.GetFreeRideTokens)
		protected.POST("/free-rides/social-share", controllers.CollectSocialShareToken)

		protected.GET("/driver", controllers.GetDriverInfo)
		protected.PUT("/driver", controllers.UpdateDriverInfo)
	}
}
