package routes

import (
	"github.com/campusride/CampusRide/controllers"
	"github.com/campusride/CampusRide/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Rate management
		admin.GET("/percentage-prices", controllers.ListPercentagePrices)
		admin.POST("/percentage-prices", controllers.CreatePercentagePrice)
		admin.PUT("/percentage-prices/:title", controllers.UpdatePercentagePrice)
		admin.DELETE("/percentage-prices/:title", controllers.DeletePercentagePrice)

		// Ledger
		admin.GET("/transactions", controllers.AdminListTransactions)
		admin.GET("/transactions/export/excel", controllers.DownloadLedgerExcel)
		admin.GET("/transactions/export/pdf", controllers.DownloadLedgerPDF)

		// School management
		admin.POST("/schools", controllers.CreateSchool)

		// Driver management
		admin.GET("/drivers", controllers.AdminListDrivers)
		admin.PATCH("/drivers/:id/confirm", controllers.AdminConfirmDriver)
	}
}
