package controllers

import (
	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// GetNotifications returns the caller's notification feed, newest first
func GetNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	page, limit := utils.GetPaginationParams(c)

	var total int64
	query := config.DB.Model(&models.Notification{}).Where("recipient_id = ?", user.ID)
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count notifications", err.Error())
		return
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Notifications retrieved successfully", notifications, total, page, limit)
}
