package controllers

import (
	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// DriverInfoUpdate carries the fields a driver may change on their vehicle
// record
type DriverInfoUpdate struct {
	CarModel          *string `json:"car_model"`
	PlateNumber       *string `json:"plate_number"`
	CarSlots          *int    `json:"car_slots"`
	AvailableCarSlots *int    `json:"available_car_slots"`
	BankName          *string `json:"bank_name"`
	AccountNumber     *string `json:"account_number"`
}

// GetDriverInfo returns the caller's vehicle record
func GetDriverInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	if user.Role != models.RoleDriver {
		utils.Forbidden(c, "Only drivers have a vehicle record")
		return
	}

	var info models.DriverInfo
	if err := config.DB.Where("user_id = ?", user.ID).First(&info).Error; err != nil {
		utils.NotFound(c, "Driver record not found")
		return
	}

	utils.Success(c, "Driver record retrieved successfully", info)
}

// UpdateDriverInfo applies a partial update to the caller's vehicle record.
// Changing the vehicle clears admin confirmation until re-approved.
func UpdateDriverInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	if user.Role != models.RoleDriver {
		utils.Forbidden(c, "Only drivers have a vehicle record")
		return
	}

	var info models.DriverInfo
	if err := config.DB.Where("user_id = ?", user.ID).First(&info).Error; err != nil {
		utils.NotFound(c, "Driver record not found")
		return
	}

	var req DriverInfoUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.CarModel != nil {
		updates["car_model"] = *req.CarModel
		updates["admin_confirmed"] = false
	}
	if req.PlateNumber != nil {
		updates["plate_number"] = *req.PlateNumber
		updates["admin_confirmed"] = false
	}
	if req.CarSlots != nil {
		updates["car_slots"] = *req.CarSlots
	}
	if req.AvailableCarSlots != nil {
		updates["available_car_slots"] = *req.AvailableCarSlots
	}
	if req.BankName != nil {
		updates["bank_name"] = *req.BankName
	}
	if req.AccountNumber != nil {
		updates["account_number"] = *req.AccountNumber
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&info).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update driver record for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to update driver record", nil)
		return
	}

	utils.LogInfo("Driver record updated for %s", user.Email)
	utils.Success(c, "Driver record updated successfully", info)
}

// AdminConfirmDriver approves a driver's vehicle record. Admin only.
func AdminConfirmDriver(c *gin.Context) {
	userID := c.Param("id")

	var info models.DriverInfo
	if err := config.DB.Where("user_id = ?", userID).First(&info).Error; err != nil {
		utils.NotFound(c, "Driver record not found")
		return
	}

	if err := config.DB.Model(&info).Update("admin_confirmed", true).Error; err != nil {
		utils.LogError("Failed to confirm driver %s: %v", userID, err)
		utils.InternalServerError(c, "Failed to confirm driver", nil)
		return
	}

	saveNotification(config.DB, info.UserID, CurrentPlatformAccount().UserID,
		"Your vehicle has been approved. You can now accept rides.", iconDefault)

	utils.LogInfo("Driver %d confirmed by admin", info.UserID)
	utils.Success(c, "Driver confirmed successfully", info)
}

// AdminListDrivers lists all driver records, unconfirmed first. Admin only.
func AdminListDrivers(c *gin.Context) {
	var infos []models.DriverInfo
	if err := config.DB.Order("admin_confirmed asc, created_at desc").Find(&infos).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch driver records", err.Error())
		return
	}
	utils.Success(c, "Driver records retrieved successfully", infos)
}
