package controllers

import (
	"errors"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollectSocialShareToken grants the caller their one-off social-share free
// ride token
func CollectSocialShareToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var token *models.FreeRideToken
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var opErr error
		token, opErr = GrantSocialShareToken(tx, user, CurrentPlatformAccount())
		return opErr
	})
	if err != nil {
		if errors.Is(err, ErrFreeRideDenied) {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Social share token grant failed for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Could not grant free ride token", nil)
		return
	}

	utils.LogInfo("Social share token granted to %s", user.Email)
	utils.Created(c, "Free ride token granted", token)
}

// GetFreeRideTokens lists the caller's free ride tokens, newest first
func GetFreeRideTokens(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var tokens []models.FreeRideToken
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at desc").Find(&tokens).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch free ride tokens", err.Error())
		return
	}

	utils.Success(c, "Free ride tokens retrieved successfully", tokens)
}
