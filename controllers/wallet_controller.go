package controllers

import (
	"context"
	"time"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// GetWallet returns the caller's wallet balance
func GetWallet(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	cacheKey := walletCacheKey(user.ID)
	if config.Redis != nil {
		var cached models.Wallet
		if hit, err := utils.GetCache(context.Background(), config.Redis, cacheKey, &cached); err == nil && hit {
			utils.Success(c, "Wallet retrieved successfully", cached)
			return
		}
	}

	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", user.ID).First(&wallet).Error; err != nil {
		utils.NotFound(c, "Wallet not found")
		return
	}

	if config.Redis != nil {
		_ = utils.SetCache(context.Background(), config.Redis, cacheKey, wallet, time.Minute)
	}

	utils.Success(c, "Wallet retrieved successfully", wallet)
}
