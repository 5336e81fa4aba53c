package controllers

import (
	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// UserProfileUpdate carries the fields a user may change on their own
// profile. Pointer fields distinguish "not sent" from zero values so a
// partial update never clobbers the rest of the row.
type UserProfileUpdate struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Mobile       *string `json:"mobile"`
	ProfileImage *string `json:"profile_image"`
	SchoolName   *string `json:"school_name"`
}

// GetProfile returns the authenticated user's profile with wallet and school
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var full models.User
	if err := config.DB.Preload("Wallet").Preload("School").First(&full, user.ID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, "Profile retrieved successfully", full)
}

// UpdateProfile applies a partial update to the caller's profile
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req UserProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil && !utils.IsBlankString(*req.FirstName) {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil && !utils.IsBlankString(*req.LastName) {
		updates["last_name"] = *req.LastName
	}
	if req.Mobile != nil {
		if err := utils.ValidatePhone(*req.Mobile); err != nil {
			utils.BadRequest(c, "Validation failed", err)
			return
		}
		updates["mobile"] = *req.Mobile
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.SchoolName != nil {
		var school models.School
		if err := config.DB.Where("name = ? OR alias = ?", *req.SchoolName, *req.SchoolName).First(&school).Error; err != nil {
			utils.NotFound(c, "School not found")
			return
		}
		updates["school_id"] = school.ID
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(user).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	var full models.User
	if err := config.DB.Preload("Wallet").Preload("School").First(&full, user.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load profile", nil)
		return
	}

	utils.LogInfo("Profile updated for %s", user.Email)
	utils.Success(c, "Profile updated successfully", full)
}

// GetAuthorization reports whether the caller has a stored Paystack
// authorization for recurring charges. The code itself is never returned.
func GetAuthorization(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	utils.Success(c, "Authorization status retrieved", gin.H{
		"authorization_code_status": user.AuthorizationCodeStatus,
	})
}

// DeleteAccount soft deletes the caller's account. The wallet row and ledger
// entries remain for the audit trail.
func DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	if err := config.DB.Delete(&models.User{}, user.ID).Error; err != nil {
		utils.LogError("Failed to delete account for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to delete account", nil)
		return
	}

	invalidateWalletCaches(user.ID)
	utils.LogInfo("Account deleted: %s", user.Email)
	utils.Success(c, "Account deleted successfully", nil)
}
