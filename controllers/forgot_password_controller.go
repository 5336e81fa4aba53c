package controllers

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const tempPasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

func generateTempPassword(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordCharset))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(tempPasswordCharset[n.Int64()])
	}
	return sb.String(), nil
}

// ForgotPassword issues a one-time temporary password and mails it to the
// account owner. The response never reveals whether the email exists.
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Success(c, "If the account exists, a temporary password has been sent", nil)
		return
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		utils.LogError("Failed to generate temporary password: %v", err)
		utils.InternalServerError(c, "Could not process request", nil)
		return
	}
	hashed, err := utils.HashPassword(tempPassword)
	if err != nil {
		utils.LogError("Failed to hash temporary password: %v", err)
		utils.InternalServerError(c, "Could not process request", nil)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Older unused resets are superseded
		if err := tx.Model(&models.PasswordReset{}).
			Where("user_id = ? AND used = ?", user.ID, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.PasswordReset{UserID: user.ID, TempPassword: hashed}).Error
	})
	if err != nil {
		utils.LogError("Failed to store temporary password for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Could not process request", nil)
		return
	}

	if err := utils.SendTemporaryPasswordEmail(user.Email, user.FirstName, tempPassword); err != nil {
		utils.LogError("Failed to send temporary password email to %s: %v", user.Email, err)
	}

	utils.LogInfo("Temporary password issued for %s", user.Email)
	utils.Success(c, "If the account exists, a temporary password has been sent", nil)
}

// ChangePassword sets a new password for the authenticated user and clears
// the forced-reset flag
func ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.BadRequest(c, "Validation failed", err)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Could not change password", nil)
		return
	}

	if err := config.DB.Model(user).Updates(map[string]interface{}{
		"password":       hashed,
		"reset_password": false,
	}).Error; err != nil {
		utils.LogError("Failed to change password for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Could not change password", nil)
		return
	}

	utils.LogInfo("Password changed for %s", user.Email)
	utils.Success(c, "Password changed successfully", nil)
}
