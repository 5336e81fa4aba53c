package controllers

import (
	"strings"
	"time"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest is the signup payload. Driver fields are only read when
// the role is driver.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Mobile      string `json:"mobile"`
	Role        string `json:"role"`
	SchoolName  string `json:"school_name"`
	CarModel    string `json:"car_model"`
	PlateNumber string `json:"plate_number"`
	CarSlots    int    `json:"car_slots"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user together with their wallet. Drivers additionally
// get a vehicle record pending admin confirmation.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.BadRequest(c, "Validation failed", err)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.BadRequest(c, "Validation failed", err)
		return
	}
	if err := utils.ValidatePhone(req.Mobile); err != nil {
		utils.BadRequest(c, "Validation failed", err)
		return
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleStudent
	case models.RoleStudent, models.RoleDriver, models.RoleCarOwner:
	default:
		utils.BadRequest(c, "Role must be student, driver or car_owner", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.BadRequest(c, "An account with this email already exists", nil)
		return
	}

	var schoolID *uint
	if req.SchoolName != "" {
		var school models.School
		if err := config.DB.Where("name = ? OR alias = ?", req.SchoolName, req.SchoolName).First(&school).Error; err != nil {
			utils.NotFound(c, "School not found")
			return
		}
		schoolID = &school.ID
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		Role:      role,
		SchoolID:  schoolID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{UserID: &user.ID, Balance: 0, Description: user.Email + " wallet"}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		if role == models.RoleDriver {
			info := models.DriverInfo{
				UserID:            user.ID,
				CarModel:          req.CarModel,
				PlateNumber:       req.PlateNumber,
				CarSlots:          req.CarSlots,
				AvailableCarSlots: req.CarSlots,
			}
			if err := tx.Create(&info).Error; err != nil {
				return err
			}
		}
		saveNotification(tx, user.ID, CurrentPlatformAccount().UserID,
			"Welcome to CampusRide, "+user.FirstName+". Your wallet is ready.", iconDefault)
		return nil
	})
	if err != nil {
		utils.LogError("Registration failed for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.LogInfo("New %s account registered: %s", role, user.Email)
	utils.Created(c, "Account created successfully", gin.H{"token": token, "user": user})
}

// Login authenticates with the account password or, failing that, an unused
// temporary password issued by the forgot-password flow
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		if !loginWithTempPassword(&user, req.Password) {
			utils.LogError("Failed login attempt for %s", req.Email)
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	utils.LogInfo("User logged in: %s", user.Email)
	utils.Success(c, "Login successful", gin.H{
		"token":          token,
		"user":           user,
		"reset_password": user.ResetPassword,
	})
}

// loginWithTempPassword checks the latest unused temporary password. A match
// consumes it and flags the account for a forced password change.
func loginWithTempPassword(user *models.User, password string) bool {
	var reset models.PasswordReset
	err := config.DB.Where("user_id = ? AND used = ? AND created_at > ?",
		user.ID, false, time.Now().Add(-24*time.Hour)).
		Order("created_at desc").
		First(&reset).Error
	if err != nil {
		return false
	}
	if !utils.CheckPassword(password, reset.TempPassword) {
		return false
	}

	if err := config.DB.Model(&reset).Update("used", true).Error; err != nil {
		utils.LogError("Failed to consume temp password for user %d: %v", user.ID, err)
		return false
	}
	if err := config.DB.Model(user).Update("reset_password", true).Error; err != nil {
		utils.LogError("Failed to flag password reset for user %d: %v", user.ID, err)
	}
	user.ResetPassword = true
	return true
}
