package controllers

import (
	"strings"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SchoolRequest registers a participating campus
type SchoolRequest struct {
	Name          string `json:"name" binding:"required"`
	Alias         string `json:"alias"`
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Mobile        string `json:"mobile"`
}

// ListSchools returns all registered schools
func ListSchools(c *gin.Context) {
	var schools []models.School
	if err := config.DB.Order("name asc").Find(&schools).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schools", err.Error())
		return
	}
	utils.Success(c, "Schools retrieved successfully", schools)
}

// CreateSchool registers a school together with its fare-share wallet.
// Admin only.
func CreateSchool(c *gin.Context) {
	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.BadRequest(c, "Validation failed", err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash school password: %v", err)
		utils.InternalServerError(c, "Failed to create school", nil)
		return
	}

	school := models.School{
		Name:          req.Name,
		Alias:         req.Alias,
		Email:         req.Email,
		Password:      hashed,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Mobile:        req.Mobile,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		wallet := models.Wallet{SchoolID: &school.ID, Balance: 0, Description: school.Name + " wallet"}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		utils.LogError("Failed to create school %s: %v", req.Name, err)
		utils.BadRequest(c, "A school with this name or email already exists", nil)
		return
	}

	utils.LogInfo("School registered: %s", school.Name)
	utils.Created(c, "School created successfully", school)
}
