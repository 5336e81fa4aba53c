package controllers

import (
	"errors"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PercentagePriceRequest creates or replaces a rate entry
type PercentagePriceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Rate        float64 `json:"rate" binding:"required"`
	Description string  `json:"description"`
}

// PercentagePriceUpdate carries the mutable fields of a rate entry. Pointer
// fields distinguish "not sent" from zero values.
type PercentagePriceUpdate struct {
	Rate        *float64 `json:"rate"`
	Description *string  `json:"description"`
}

// ListPercentagePrices returns all configured rates
func ListPercentagePrices(c *gin.Context) {
	var prices []models.PercentagePrice
	if err := config.DB.Order("title asc").Find(&prices).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch percentage prices", err.Error())
		return
	}
	utils.Success(c, "Percentage prices retrieved successfully", prices)
}

// CreatePercentagePrice registers a new rate. Rates are fractions, not
// percents: 0.05 means five percent.
func CreatePercentagePrice(c *gin.Context) {
	var req PercentagePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}
	if req.Rate < 0 || req.Rate > 1 {
		utils.BadRequest(c, "Rate must be a fraction between 0 and 1", nil)
		return
	}

	price := models.PercentagePrice{
		Title:       req.Title,
		Rate:        req.Rate,
		Description: req.Description,
	}
	if err := config.DB.Create(&price).Error; err != nil {
		utils.BadRequest(c, "A percentage price with this title already exists", nil)
		return
	}

	utils.LogInfo("Percentage price %s created with rate %.4f", price.Title, price.Rate)
	utils.Created(c, "Percentage price created successfully", price)
}

// UpdatePercentagePrice changes the rate or description of an existing entry
func UpdatePercentagePrice(c *gin.Context) {
	title := c.Param("title")

	var price models.PercentagePrice
	if err := config.DB.Where("title = ?", title).First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Percentage price not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch percentage price", err.Error())
		return
	}

	var req PercentagePriceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Rate != nil {
		if *req.Rate < 0 || *req.Rate > 1 {
			utils.BadRequest(c, "Rate must be a fraction between 0 and 1", nil)
			return
		}
		updates["rate"] = *req.Rate
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&price).Updates(updates).Error; err != nil {
		utils.InternalServerError(c, "Failed to update percentage price", err.Error())
		return
	}

	utils.LogInfo("Percentage price %s updated", price.Title)
	utils.Success(c, "Percentage price updated successfully", price)
}

// DeletePercentagePrice removes a rate entry. The four default rates cannot
// be deleted; settlements depend on them.
func DeletePercentagePrice(c *gin.Context) {
	title := c.Param("title")

	switch title {
	case models.DefaultDriverRate, models.DefaultSchoolRate,
		models.DefaultCarOwnerRate, models.DefaultTransferRate:
		utils.BadRequest(c, "Default percentage prices cannot be deleted", nil)
		return
	}

	result := config.DB.Where("title = ?", title).Delete(&models.PercentagePrice{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete percentage price", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Percentage price not found")
		return
	}

	utils.LogInfo("Percentage price %s deleted", title)
	utils.Success(c, "Percentage price deleted successfully", nil)
}
