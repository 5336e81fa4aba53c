package controllers

import (
	"errors"

	"github.com/campusride/CampusRide/models"
	"gorm.io/gorm"
)

// getPercentagePrice looks up a configured rate by exact title
func getPercentagePrice(db *gorm.DB, title string) (*models.PercentagePrice, error) {
	var price models.PercentagePrice
	if err := db.Where("title = ?", title).First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}

// resolvePercentagePrice tries the participant-specific title first (an
// email), then the role's default title. Absence of both is a configuration
// error surfaced as ErrPriceNotConfigured.
func resolvePercentagePrice(db *gorm.DB, title, defaultTitle string) (*models.PercentagePrice, error) {
	if title != "" {
		price, err := getPercentagePrice(db, title)
		if err != nil {
			return nil, err
		}
		if price != nil {
			return price, nil
		}
	}

	price, err := getPercentagePrice(db, defaultTitle)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrPriceNotConfigured
	}
	return price, nil
}

// fareRates is the stable rate snapshot for one ride-fare settlement. All
// three rates are resolved before any wallet write so a concurrent
// configuration change cannot skew a single settlement's math.
type fareRates struct {
	Driver   float64
	School   float64
	CarOwner float64
}

// resolveFareRates resolves the full snapshot for a settlement
func resolveFareRates(db *gorm.DB, schoolEmail, carOwnerEmail string) (*fareRates, error) {
	driverPrice, err := resolvePercentagePrice(db, "", models.DefaultDriverRate)
	if err != nil {
		return nil, err
	}
	schoolPrice, err := resolvePercentagePrice(db, schoolEmail, models.DefaultSchoolRate)
	if err != nil {
		return nil, err
	}
	carOwnerPrice, err := resolvePercentagePrice(db, carOwnerEmail, models.DefaultCarOwnerRate)
	if err != nil {
		return nil, err
	}

	return &fareRates{
		Driver:   driverPrice.Rate,
		School:   schoolPrice.Rate,
		CarOwner: carOwnerPrice.Rate,
	}, nil
}
