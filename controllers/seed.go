package controllers

import (
	"os"

	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shipped rates, used only when the table has no entry yet. Admins adjust
// them through the percentage price endpoints.
var defaultRates = map[string]float64{
	models.DefaultDriverRate:   0.40,
	models.DefaultSchoolRate:   0.10,
	models.DefaultCarOwnerRate: 0.10,
	models.DefaultTransferRate: 0.05,
}

// EnsureDefaultData creates the records settlements cannot run without: the
// platform account and wallet, the default percentage prices, the fleet car
// owner and the default school. Idempotent; safe to run on every start.
func EnsureDefaultData(db *gorm.DB) error {
	if err := ensurePlatformUser(db); err != nil {
		return err
	}
	if err := ensureDefaultRates(db); err != nil {
		return err
	}
	if err := ensureCarOwner(db); err != nil {
		return err
	}
	return ensureDefaultSchool(db)
}

func ensureSystemUser(db *gorm.DB, email, firstName, role string) error {
	if email == "" {
		return nil
	}
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	// System accounts are never logged into; a random password keeps them
	// locked out.
	password, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return err
	}
	user = models.User{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		Role:      role,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{UserID: &user.ID, Balance: 0, Description: firstName + " wallet"}
		return tx.Create(&wallet).Error
	})
}

func ensurePlatformUser(db *gorm.DB) error {
	return ensureSystemUser(db, os.Getenv("PLATFORM_EMAIL"), "CampusRide", models.RolePlatform)
}

func ensureCarOwner(db *gorm.DB) error {
	return ensureSystemUser(db, os.Getenv("CAR_OWNER_EMAIL"), "CampusRide Fleet", models.RoleCarOwner)
}

func ensureDefaultRates(db *gorm.DB) error {
	for title, rate := range defaultRates {
		var existing models.PercentagePrice
		err := db.Where("title = ?", title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		price := models.PercentagePrice{Title: title, Rate: rate, Description: "Default rate"}
		if err := db.Create(&price).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureDefaultSchool(db *gorm.DB) error {
	email := os.Getenv("SCHOOL_EMAIL")
	if email == "" {
		return nil
	}
	var school models.School
	err := db.Where("email = ?", email).First(&school).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	school = models.School{Name: "CampusRide Default School", Alias: "campusride", Email: email}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		wallet := models.Wallet{SchoolID: &school.ID, Balance: 0, Description: school.Name + " wallet"}
		return tx.Create(&wallet).Error
	})
}
