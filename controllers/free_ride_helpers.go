package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusride/CampusRide/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A user earns a ride-kind token after this many paid rides inside the
// trailing seven-day window.
const freeRideThreshold = 20

// generateFreeRideToken produces an opaque single-use token value. UUIDs
// come from a crypto-random source, so uniqueness needs no query-and-retry;
// the unique index on the token column remains the safety net.
func generateFreeRideToken() string {
	return uuid.NewString()
}

// pastWeekRides returns the user's most recent ride-fare ledger entries as
// payer within the trailing 7 days, newest first, capped at the threshold
func pastWeekRides(db *gorm.DB, userID uint) ([]models.Transaction, error) {
	since := time.Now().AddDate(0, 0, -7)
	var rides []models.Transaction
	err := db.Where("sender_id = ? AND operation_type = ? AND created_at >= ?",
		userID, models.OperationRideFare, since).
		Order("created_at desc").
		Limit(freeRideThreshold).
		Find(&rides).Error
	return rides, err
}

// latestRideToken returns the user's most recent ride-kind token, or nil
func latestRideToken(db *gorm.DB, userID uint) (*models.FreeRideToken, error) {
	var token models.FreeRideToken
	err := db.Where("user_id = ? AND kind = ?", userID, models.FreeRideKindRide).
		Order("created_at desc").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// hasFreeRideOfKind reports whether the user ever held a token of the given
// kind, active or used
func hasFreeRideOfKind(db *gorm.DB, userID uint, kind string) (bool, error) {
	var count int64
	err := db.Model(&models.FreeRideToken{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Count(&count).Error
	return count > 0, err
}

// IssueFreeRideTokenIfEligible mints at most one ride-kind token for the
// user. Eligibility: the trailing 7-day window holds at least the threshold
// of ride-fare entries as payer, and either the user never earned a ride
// token or the latest one predates the oldest ride in that window (so each
// full window of rides earns exactly one token).
//
// Called after the current settlement's ledger entry is written, so the ride
// that crosses the threshold counts toward its own window.
func IssueFreeRideTokenIfEligible(db *gorm.DB, user *models.User, platform PlatformAccount) (*models.FreeRideToken, error) {
	rides, err := pastWeekRides(db, user.ID)
	if err != nil {
		return nil, err
	}
	if len(rides) < freeRideThreshold {
		return nil, nil
	}

	latest, err := latestRideToken(db, user.ID)
	if err != nil {
		return nil, err
	}
	oldestInWindow := rides[len(rides)-1]
	if latest != nil && !latest.CreatedAt.Before(oldestInWindow.CreatedAt) {
		return nil, nil
	}

	token := models.FreeRideToken{
		Token:  generateFreeRideToken(),
		Kind:   models.FreeRideKindRide,
		Active: true,
		UserID: user.ID,
		Description: fmt.Sprintf("Token generated for %s on %s for ride number %d",
			user.Email, time.Now().Format(time.RFC3339), user.NumberOfRides),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}

	saveNotification(db, user.ID, platform.UserID,
		fmt.Sprintf("You have earned a free ride token '%s'", token.Token), iconFreeRide)

	return &token, nil
}

// GrantSocialShareToken issues the one-shot social-share token. A user may
// hold at most one social-share token ever, active or used; a second request
// is denied.
func GrantSocialShareToken(db *gorm.DB, user *models.User, platform PlatformAccount) (*models.FreeRideToken, error) {
	exists, err := hasFreeRideOfKind(db, user.ID, models.FreeRideKindSocialShare)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFreeRideDenied
	}

	token := models.FreeRideToken{
		Token:       generateFreeRideToken(),
		Kind:        models.FreeRideKindSocialShare,
		Active:      true,
		UserID:      user.ID,
		Description: fmt.Sprintf("Token generated for %s for sharing the app", user.Email),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}

	saveNotification(db, user.ID, platform.UserID,
		fmt.Sprintf("Congrats, you got a free ride token %s for sharing our app", token.Token), iconFreeRide)

	return &token, nil
}
