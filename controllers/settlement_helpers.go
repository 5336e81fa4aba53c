package controllers

import (
	"errors"

	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settlement rejections. All of these surface before any wallet or ledger
// write has happened.
var (
	ErrNegativeAmount     = errors.New("cost of transaction cannot be a negative value")
	ErrInsufficientFunds  = errors.New("sorry, you cannot transfer more than your wallet amount")
	ErrSelfTransfer       = errors.New("a user cannot transfer to themselves")
	ErrPriceNotConfigured = errors.New("percentage price was not set for the school or car owner")
	ErrTokenNotFound      = errors.New("free ride token does not exist")
	ErrTokenUsed          = errors.New("free ride token has been used")
	ErrFreeRideDenied     = errors.New("free ride collection denied")
)

// Notification icons per operation kind
const (
	iconTopUp    = "https://cdn.campusride.app/icons/load-wallet.png"
	iconTransfer = "https://cdn.campusride.app/icons/transfer.png"
	iconRideFare = "https://cdn.campusride.app/icons/ride.png"
	iconFreeRide = "https://cdn.campusride.app/icons/free-ride.png"
	iconDefault  = "https://cdn.campusride.app/icons/campusride.png"
)

// lockForUpdate adds a row-level lock so concurrent settlements touching the
// same wallet serialize on it. SQLite, used by the tests, has no FOR UPDATE;
// its transactions are serialized by the engine itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// walletForUser fetches and locks a user's wallet inside the settlement
// transaction
func walletForUser(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := lockForUpdate(tx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// walletForSchool fetches and locks a school's wallet inside the settlement
// transaction
func walletForSchool(tx *gorm.DB, schoolID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := lockForUpdate(tx).Where("school_id = ?", schoolID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// walletByID fetches and locks a wallet by primary key
func walletByID(tx *gorm.DB, walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := lockForUpdate(tx).First(&wallet, walletID).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// saveNotification records a message for the recipient. Notifications are
// fire-and-forget: a failure is logged and never fails the settlement.
func saveNotification(tx *gorm.DB, recipientID, senderID uint, message, icon string) {
	if icon == "" {
		icon = iconDefault
	}
	notification := models.Notification{
		Message:     message,
		RecipientID: recipientID,
		SenderID:    senderID,
		Icon:        icon,
	}
	if err := tx.Create(&notification).Error; err != nil {
		utils.LogError("Failed to save notification for user %d: %v", recipientID, err)
	}
}

// PaystackDeductionAmount computes the provider's cut for a top-up. Below
// 2500 the provider takes 1.5%; at 2500 and above a flat 100 is added. The
// deduction is informational only and is not debited from any wallet.
func PaystackDeductionAmount(amount float64) float64 {
	if amount < 2500 {
		return amount * 0.015
	}
	return amount*0.015 + 100
}
