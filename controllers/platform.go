package controllers

import (
	"fmt"
	"os"

	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"gorm.io/gorm"
)

// PlatformAccount identifies the operator's own user and wallet. It is
// resolved once at startup and injected into every settlement instead of
// being re-queried per operation.
type PlatformAccount struct {
	UserID   uint
	WalletID uint
	Email    string
}

var platformAccount PlatformAccount

// InitPlatformAccount resolves the platform user configured via
// PLATFORM_EMAIL and caches its identifiers for the settlement engines
func InitPlatformAccount(db *gorm.DB) error {
	email := os.Getenv("PLATFORM_EMAIL")
	if email == "" {
		return fmt.Errorf("PLATFORM_EMAIL is not configured")
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("platform user %s does not exist: %v", email, err)
	}

	var wallet models.Wallet
	if err := db.Where("user_id = ?", user.ID).First(&wallet).Error; err != nil {
		return fmt.Errorf("platform wallet for %s does not exist: %v", email, err)
	}

	platformAccount = PlatformAccount{UserID: user.ID, WalletID: wallet.ID, Email: email}
	return nil
}

// CurrentPlatformAccount returns the resolved platform account
func CurrentPlatformAccount() PlatformAccount {
	return platformAccount
}

// PaymentVerifier confirms a third-party payment reference before a top-up
// may proceed
type PaymentVerifier interface {
	VerifyTransaction(reference string) (*utils.PaystackVerification, error)
}

var paymentVerifier PaymentVerifier

// InitPaymentVerifier wires the external payment verification client
func InitPaymentVerifier(v PaymentVerifier) {
	paymentVerifier = v
}
